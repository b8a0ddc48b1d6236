package engine_test

import (
	"testing"
	"time"

	"github.com/plus3/fruitris/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStage struct {
	executeCount int
	sleepDur     time.Duration
	seen         []time.Duration
}

func (s *countingStage) Execute(frame *engine.Frame) {
	s.executeCount++
	s.seen = append(s.seen, frame.Delta)
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

type settlingStage struct{}

func (settlingStage) Execute(frame *engine.Frame) { frame.Settled = true }

type observingStage struct{ sawSettled bool }

func (s *observingStage) Execute(frame *engine.Frame) { s.sawSettled = frame.Settled }

func TestPipelineOrder(t *testing.T) {
	p := engine.NewPipeline()
	obs := &observingStage{}
	p.Register(settlingStage{})
	p.Register(obs)

	p.Once(&engine.Frame{Delta: time.Millisecond})
	assert.True(t, obs.sawSettled)
}

func TestPipelineStats(t *testing.T) {
	p := engine.NewPipeline()

	stats := p.Stats()
	assert.Zero(t, stats.StageCount)
	assert.Zero(t, stats.TotalExecutions)

	first := &countingStage{sleepDur: time.Millisecond}
	second := &countingStage{sleepDur: 2 * time.Millisecond}
	p.Register(first)
	p.Register(second)

	stats = p.Stats()
	require.Equal(t, 2, stats.StageCount)
	for _, s := range stats.Stages {
		assert.Zero(t, s.MinDuration, "unexecuted stages report zero min")
	}

	for range 3 {
		p.Once(&engine.Frame{Delta: 16 * time.Millisecond})
	}

	stats = p.Stats()
	assert.EqualValues(t, 6, stats.TotalExecutions)
	require.Len(t, stats.Stages, 2)
	for _, s := range stats.Stages {
		assert.Equal(t, "countingStage", s.Name)
		assert.EqualValues(t, 3, s.ExecutionCount)
		assert.NotZero(t, s.MinDuration)
		assert.NotZero(t, s.LastDuration)
		assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
		assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
		assert.Equal(t, s.TotalDuration/3, s.AvgDuration)
	}

	assert.Equal(t, 3, first.executeCount)
	assert.Equal(t, 3, second.executeCount)
	assert.Equal(t, []time.Duration{16 * time.Millisecond, 16 * time.Millisecond, 16 * time.Millisecond}, first.seen)
}
