package engine

import (
	"reflect"
	"time"

	"github.com/plus3/fruitris/event"
)

// Frame is the per-tick context handed to every stage.
type Frame struct {
	Delta  time.Duration
	Now    time.Time
	Events *event.Outbox

	// Settled is set by a stage that consumed the tick; later stages that
	// move the piece skip it.
	Settled bool
}

// Stage is one step of the per-tick update.
type Stage interface {
	Execute(frame *Frame)
}

// PipelineStats summarises stage execution.
type PipelineStats struct {
	StageCount      int
	TotalExecutions int64
	Stages          []StageStats
}

// StageStats provides execution statistics for a single stage.
type StageStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stageStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Pipeline runs stages in registration order and times each one.
type Pipeline struct {
	stages []Stage
	stats  []*stageStatsInternal
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Register appends a stage. Its statistics are reported under the stage's
// type name.
func (p *Pipeline) Register(stage Stage) {
	p.stages = append(p.stages, stage)

	stageType := reflect.TypeOf(stage)
	if stageType.Kind() == reflect.Ptr {
		stageType = stageType.Elem()
	}

	p.stats = append(p.stats, &stageStatsInternal{
		name:        stageType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes every stage with the given frame.
func (p *Pipeline) Once(frame *Frame) {
	for i, stage := range p.stages {
		start := time.Now()
		stage.Execute(frame)
		duration := time.Since(start)

		stats := p.stats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Stats returns a copy of the collected statistics.
func (p *Pipeline) Stats() PipelineStats {
	out := PipelineStats{
		StageCount: len(p.stages),
		Stages:     make([]StageStats, len(p.stats)),
	}

	for i, internal := range p.stats {
		avg := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		out.Stages[i] = StageStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		out.TotalExecutions += internal.executionCount
	}
	return out
}
