package debugui_test

import (
	"testing"
	"time"

	"github.com/plus3/fruitris/debugui"
	"github.com/plus3/fruitris/mode"
	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := debugui.NewFrameHistory(3)
	assert.Zero(t, h.Average())

	h.Push(10 * time.Millisecond)
	assert.InDelta(t, 10, h.Average(), 1e-4)

	h.Push(20 * time.Millisecond)
	h.Push(30 * time.Millisecond)
	assert.InDelta(t, 20, h.Average(), 1e-4)

	// The oldest sample is overwritten.
	h.Push(40 * time.Millisecond)
	assert.InDelta(t, 30, h.Average(), 1e-4)
}

func TestProgressLines(t *testing.T) {
	tests := []struct {
		name string
		in   mode.Progress
		want []string
	}{
		{
			name: "sprint with best",
			in: mode.Progress{
				ID: mode.TimeAttackID, Name: "Sprint",
				Lines: 12, TargetLines: 40,
				Elapsed:  61234567 * time.Microsecond,
				BestTime: 90 * time.Second, HasBestTime: true,
			},
			want: []string{"Mode: Sprint", "Lines: 12 / 40", "Time: 1m1.234s", "Best: 1m30s"},
		},
		{
			name: "marathon record",
			in: mode.Progress{
				ID: mode.EnduranceID, Name: "Marathon",
				TargetLevel: 15, BestLevel: 9, NewRecord: true,
			},
			want: []string{"Mode: Marathon", "Target level: 15 (best 9)", "New record!"},
		},
		{
			name: "zen",
			in:   mode.Progress{ID: mode.RelaxedID, Name: "Zen", Recoveries: 2},
			want: []string{"Mode: Zen", "Recoveries: 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, debugui.ProgressLines(tt.in))
		})
	}
}
