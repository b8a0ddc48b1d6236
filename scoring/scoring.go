// Package scoring holds the pure point, level and speed formulas.
package scoring

import (
	"math"
	"time"
)

const (
	MinLevel = 1
	MaxLevel = 15

	// LinesPerLevel is how many cleared lines advance the level by one.
	LinesPerLevel = 10

	// MaxHistory bounds the combo history kept for display.
	MaxHistory = 5
)

var (
	linePoints         = [...]int{0, 100, 300, 500, 800}
	tSpinPoints        = [...]int{400, 800, 1200, 1600}
	perfectClearPoints = [...]int{0, 800, 1200, 1800, 2000}
)

// Clear describes everything a single lock contributed to the score.
type Clear struct {
	Lines        int
	TSpin        bool
	PerfectClear bool
	Combo        int
	SoftDrop     int
	Level        int
}

// Difficult reports whether the clear sustains a back-to-back streak.
func (c Clear) Difficult() bool {
	return c.TSpin || c.Lines == 4
}

// Result is the breakdown of an awarded clear.
type Result struct {
	// Base is the line or T-spin points after any back-to-back bonus.
	Base         int
	PerfectClear int
	Combo        int
	SoftDrop     int
	Total        int

	// BackToBackApplied is set when Base was boosted by the streak.
	BackToBackApplied bool
	// BackToBack is the streak flag to carry into the next clear.
	BackToBack bool
}

func clampIndex(n, size int) int {
	return max(0, min(n, size-1))
}

// Award scores a clear given the current back-to-back flag. T-spin points
// replace line points. The back-to-back boost multiplies only the base;
// perfect-clear, combo and soft-drop points are added after it.
func Award(c Clear, backToBack bool) Result {
	level := max(c.Level, MinLevel)
	var base int
	if c.TSpin {
		base = tSpinPoints[clampIndex(c.Lines, len(tSpinPoints))] * level
	} else {
		base = linePoints[clampIndex(c.Lines, len(linePoints))] * level
	}

	r := Result{BackToBack: backToBack}
	switch {
	case c.Difficult():
		if backToBack {
			base = int(math.Floor(float64(base) * 1.5))
			r.BackToBackApplied = true
		}
		r.BackToBack = true
	case c.Lines > 0:
		r.BackToBack = false
	}

	r.Base = base
	if c.PerfectClear {
		r.PerfectClear = perfectClearPoints[clampIndex(c.Lines, len(perfectClearPoints))] * level
	}
	r.Combo = max(c.Combo, 0)
	r.SoftDrop = max(c.SoftDrop, 0)
	r.Total = r.Base + r.PerfectClear + r.Combo + r.SoftDrop
	return r
}

// ClampStartLevel forces a requested starting level into [MinLevel, MaxLevel].
func ClampStartLevel(level int) int {
	return max(MinLevel, min(level, MaxLevel))
}

// LevelFor returns the level reached after totalLines from startLevel.
func LevelFor(startLevel, totalLines int) int {
	return ClampStartLevel(startLevel) + max(totalLines, 0)/LinesPerLevel
}

const (
	baseInterval  = 1000 * time.Millisecond
	intervalStep  = 100 * time.Millisecond
	minInterval   = 100 * time.Millisecond
	hardDropPoint = 2
)

// DropInterval is the gravity period at the given level.
func DropInterval(level int) time.Duration {
	return max(minInterval, baseInterval-time.Duration(level-1)*intervalStep)
}

// HardDropPoints is the immediate award for a hard drop of the given
// distance in rows.
func HardDropPoints(distance int) int {
	return max(distance, 0) * hardDropPoint
}
