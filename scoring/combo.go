package scoring

import (
	"math"

	"github.com/plus3/fruitris/board"
)

// Multiplier scales combo bonuses. It lives in [1, 3], rising with each
// cluster and falling back through scheduled decays.
type Multiplier float64

const (
	BaseMultiplier Multiplier = 1.0
	bigClusterStep Multiplier = 0.2
	bigClusterCap  Multiplier = 3.0
	smallStep      Multiplier = 0.1
	smallCap       Multiplier = 2.0
	decayStep      Multiplier = 0.05
)

const (
	bigClusterSize  = 5
	largeClusterMin = 7
	hugeClusterMin  = 10
)

// Bump returns the multiplier after a cluster of the given size and whether
// the cluster was large enough to count at all.
func (m Multiplier) Bump(size int) (Multiplier, bool) {
	switch {
	case size >= bigClusterSize:
		return min(bigClusterCap, m+bigClusterStep), true
	case size >= board.MinClusterSize:
		return min(smallCap, m+smallStep), true
	}
	return m, false
}

// Decay returns the multiplier after one scheduled decay step.
func (m Multiplier) Decay() Multiplier {
	return max(BaseMultiplier, m-decayStep)
}

// PatternMultiplier is the shape and size factor applied to a cluster's
// base worth.
func PatternMultiplier(size int, p board.Pattern) float64 {
	mult := 1.0
	if p.Has(board.PatternSquare) {
		mult += 0.5
	}
	if p.Has(board.PatternCross) {
		mult += 0.7
	}
	if p.Has(board.PatternLine) && size >= bigClusterSize {
		mult += 0.3
	}
	if p.Has(board.PatternScattered) {
		mult += 0.4
	}
	if size >= largeClusterMin {
		mult += 0.5
	}
	if size >= hugeClusterMin {
		mult += 1.0
	}
	return mult
}

// ComboBonus is the points a cluster is worth at the given multiplier and
// level.
func ComboBonus(c board.Cluster, m Multiplier, level int) int {
	base := float64(c.Fruit.Value() * c.Size())
	return int(math.Floor(base * PatternMultiplier(c.Size(), c.Patterns) * float64(m) * float64(max(level, MinLevel))))
}
