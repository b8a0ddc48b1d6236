package main

import (
	"math"

	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/piece"
)

// placement is where the bot wants the current piece.
type placement struct {
	rotation int
	x        int
	score    float64
}

// Weights for the placement heuristic.
const (
	heightWeight = -0.51
	linesWeight  = 0.76
	holesWeight  = -0.36
	bumpWeight   = -0.18
)

func rebuild(g board.Grid) *board.Board {
	b := board.New()
	for y := range board.Height {
		for x := range board.Width {
			if !g[y][x].Empty() {
				b.Set(x, y, g[y][x].Fruit)
			}
		}
	}
	return b
}

// evaluate scores a field after a placement.
func evaluate(b *board.Board, lines int) float64 {
	var heights [board.Width]int
	holes := 0
	for x := range board.Width {
		seen := false
		for y := range board.Height {
			if b.Occupied(x, y) {
				if !seen {
					heights[x] = board.Height - y
					seen = true
				}
			} else if seen {
				holes++
			}
		}
	}
	aggregate, bump := 0, 0
	for x, h := range heights {
		aggregate += h
		if x > 0 {
			bump += abs(h - heights[x-1])
		}
	}
	return heightWeight*float64(aggregate) + linesWeight*float64(lines) +
		holesWeight*float64(holes) + bumpWeight*float64(bump)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// choose tries every rotation and column for the current piece.
func choose(s engine.Snapshot) (placement, bool) {
	if s.Current == nil {
		return placement{}, false
	}
	field := rebuild(s.Grid)
	best := placement{score: math.Inf(-1)}
	found := false

	for r := range piece.RotationCount(s.Current.Kind) {
		shape := piece.ShapeOf(s.Current.Kind, r)
		for x := -piece.FrameSize; x < board.Width; x++ {
			if !field.IsValidPosition(x, s.Current.Y, shape) {
				continue
			}
			p := &piece.Piece{Kind: s.Current.Kind, Rotation: r, X: x, Y: s.Current.Y}
			p.Y = p.GroundedShadow(field).Y

			trial := rebuild(s.Grid)
			trial.Lock(p)
			lines := len(trial.CompletedLines())
			trial.RemoveRows(trial.CompletedLines())

			if score := evaluate(trial, lines); score > best.score {
				best = placement{rotation: r, x: x, score: score}
				found = true
			}
		}
	}
	return best, found
}

// act steers the current piece to its chosen placement and drops it. It
// reports whether a piece was dropped.
func act(e *engine.Engine) bool {
	s := e.Snapshot()
	target, ok := choose(s)
	if !ok {
		return false
	}
	for range target.rotation {
		if !e.RotatePiece(true) {
			break
		}
	}
	cur := e.Snapshot().Current
	if cur == nil {
		return false
	}
	dx := target.x - cur.X
	step := 1
	if dx < 0 {
		step = -1
	}
	for range abs(dx) {
		if !e.MovePiece(step, 0) {
			break
		}
	}
	e.HardDrop()
	return true
}
