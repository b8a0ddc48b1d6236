package engine_test

import (
	"slices"
	"testing"
	"time"

	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/clock"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/piece"
	"github.com/plus3/fruitris/store"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t   *testing.T
	e   *engine.Engine
	clk *clock.Manual
	rec *event.Recorder
	kv  *store.Memory
}

// newHarness builds an engine on a manual clock with a scripted piece
// sequence. Fruit combos are off unless combos is true, so scores only
// reflect line rules.
func newHarness(t *testing.T, combos bool, kinds ...piece.Kind) *harness {
	t.Helper()
	h := &harness{
		t:   t,
		clk: clock.NewManual(time.Time{}),
		rec: &event.Recorder{},
		kv:  store.NewMemory(),
	}
	rules := engine.DefaultRules()
	rules.FruitCombos = combos
	h.e = engine.New(
		engine.WithClock(h.clk),
		engine.WithSink(h.rec),
		engine.WithStore(h.kv),
		engine.WithSource(piece.NewSequence(kinds...)),
		engine.WithRules(rules),
	)
	return h
}

func (h *harness) tick(d time.Duration) {
	h.clk.Advance(d)
	h.e.Update(d)
}

// fall lets gravity carry the current piece until it locks.
func (h *harness) fall() {
	h.t.Helper()
	locks := len(h.rec.Find(event.PieceLocked))
	for range 4 * board.Height {
		h.tick(h.e.DropInterval())
		if len(h.rec.Find(event.PieceLocked)) > locks {
			return
		}
	}
	h.t.Fatal("piece never locked")
}

// settle waits out the clear animation.
func (h *harness) settle() {
	h.tick(500 * time.Millisecond)
}

func (h *harness) current() *piece.Piece {
	h.t.Helper()
	cur := h.e.Snapshot().Current
	require.NotNil(h.t, cur)
	return cur
}

// fillRows fills the given rows except the listed gap columns.
func fillRows(rows []int, gaps ...int) func(b *board.Board) {
	return func(b *board.Board) {
		for _, y := range rows {
			for x := range board.Width {
				if slices.Contains(gaps, x) {
					continue
				}
				// Alternate fruits so no large same-fruit clusters form.
				b.Set(x, y, []piece.Kind{piece.S, piece.Z}[(x+y)%2])
			}
		}
	}
}

// dropVerticalI stands the current I piece up and drops it in the given
// column.
func (h *harness) dropVerticalI(column int) {
	h.t.Helper()
	require.Equal(h.t, piece.I, h.current().Kind)
	require.True(h.t, h.e.RotatePiece(true))
	// Rotation state 1 occupies frame column 2.
	h.e.MovePiece(column-2-h.current().X, 0)
	require.Equal(h.t, column-2, h.current().X)
	h.e.HardDrop()
}
