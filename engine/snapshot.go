package engine

import (
	"slices"
	"time"

	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/piece"
	"github.com/plus3/fruitris/store"
)

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	State State

	Grid    board.Grid
	Current *piece.Piece
	Ghost   piece.Point
	Held    piece.Kind
	CanHold bool
	Next    []piece.Kind

	// Clearing lists the rows animating out, top to bottom.
	Clearing      []int
	ClearProgress float64

	Score        int
	Level        int
	StartLevel   int
	Lines        int
	BackToBack   bool
	SoftDrop     int
	DropInterval time.Duration

	Combo  ComboStats
	Notice *ComboNotice

	Mode      mode.Progress
	HasMode   bool
	HighScore int
}

// Snapshot copies the current game state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		State:        e.state,
		Grid:         e.board.Grid(),
		Ghost:        e.ghost,
		Held:         e.held,
		CanHold:      e.canHold,
		Next:         slices.Clone(e.queue),
		Score:        e.score,
		Level:        e.level,
		StartLevel:   e.startLevel,
		Lines:        e.lines,
		BackToBack:   e.backToBack,
		SoftDrop:     e.softDrop,
		DropInterval: e.dropInterval(),
		Combo:        e.comboStats(),
	}
	if e.current != nil {
		s.Current = e.current.Clone()
	}
	if e.pending != nil {
		s.Clearing = slices.Clone(e.pending.rows)
		elapsed := e.clock.Now().Sub(e.pending.started)
		s.ClearProgress = min(1, float64(elapsed)/float64(max(e.rules.ClearDelay, time.Millisecond)))
	}
	if e.notice != nil {
		n := *e.notice
		s.Notice = &n
	}
	if e.mode != nil {
		s.Mode = e.mode.Progress()
		s.HasMode = true
	}
	s.HighScore = e.store.Int(store.KeyHighScore, 0)
	return s
}
