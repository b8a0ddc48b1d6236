package engine

import (
	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/mode"
)

// EditBoard lets tests arrange the field mid-game.
func (e *Engine) EditBoard(fn func(b *board.Board)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.board)
	e.updateGhost()
}

// Mode exposes the active policy to tests.
func (e *Engine) Mode() mode.Policy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// SetBackToBack primes the streak flag.
func (e *Engine) SetBackToBack(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.backToBack = on
}

func (e *Engine) PendingTimers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timers.Len()
}
