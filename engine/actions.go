package engine

import (
	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/piece"
	"github.com/plus3/fruitris/scoring"
	"github.com/plus3/fruitris/store"
)

// Start begins a new session in the given mode. A startingLevel of zero or
// less uses the stored preference; any other value is clamped to [1, 15].
func (e *Engine) Start(id mode.ID, startingLevel int) {
	e.mu.Lock()
	defer e.unlockAndFlush()

	if startingLevel <= 0 {
		startingLevel = e.store.Int(store.KeyStartingLevel, scoring.MinLevel)
	}

	e.resetLocked()
	e.source = e.newSource()
	for range e.rules.QueueLength {
		e.queue = append(e.queue, e.source.Next())
	}
	e.mode = mode.New(id, e.store)
	e.mode.Initialize()
	e.startLevel = scoring.ClampStartLevel(startingLevel)
	e.level = e.startLevel

	e.log.Info("game started", "mode", e.mode.ID(), "level", e.level)
	e.setState(Playing)
	e.spawn()
}

// Reset abandons the session and returns to the menu.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.unlockAndFlush()
	e.resetLocked()
}

// Quit records the score of an unfinished session and returns to the menu.
func (e *Engine) Quit() {
	e.mu.Lock()
	defer e.unlockAndFlush()
	if e.state == Playing || e.state == Paused {
		e.saveHighScore()
	}
	e.resetLocked()
}

// TogglePause switches between Playing and Paused. It reports whether the
// state changed.
func (e *Engine) TogglePause() bool {
	e.mu.Lock()
	defer e.unlockAndFlush()
	switch e.state {
	case Playing:
		e.setState(Paused)
	case Paused:
		e.setState(Playing)
	default:
		return false
	}
	e.log.Info("pause toggled", "state", e.state)
	return true
}

func (e *Engine) active() bool {
	return e.state == Playing && e.current != nil
}

func (e *Engine) fits(p *piece.Piece) bool {
	return e.board.IsValidPosition(p.X, p.Y, p.Shape())
}

func (e *Engine) updateGhost() {
	if e.current == nil {
		return
	}
	e.ghost = e.current.GroundedShadow(e.board)
}

// MovePiece shifts the current piece. It reports false and changes nothing
// if the target is blocked.
func (e *Engine) MovePiece(dx, dy int) bool {
	e.mu.Lock()
	defer e.unlockAndFlush()
	return e.move(dx, dy)
}

func (e *Engine) move(dx, dy int) bool {
	if !e.active() {
		return false
	}
	p := e.current
	if !e.board.IsValidPosition(p.X+dx, p.Y+dy, p.Shape()) {
		return false
	}
	p.Move(dx, dy)
	e.lastRotate = false
	if dx != 0 {
		e.emit(event.Event{Kind: event.PieceMoved, Distance: dx})
	}
	e.updateGhost()
	return true
}

// RotatePiece rotates the current piece, trying each wall kick in order.
// When every kick is blocked the piece is restored exactly.
func (e *Engine) RotatePiece(clockwise bool) bool {
	e.mu.Lock()
	defer e.unlockAndFlush()

	if !e.active() {
		return false
	}
	p := e.current
	origin := p.Position()
	from, to := p.Rotate(clockwise)

	for _, kick := range p.KickOffsets(from, to) {
		p.X, p.Y = origin.X+kick.X, origin.Y+kick.Y
		if e.fits(p) {
			e.lastRotate = true
			e.emit(event.Event{Kind: event.PieceRotated, Fruit: p.Kind})
			e.updateGhost()
			return true
		}
	}

	p.Rotation = from
	p.X, p.Y = origin.X, origin.Y
	return false
}

// SoftDrop moves the piece down one row, earning a point that is paid out
// with the next clear.
func (e *Engine) SoftDrop() bool {
	e.mu.Lock()
	defer e.unlockAndFlush()

	if !e.move(0, 1) {
		return false
	}
	e.softDrop++
	e.dropTimer = 0
	e.emit(event.Event{Kind: event.SoftDrop})
	return true
}

// HardDrop drops the piece to its landing row and locks it, scoring two
// points per row travelled. It returns the distance.
func (e *Engine) HardDrop() int {
	e.mu.Lock()
	defer e.unlockAndFlush()

	if !e.active() {
		return 0
	}
	distance := 0
	for e.move(0, 1) {
		distance++
	}
	e.score += scoring.HardDropPoints(distance)
	e.emit(event.Event{Kind: event.HardDrop, Distance: distance})
	e.lockPiece(e.clock.Now())
	return distance
}

// HoldPiece stashes the current piece, bringing back the held one or the
// next in the queue. Only one hold is allowed per lock.
func (e *Engine) HoldPiece() bool {
	e.mu.Lock()
	defer e.unlockAndFlush()

	if !e.active() || !e.canHold {
		return false
	}

	kind := e.current.Kind
	if e.held == piece.None {
		e.held = kind
		e.spawn()
	} else {
		e.held, kind = kind, e.held
		e.current = piece.Spawn(kind, board.Width)
		e.lastRotate = false
		if !e.fits(e.current) && !e.spawnFailed() {
			return true
		}
	}
	if e.state != Playing {
		return true
	}

	e.canHold = false
	e.updateGhost()
	e.emit(event.Event{Kind: event.Hold, Fruit: e.held})
	return true
}
