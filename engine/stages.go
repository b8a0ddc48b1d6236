package engine

// TimerStage fires due combo decays and notice expiries. It runs in every
// state.
type TimerStage struct {
	engine *Engine
}

// Execute runs the stage for one frame.
func (s *TimerStage) Execute(frame *Frame) {
	s.engine.timers.Drain(frame.Now)
}

// ModeClockStage advances the mode's clock while playing.
type ModeClockStage struct {
	engine *Engine
}

func (s *ModeClockStage) Execute(frame *Frame) {
	e := s.engine
	if e.state != Playing || e.mode == nil {
		return
	}
	e.mode.Update(frame.Delta)
}

// ClearStage holds the game while cleared rows animate, then applies the
// clear. Either way the tick is consumed.
type ClearStage struct {
	engine *Engine
}

func (s *ClearStage) Execute(frame *Frame) {
	e := s.engine
	if e.state != Playing || e.pending == nil {
		return
	}
	if frame.Now.Sub(e.pending.started) > e.rules.ClearDelay {
		e.completeClear()
	}
	frame.Settled = true
}

// GravityStage drops the current piece one row per drop interval and locks
// it when it cannot fall.
type GravityStage struct {
	engine *Engine
}

func (s *GravityStage) Execute(frame *Frame) {
	e := s.engine
	if frame.Settled || !e.active() {
		return
	}
	e.dropTimer += frame.Delta
	if e.dropTimer < e.dropInterval() {
		return
	}
	e.dropTimer = 0

	p := e.current
	if e.board.IsValidPosition(p.X, p.Y+1, p.Shape()) {
		p.Move(0, 1)
		e.updateGhost()
		return
	}
	e.lockPiece(frame.Now)
}
