package engine

import (
	"time"

	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/piece"
	"github.com/plus3/fruitris/scoring"
	"github.com/plus3/fruitris/store"
)

// tSpinCorners is how many frame corners must be blocked for a T-spin.
const tSpinCorners = 3

// lockPiece merges the current piece into the board and runs the lock
// pipeline: T-spin, combos, completed lines and perfect clear. Lines or a
// T-spin open the clear window; otherwise the next piece spawns at once.
func (e *Engine) lockPiece(now time.Time) {
	p := e.current
	if p == nil {
		return
	}
	e.current = nil

	placed := e.board.Lock(p)
	e.emit(event.Event{Kind: event.PieceLocked, Fruit: p.Kind, Cells: placed})
	e.mode.OnPieceLock()

	tSpin := p.Kind == piece.T && e.lastRotate && e.board.CornersOccupied(p.X, p.Y) >= tSpinCorners

	combo := 0
	var combos []event.Event
	if e.rules.FruitCombos {
		combo, combos = e.checkCombos(now)
	}

	rows := e.board.CompletedLines()
	perfect := len(rows) > 0 && e.board.IsPerfectClear(rows)

	e.log.Debug("piece locked",
		"kind", p.Kind, "x", p.X, "y", p.Y, "rotation", p.Rotation,
		"rows", rows, "tspin", tSpin, "perfect", perfect, "combo", combo)

	if len(rows) == 0 && !tSpin {
		e.spawn()
		return
	}

	e.pending = &pendingClear{
		rows:    rows,
		started: now,
		combo:   combo,
		tSpin:   tSpin,
		perfect: perfect,
	}

	var cells []piece.Point
	for _, y := range rows {
		for x := range board.Width {
			cells = append(cells, piece.Point{X: x, Y: y})
		}
	}
	e.emit(event.Event{Kind: event.ClearStarted, Lines: len(rows), Rows: rows, Cells: cells})
	switch {
	case tSpin:
		e.emit(event.Event{Kind: event.TSpin, Lines: len(rows), Size: len(rows)})
	case len(rows) == 4:
		e.emit(event.Event{Kind: event.Tetris, Lines: 4, Rows: rows})
	default:
		e.emit(event.Event{Kind: event.LineClear, Lines: len(rows), Rows: rows})
	}
	if perfect {
		e.emit(event.Event{Kind: event.PerfectClear, Lines: len(rows)})
	}
	for _, ev := range combos {
		e.emit(ev)
	}
}

// checkCombos scores every same-fruit cluster on the board. Each cluster
// uses the multiplier left by the clusters before it, then bumps it. The
// returned events are only announced when the bonus is going to be paid.
func (e *Engine) checkCombos(now time.Time) (int, []event.Event) {
	total := 0
	var events []event.Event
	for _, c := range e.board.Clusters() {
		bonus := scoring.ComboBonus(c, e.multiplier, e.level)
		total += bonus

		e.totalCombos++
		e.lastCombo = c.Size()
		e.history = append(e.history, ComboRecord{
			Fruit:    c.Fruit,
			Size:     c.Size(),
			Bonus:    bonus,
			Level:    e.level,
			Patterns: c.Patterns,
		})
		if len(e.history) > scoring.MaxHistory {
			e.history = e.history[len(e.history)-scoring.MaxHistory:]
		}
		e.bumpMultiplier(c.Size(), now)

		events = append(events, event.Event{
			Kind:       event.Combo,
			Bonus:      bonus,
			Size:       c.Size(),
			Multiplier: float64(e.multiplier),
			Fruit:      c.Fruit,
			Cells:      c.Cells,
		})
	}
	return total, events
}

// bumpMultiplier raises the combo multiplier and schedules its own decay.
// Decays are never cancelled; each bump owns one.
func (e *Engine) bumpMultiplier(size int, now time.Time) {
	m, ok := e.multiplier.Bump(size)
	if !ok {
		return
	}
	e.multiplier = m
	e.timers.Schedule(now.Add(e.rules.DecayDelay), func() {
		e.multiplier = e.multiplier.Decay()
	})
}

func (e *Engine) showNotice(bonus int, now time.Time) {
	e.notice = &ComboNotice{
		Bonus:      bonus,
		Size:       e.lastCombo,
		Multiplier: float64(e.multiplier),
		Shown:      now,
	}
	e.timers.Cancel(e.noticeTimer)
	e.noticeTimer = e.timers.Schedule(now.Add(e.rules.NoticeTTL), func() {
		e.notice = nil
		e.emit(event.Event{Kind: event.ComboExpired})
	})
}

// completeClear removes the animated rows and pays out the pending clear.
func (e *Engine) completeClear() {
	pc := e.pending
	e.pending = nil
	n := len(pc.rows)

	e.board.RemoveRows(pc.rows)

	res := scoring.Award(scoring.Clear{
		Lines:        n,
		TSpin:        pc.tSpin,
		PerfectClear: pc.perfect,
		Combo:        pc.combo,
		SoftDrop:     e.softDrop,
		Level:        e.level,
	}, e.backToBack)

	if res.BackToBack != e.backToBack {
		e.emit(event.Event{Kind: event.BackToBack, Active: res.BackToBack})
	}
	e.backToBack = res.BackToBack
	e.score += res.Total
	if pc.combo > 0 {
		e.showNotice(pc.combo, e.clock.Now())
	}
	e.softDrop = 0
	e.lines += n

	if lvl := scoring.LevelFor(e.startLevel, e.lines); lvl > e.level {
		e.level = lvl
		e.log.Info("level up", "level", lvl, "lines", e.lines)
		e.emit(event.Event{Kind: event.LevelUp, Level: lvl})
	}

	e.log.Debug("clear applied", "lines", n, "points", res.Total, "b2b", e.backToBack, "score", e.score)

	e.mode.OnLineClear(n, e.level)
	if e.mode.CheckCompletion() {
		e.complete()
		return
	}
	e.spawn()
}

// spawn brings the head of the queue into play.
func (e *Engine) spawn() {
	k := e.queue[0]
	e.queue = append(e.queue[1:], e.source.Next())

	e.current = piece.Spawn(k, board.Width)
	e.lastRotate = false
	if !e.fits(e.current) && !e.spawnFailed() {
		return
	}
	e.canHold = true
	e.updateGhost()
}

// spawnFailed asks the mode to recover from a blocked spawn. It reports
// whether play continues.
func (e *Engine) spawnFailed() bool {
	if e.mode.OnSpawnFailure(e.board) {
		e.pending = nil
		e.log.Info("board wiped after blocked spawn", "mode", e.mode.ID())
		e.emit(event.Event{Kind: event.ZenRecovery})
		return true
	}
	e.gameOver()
	return false
}

func (e *Engine) gameOver() {
	e.current = nil
	e.log.Info("game over", "score", e.score, "lines", e.lines, "level", e.level)
	e.setState(GameOver)
	e.emit(event.Event{Kind: event.GameOver, Level: e.level, Bonus: e.score})
	e.saveHighScore()
}

func (e *Engine) complete() {
	e.current = nil
	p := e.mode.Progress()
	e.log.Info("mode completed", "mode", p.ID, "score", e.score, "elapsed", p.Elapsed)
	e.setState(Completed)
	e.emit(event.Event{Kind: event.ModeCompleted, Level: e.level, Elapsed: p.Elapsed, Bonus: e.score})
	e.saveHighScore()
}

// saveHighScore records the score if it beats the stored one. The write
// happens after the step's events are delivered.
func (e *Engine) saveHighScore() {
	score := e.score
	s := e.store
	e.out.Defer(func() {
		if score > s.Int(store.KeyHighScore, 0) {
			s.SetInt(store.KeyHighScore, score)
		}
	})
}
