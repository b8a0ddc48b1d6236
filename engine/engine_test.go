package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/piece"
	"github.com/plus3/fruitris/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupied(g board.Grid) int {
	n := 0
	for y := range board.Height {
		for x := range board.Width {
			if !g[y][x].Empty() {
				n++
			}
		}
	}
	return n
}

func TestSingleLineScoresHundred(t *testing.T) {
	h := newHarness(t, false, piece.I, piece.O, piece.O, piece.O)
	h.e.Start(mode.EnduranceID, 1)

	require.True(t, h.e.MovePiece(-3, 0))
	h.fall()

	h.fall()

	require.True(t, h.e.MovePiece(2, 0))
	h.fall()

	require.True(t, h.e.MovePiece(4, 0))
	h.fall()

	started := h.rec.Find(event.ClearStarted)
	require.Len(t, started, 1)
	assert.Equal(t, []int{19}, started[0].Rows)
	assert.Len(t, started[0].Cells, board.Width)
	assert.Len(t, h.rec.Find(event.LineClear), 1)

	// Nothing moves while the row animates.
	snap := h.e.Snapshot()
	assert.Nil(t, snap.Current)
	assert.Equal(t, []int{19}, snap.Clearing)
	assert.False(t, h.e.MovePiece(1, 0))
	assert.Zero(t, h.e.HardDrop())
	assert.Zero(t, h.e.Score())

	h.settle()

	assert.Equal(t, 100, h.e.Score())
	assert.Equal(t, 1, h.e.Lines())
	assert.Equal(t, 1, h.e.Level())
	assert.Equal(t, engine.Playing, h.e.State())
	assert.NotNil(t, h.e.Snapshot().Current)
}

func TestClearWindowIsStrict(t *testing.T) {
	h := newHarness(t, false, piece.I)
	h.e.Start(mode.EnduranceID, 1)
	h.e.EditBoard(fillRows([]int{19}, 3, 4, 5, 6))
	h.e.EditBoard(func(b *board.Board) { b.Set(0, 18, piece.S) })

	h.e.HardDrop()
	score := h.e.Score()

	h.tick(400 * time.Millisecond)
	assert.Equal(t, score, h.e.Score())
	assert.NotEmpty(t, h.e.Snapshot().Clearing)

	h.tick(time.Millisecond)
	assert.Equal(t, score+100, h.e.Score())
	assert.Empty(t, h.e.Snapshot().Clearing)
}

func TestTenLinesReachLevelTwo(t *testing.T) {
	h := newHarness(t, false, piece.I)
	h.e.Start(mode.EnduranceID, 1)
	require.Equal(t, time.Second, h.e.DropInterval())

	for _, rows := range [][]int{{16, 17, 18, 19}, {16, 17, 18, 19}, {18, 19}} {
		h.e.EditBoard(fillRows(rows, 9))
		h.dropVerticalI(9)
		h.settle()
	}

	assert.Equal(t, 10, h.e.Lines())
	assert.Equal(t, 2, h.e.Level())
	assert.Equal(t, 900*time.Millisecond, h.e.DropInterval())

	up := h.rec.Find(event.LevelUp)
	require.Len(t, up, 1)
	assert.Equal(t, 2, up[0].Level)
	assert.Len(t, h.rec.Find(event.Tetris), 2)
	assert.Len(t, h.rec.Find(event.PerfectClear), 2)
}

func TestTimeAttackCompletion(t *testing.T) {
	t.Run("records first best time", func(t *testing.T) {
		h := newHarness(t, false, piece.I)
		h.e.Start(mode.TimeAttackID, 1)
		assert.Equal(t, mode.TimeAttackSpeed, h.e.DropInterval())

		ta := h.e.Mode().(*mode.TimeAttack)
		ta.Cleared = 36

		h.e.EditBoard(fillRows([]int{16, 17, 18, 19}, 9))
		h.dropVerticalI(9)
		h.settle()

		assert.Equal(t, engine.Completed, h.e.State())
		assert.Nil(t, h.e.Snapshot().Current)
		require.Len(t, h.rec.Find(event.ModeCompleted), 1)

		progress := h.e.Snapshot().Mode
		assert.True(t, progress.Completed)
		assert.True(t, progress.NewRecord)
		assert.Equal(t, 40, progress.Lines)
		assert.Equal(t, 500*time.Millisecond, progress.Elapsed)
		assert.Equal(t, 500, h.e.Store().Int(store.KeyTimeAttackBest, 0))
		assert.Equal(t, h.e.Score(), h.e.HighScore())

		// Finished sessions ignore input.
		assert.False(t, h.e.MovePiece(1, 0))
		assert.False(t, h.e.TogglePause())
	})

	t.Run("keeps faster stored time", func(t *testing.T) {
		h := newHarness(t, false, piece.I)
		require.NoError(t, h.kv.SetString(store.KeyTimeAttackBest, "100"))
		h.e.Start(mode.TimeAttackID, 1)

		h.e.Mode().(*mode.TimeAttack).Cleared = 38
		h.e.EditBoard(fillRows([]int{18, 19}, 9))
		h.dropVerticalI(9)
		h.settle()

		assert.Equal(t, engine.Completed, h.e.State())
		progress := h.e.Snapshot().Mode
		assert.False(t, progress.NewRecord)
		assert.Equal(t, 100*time.Millisecond, progress.BestTime)
		assert.Equal(t, 100, h.e.Store().Int(store.KeyTimeAttackBest, 0))
	})
}

func TestMenuIgnoresActions(t *testing.T) {
	h := newHarness(t, false, piece.T)

	assert.Equal(t, engine.Menu, h.e.State())
	assert.False(t, h.e.MovePiece(1, 0))
	assert.False(t, h.e.RotatePiece(true))
	assert.False(t, h.e.SoftDrop())
	assert.Zero(t, h.e.HardDrop())
	assert.False(t, h.e.HoldPiece())
	assert.False(t, h.e.TogglePause())

	h.tick(10 * time.Second)
	assert.Equal(t, engine.Menu, h.e.State())
	assert.Nil(t, h.e.Snapshot().Current)
	assert.False(t, h.e.Snapshot().HasMode)
}

func TestPauseFreezesGravity(t *testing.T) {
	h := newHarness(t, false, piece.T)
	h.e.Start(mode.EnduranceID, 1)
	y := h.current().Y

	require.True(t, h.e.TogglePause())
	assert.Equal(t, engine.Paused, h.e.State())
	assert.False(t, h.e.MovePiece(1, 0))

	h.tick(5 * time.Second)
	assert.Equal(t, y, h.current().Y)

	require.True(t, h.e.TogglePause())
	assert.Equal(t, engine.Playing, h.e.State())
	h.tick(time.Second)
	assert.Equal(t, y+1, h.current().Y)

	var states []string
	for _, ev := range h.rec.Find(event.StateChanged) {
		states = append(states, ev.State)
	}
	assert.Equal(t, []string{"playing", "paused", "playing"}, states)
}

func TestRotation(t *testing.T) {
	t.Run("blocked rotation restores the piece", func(t *testing.T) {
		h := newHarness(t, false, piece.T)
		h.e.Start(mode.EnduranceID, 1)
		before := *h.current()

		own := map[piece.Point]bool{}
		for _, c := range before.Cells() {
			own[c] = true
		}
		h.e.EditBoard(func(b *board.Board) {
			for y := range board.Height {
				for x := range board.Width {
					if !own[piece.Point{X: x, Y: y}] {
						b.Set(x, y, piece.S)
					}
				}
			}
		})
		h.rec.Reset()

		assert.False(t, h.e.RotatePiece(true))
		assert.False(t, h.e.RotatePiece(false))
		assert.Equal(t, before, *h.current())
		assert.Empty(t, h.rec.Find(event.PieceRotated))
	})

	t.Run("wall kick off the left wall", func(t *testing.T) {
		h := newHarness(t, false, piece.T)
		h.e.Start(mode.EnduranceID, 1)

		require.True(t, h.e.RotatePiece(true))
		for h.e.MovePiece(-1, 0) {
		}
		require.Equal(t, -1, h.current().X)

		require.True(t, h.e.RotatePiece(true))
		cur := h.current()
		assert.Equal(t, 2, cur.Rotation)
		assert.Equal(t, 0, cur.X)
		assert.Len(t, h.rec.Find(event.PieceRotated), 2)
	})

	t.Run("O never changes", func(t *testing.T) {
		h := newHarness(t, false, piece.O)
		h.e.Start(mode.EnduranceID, 1)
		before := h.current().Cells()

		require.True(t, h.e.RotatePiece(true))
		assert.Equal(t, before, h.current().Cells())
	})
}

func TestGhostMatchesHardDrop(t *testing.T) {
	h := newHarness(t, false, piece.T, piece.O)
	h.e.Start(mode.EnduranceID, 1)

	snap := h.e.Snapshot()
	want := snap.Ghost.Y - snap.Current.Y

	assert.Equal(t, 17, want)
	assert.Equal(t, want, h.e.HardDrop())
	assert.Equal(t, 2*want, h.e.Score())

	drops := h.rec.Find(event.HardDrop)
	require.Len(t, drops, 1)
	assert.Equal(t, want, drops[0].Distance)
}

func TestHold(t *testing.T) {
	h := newHarness(t, false, piece.T, piece.I, piece.O, piece.S, piece.Z, piece.J, piece.L)
	h.e.Start(mode.EnduranceID, 1)

	snap := h.e.Snapshot()
	assert.Equal(t, piece.T, snap.Current.Kind)
	assert.Equal(t, []piece.Kind{piece.I, piece.O, piece.S}, snap.Next)
	assert.True(t, snap.CanHold)

	require.True(t, h.e.HoldPiece())
	snap = h.e.Snapshot()
	assert.Equal(t, piece.I, snap.Current.Kind)
	assert.Equal(t, piece.T, snap.Held)
	assert.False(t, snap.CanHold)
	assert.Equal(t, []piece.Kind{piece.O, piece.S, piece.Z}, snap.Next)

	assert.False(t, h.e.HoldPiece(), "second hold before a lock")

	h.e.HardDrop()
	require.Equal(t, piece.O, h.current().Kind)
	require.True(t, h.e.HoldPiece())

	snap = h.e.Snapshot()
	assert.Equal(t, piece.T, snap.Current.Kind)
	assert.Equal(t, 0, snap.Current.Rotation)
	assert.Equal(t, piece.SpawnX(board.Width), snap.Current.X)
	assert.Equal(t, piece.O, snap.Held)
	assert.Equal(t, []piece.Kind{piece.S, piece.Z, piece.J}, snap.Next, "swap leaves the queue alone")
	assert.Len(t, h.rec.Find(event.Hold), 2)
}

func TestSoftDropPaidWithClear(t *testing.T) {
	h := newHarness(t, false, piece.I)
	h.e.Start(mode.EnduranceID, 1)
	h.e.EditBoard(fillRows([]int{19}, 3, 4, 5, 6))
	h.e.EditBoard(func(b *board.Board) { b.Set(0, 18, piece.S) })

	for range 3 {
		require.True(t, h.e.SoftDrop())
	}
	assert.Equal(t, 3, h.e.Snapshot().SoftDrop)
	assert.Zero(t, h.e.Score())

	assert.Equal(t, 15, h.e.HardDrop())
	assert.Equal(t, 30, h.e.Score())

	h.settle()
	assert.Equal(t, 133, h.e.Score())
	assert.Zero(t, h.e.Snapshot().SoftDrop)
}

func TestTSpin(t *testing.T) {
	slot := func(b *board.Board) {
		fillRows([]int{19}, 4)(b)
		b.Set(3, 16, piece.S)
		b.Set(3, 18, piece.Z)
	}

	t.Run("rotation into slot", func(t *testing.T) {
		h := newHarness(t, false, piece.T, piece.O)
		h.e.Start(mode.EnduranceID, 1)
		h.e.EditBoard(slot)

		require.True(t, h.e.RotatePiece(true))
		h.fall()

		require.Len(t, h.rec.Find(event.TSpin), 1)
		assert.Empty(t, h.rec.Find(event.LineClear))

		h.settle()
		assert.Equal(t, 800, h.e.Score())
		assert.Equal(t, 1, h.e.Lines())
		assert.True(t, h.e.Snapshot().BackToBack)

		b2b := h.rec.Find(event.BackToBack)
		require.Len(t, b2b, 1)
		assert.True(t, b2b[0].Active)
	})

	t.Run("move after rotation is a plain clear", func(t *testing.T) {
		h := newHarness(t, false, piece.T, piece.O)
		h.e.Start(mode.EnduranceID, 1)
		h.e.EditBoard(slot)

		require.True(t, h.e.RotatePiece(true))
		require.True(t, h.e.MovePiece(0, 1))
		h.fall()
		h.settle()

		assert.Empty(t, h.rec.Find(event.TSpin))
		assert.Equal(t, 100, h.e.Score())
		assert.False(t, h.e.Snapshot().BackToBack)
	})

	t.Run("streak boosts the base", func(t *testing.T) {
		h := newHarness(t, false, piece.T, piece.O)
		h.e.Start(mode.EnduranceID, 1)
		h.e.EditBoard(slot)
		h.e.SetBackToBack(true)

		require.True(t, h.e.RotatePiece(true))
		h.fall()
		h.settle()

		assert.Equal(t, 1200, h.e.Score())
		assert.Empty(t, h.rec.Find(event.BackToBack), "streak unchanged")
	})
}

func TestBlockedSpawn(t *testing.T) {
	play := func(h *harness, id mode.ID) {
		h.e.Start(id, 1)
		h.e.EditBoard(func(b *board.Board) { b.Set(4, 10, piece.S) })
		require.Equal(t, 7, h.e.HardDrop())

		h.e.EditBoard(func(b *board.Board) { b.Set(4, 3, piece.S) })
		require.Zero(t, h.e.HardDrop())
	}

	t.Run("ends the game", func(t *testing.T) {
		h := newHarness(t, false, piece.O)
		play(h, mode.EnduranceID)

		assert.Equal(t, engine.GameOver, h.e.State())
		assert.Nil(t, h.e.Snapshot().Current)
		over := h.rec.Find(event.GameOver)
		require.Len(t, over, 1)
		assert.Equal(t, 14, over[0].Bonus)
		assert.Equal(t, 14, h.e.HighScore())

		v, err := h.kv.GetString(store.KeyHighScore)
		require.NoError(t, err)
		assert.Equal(t, "14", v)
	})

	t.Run("lower score keeps the record", func(t *testing.T) {
		h := newHarness(t, false, piece.O)
		require.NoError(t, h.kv.SetString(store.KeyHighScore, "500"))
		play(h, mode.EnduranceID)

		assert.Equal(t, engine.GameOver, h.e.State())
		assert.Equal(t, 500, h.e.HighScore())
	})

	t.Run("relaxed mode wipes and continues", func(t *testing.T) {
		h := newHarness(t, false, piece.O)
		play(h, mode.RelaxedID)

		assert.Equal(t, engine.Playing, h.e.State())
		assert.Len(t, h.rec.Find(event.ZenRecovery), 1)
		assert.Empty(t, h.rec.Find(event.GameOver))

		snap := h.e.Snapshot()
		require.NotNil(t, snap.Current)
		assert.Zero(t, occupied(snap.Grid))
		assert.Equal(t, 1, snap.Mode.Recoveries)
		assert.Equal(t, mode.RelaxedSpeed, snap.DropInterval)
	})
}

func TestFruitCombo(t *testing.T) {
	h := newHarness(t, true, piece.O, piece.T, piece.I)
	h.e.Start(mode.EnduranceID, 1)

	h.e.HardDrop()

	snap := h.e.Snapshot()
	assert.InDelta(t, 1.1, snap.Combo.Multiplier, 1e-9)
	assert.Equal(t, 1, snap.Combo.TotalCombos)
	assert.Equal(t, 4, snap.Combo.LastSize)
	require.Len(t, snap.Combo.History, 1)
	assert.Equal(t, 300, snap.Combo.History[0].Bonus)
	assert.Equal(t, board.PatternSquare, snap.Combo.History[0].Patterns)
	assert.Equal(t, 1, h.e.PendingTimers())

	// No lines, so nothing is paid and nothing is announced.
	assert.Equal(t, 2*17, h.e.Score())
	assert.Empty(t, h.rec.Find(event.Combo))
	assert.Nil(t, snap.Notice)

	// The square is counted again next to the landed T, still unpaid.
	h.e.HardDrop()
	assert.Empty(t, h.rec.Find(event.Combo))
	assert.Nil(t, h.e.Snapshot().Notice)
	stats := h.e.ComboStats()
	assert.Equal(t, 3, stats.TotalCombos)
	assert.InDelta(t, 1.3, stats.Multiplier, 1e-9)
	assert.Equal(t, 3, h.e.PendingTimers())

	h.tick(5100 * time.Millisecond)
	assert.InDelta(t, 1.15, h.e.ComboStats().Multiplier, 1e-9)
	assert.Zero(t, h.e.PendingTimers())
}

func TestComboBankedWithClear(t *testing.T) {
	h := newHarness(t, true, piece.O, piece.I)
	h.e.Start(mode.EnduranceID, 1)
	h.e.EditBoard(func(b *board.Board) {
		for x := range board.Width {
			if x == 4 || x == 5 {
				continue
			}
			b.Set(x, 19, []piece.Kind{piece.J, piece.L}[x%2])
		}
		b.Set(0, 17, piece.S)
	})

	h.e.HardDrop()
	combos := h.rec.Find(event.Combo)
	require.Len(t, combos, 1)
	assert.Equal(t, 300, combos[0].Bonus)
	assert.Equal(t, 4, combos[0].Size)
	assert.Equal(t, piece.O, combos[0].Fruit)
	assert.Nil(t, h.e.Snapshot().Notice, "notice waits for the payout")

	h.settle()

	// 34 hard drop, 100 line, 300 combo.
	assert.Equal(t, 434, h.e.Score())
	notice := h.e.Snapshot().Notice
	require.NotNil(t, notice)
	assert.Equal(t, 300, notice.Bonus)

	h.tick(2100 * time.Millisecond)
	assert.Nil(t, h.e.Snapshot().Notice)
	assert.Len(t, h.rec.Find(event.ComboExpired), 1)
}

func TestSimultaneousClustersDecayIndependently(t *testing.T) {
	h := newHarness(t, true, piece.O, piece.I)
	h.e.Start(mode.EnduranceID, 1)
	h.e.EditBoard(func(b *board.Board) {
		for x, k := range []piece.Kind{piece.S, piece.Z, piece.S, piece.Z} {
			b.Set(x, 19, k)
		}
		for x := 6; x < board.Width; x++ {
			b.Set(x, 19, piece.J)
		}
	})

	// The square completes the row next to a four-grape line.
	h.e.HardDrop()
	require.Len(t, h.rec.Find(event.Combo), 2)
	assert.InDelta(t, 1.2, h.e.ComboStats().Multiplier, 1e-9)
	assert.Equal(t, 2, h.e.PendingTimers())

	h.settle()
	require.NotNil(t, h.e.Snapshot().Notice)
	assert.Equal(t, 3, h.e.PendingTimers())

	h.tick(5 * time.Second)
	assert.InDelta(t, 1.1, h.e.ComboStats().Multiplier, 1e-9)
	assert.Zero(t, h.e.PendingTimers())
}

func TestStartingLevel(t *testing.T) {
	h := newHarness(t, false, piece.T)
	h.e.Store().SetInt(store.KeyStartingLevel, 7)

	h.e.Start(mode.EnduranceID, 0)
	assert.Equal(t, 7, h.e.Level())
	assert.Equal(t, 400*time.Millisecond, h.e.DropInterval())

	h.e.Start(mode.EnduranceID, 99)
	assert.Equal(t, 15, h.e.Level())
	assert.Equal(t, 100*time.Millisecond, h.e.DropInterval())
	assert.Equal(t, 15, h.e.Snapshot().StartLevel)
}

func TestRestartClearsSession(t *testing.T) {
	h := newHarness(t, true, piece.O, piece.I)
	h.e.Start(mode.EnduranceID, 1)
	h.e.HardDrop()
	require.NotZero(t, h.e.Score())
	require.NotZero(t, h.e.PendingTimers())

	h.e.Start(mode.RelaxedID, 1)
	snap := h.e.Snapshot()
	assert.Zero(t, snap.Score)
	assert.Zero(t, occupied(snap.Grid))
	assert.Zero(t, snap.Combo.TotalCombos)
	assert.Nil(t, snap.Notice)
	assert.Zero(t, h.e.PendingTimers())
	assert.Equal(t, mode.RelaxedID, snap.Mode.ID)
}

func TestQuitSavesHighScore(t *testing.T) {
	h := newHarness(t, false, piece.O)
	h.e.Start(mode.EnduranceID, 1)
	h.e.HardDrop()

	h.e.Quit()
	assert.Equal(t, engine.Menu, h.e.State())
	assert.Equal(t, 34, h.e.HighScore())
	assert.Zero(t, h.e.Score())
}

func TestSinkMayCallBack(t *testing.T) {
	var e *engine.Engine
	var seen []engine.State
	sink := event.SinkFunc(func(ev event.Event) {
		if ev.Kind == event.StateChanged {
			seen = append(seen, e.Snapshot().State)
		}
	})
	e = engine.New(engine.WithSink(sink), engine.WithSeed(1))

	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Start(mode.EnduranceID, 1)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sink deadlocked the engine")
	}
	assert.Equal(t, []engine.State{engine.Playing}, seen)
}

func TestRunStopsWithContext(t *testing.T) {
	h := newHarness(t, false, piece.T)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	h.e.Run(ctx, time.Millisecond)

	stats := h.e.Stats()
	require.Equal(t, 4, stats.StageCount)
	var names []string
	for _, s := range stats.Stages {
		names = append(names, s.Name)
		assert.Positive(t, s.ExecutionCount)
	}
	assert.Equal(t, []string{"TimerStage", "ModeClockStage", "ClearStage", "GravityStage"}, names)
}
