package hud_test

import (
	"testing"
	"time"

	"github.com/plus3/fruitris/clock"
	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/hud"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/piece"
	"github.com/stretchr/testify/assert"
)

func TestBanner(t *testing.T) {
	tests := []struct {
		name string
		e    event.Event
		want string
	}{
		{"double", event.Event{Kind: event.LineClear, Lines: 2}, "DOUBLE"},
		{"tetris", event.Event{Kind: event.Tetris, Lines: 4}, "TETRIS!"},
		{"zero line t-spin", event.Event{Kind: event.TSpin}, "T-SPIN"},
		{"t-spin triple", event.Event{Kind: event.TSpin, Lines: 3}, "T-SPIN TRIPLE"},
		{"b2b start", event.Event{Kind: event.BackToBack, Active: true}, "BACK-TO-BACK"},
		{"b2b end", event.Event{Kind: event.BackToBack}, ""},
		{"combo", event.Event{Kind: event.Combo, Fruit: piece.O, Size: 4, Bonus: 300}, "orange x4 +300"},
		{"level", event.Event{Kind: event.LevelUp, Level: 3}, "LEVEL 3"},
		{"quiet", event.Event{Kind: event.PieceMoved}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hud.Banner(tt.e))
		})
	}
}

func TestBannersExpire(t *testing.T) {
	clk := clock.NewManual(time.Time{})
	h := hud.New(clk.Now)

	h.Notify(event.Event{Kind: event.LineClear, Lines: 1})
	h.Notify(event.Event{Kind: event.PieceLocked})
	clk.Advance(time.Second)
	h.Notify(event.Event{Kind: event.PerfectClear})
	assert.Equal(t, []string{"SINGLE", "PERFECT CLEAR!"}, h.Active())

	clk.Advance(hud.BannerTTL - time.Second)
	assert.Equal(t, []string{"PERFECT CLEAR!"}, h.Active())

	h.Clear()
	assert.Empty(t, h.Active())
}

func TestModeLines(t *testing.T) {
	sprint := mode.Progress{
		ID: mode.TimeAttackID, Name: "Sprint", Lines: 12, TargetLines: 40,
		Elapsed: 61234 * time.Millisecond, BestTime: 90 * time.Second, HasBestTime: true,
	}
	assert.Equal(t, []string{"SPRINT", "12/40 LINES", "TIME 1m1.23s", "BEST 1m30s"}, hud.ModeLines(sprint))

	marathon := mode.Progress{ID: mode.EnduranceID, Name: "Marathon", TargetLevel: 15}
	assert.Equal(t, []string{"MARATHON", "GOAL LEVEL 15"}, hud.ModeLines(marathon))

	zen := mode.Progress{ID: mode.RelaxedID, Name: "Zen", Recoveries: 2}
	assert.Equal(t, []string{"ZEN", "RESETS 2"}, hud.ModeLines(zen))
}
