// Package hud turns engine events into short-lived banner text and formats
// mode progress for the front-ends.
package hud

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/plus3/fruitris/event"
	"github.com/plus3/fruitris/mode"
)

// BannerTTL is how long a banner stays up.
const BannerTTL = 1500 * time.Millisecond

type banner struct {
	text    string
	expires time.Time
}

// HUD collects banners from engine events. It is an event.Sink and may be
// notified from the engine's goroutine while a renderer reads it.
type HUD struct {
	mu      sync.Mutex
	now     func() time.Time
	banners []banner
}

func New(now func() time.Time) *HUD {
	return &HUD{now: now}
}

func (h *HUD) Notify(e event.Event) {
	text := Banner(e)
	if text == "" {
		return
	}
	h.mu.Lock()
	h.banners = append(h.banners, banner{text: text, expires: h.now().Add(BannerTTL)})
	h.mu.Unlock()
}

// Banner is the text shown for an event, or "" if it shows nothing.
func Banner(e event.Event) string {
	switch e.Kind {
	case event.Tetris:
		return "TETRIS!"
	case event.TSpin:
		return strings.TrimSpace("T-SPIN " + LineWord(e.Lines))
	case event.LineClear:
		return LineWord(e.Lines)
	case event.BackToBack:
		if e.Active {
			return "BACK-TO-BACK"
		}
	case event.PerfectClear:
		return "PERFECT CLEAR!"
	case event.Combo:
		return fmt.Sprintf("%s x%d +%d", e.Fruit.Fruit(), e.Size, e.Bonus)
	case event.LevelUp:
		return fmt.Sprintf("LEVEL %d", e.Level)
	case event.ZenRecovery:
		return "FRESH START"
	case event.ModeCompleted:
		return "COMPLETE!"
	}
	return ""
}

func LineWord(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	}
	return "TETRIS"
}

// Active drops expired banners and returns the rest, newest last.
func (h *HUD) Active() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	live := h.banners[:0]
	for _, b := range h.banners {
		if now.Before(b.expires) {
			live = append(live, b)
		}
	}
	h.banners = live

	out := make([]string, len(live))
	for i, b := range live {
		out[i] = b.text
	}
	return out
}

func (h *HUD) Clear() {
	h.mu.Lock()
	h.banners = nil
	h.mu.Unlock()
}

// ModeLines formats mode progress for a side panel.
func ModeLines(p mode.Progress) []string {
	lines := []string{strings.ToUpper(p.Name)}
	switch p.ID {
	case mode.TimeAttackID:
		lines = append(lines,
			fmt.Sprintf("%d/%d LINES", p.Lines, p.TargetLines),
			fmt.Sprintf("TIME %s", p.Elapsed.Truncate(10*time.Millisecond)))
		if p.HasBestTime {
			lines = append(lines, fmt.Sprintf("BEST %s", p.BestTime.Truncate(10*time.Millisecond)))
		}
	case mode.EnduranceID:
		lines = append(lines, fmt.Sprintf("GOAL LEVEL %d", p.TargetLevel))
		if p.BestLevel > 0 {
			lines = append(lines, fmt.Sprintf("BEST LEVEL %d", p.BestLevel))
		}
	case mode.RelaxedID:
		if p.Recoveries > 0 {
			lines = append(lines, fmt.Sprintf("RESETS %d", p.Recoveries))
		}
	}
	return lines
}
