package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/hud"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/piece"
	"github.com/plus3/fruitris/scoring"
	"github.com/plus3/fruitris/sound"
	"github.com/plus3/fruitris/store"
)

const (
	originX = 2
	originY = 1

	// Each board cell is two terminal columns so emoji and blocks stay square.
	cellWidth = 2

	panelX     = originX + board.Width*cellWidth + 4
	volumeStep = 0.1
)

var (
	frameStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	ghostStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	flashStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	fruitColors = map[piece.Kind]tcell.Color{
		piece.I: tcell.NewRGBColor(0xf5, 0xd7, 0x3b),
		piece.O: tcell.NewRGBColor(0xff, 0x98, 0x1f),
		piece.T: tcell.NewRGBColor(0xe0, 0x32, 0x32),
		piece.S: tcell.NewRGBColor(0xf0, 0x4a, 0x6e),
		piece.Z: tcell.NewRGBColor(0x7c, 0xc0, 0x3c),
		piece.J: tcell.NewRGBColor(0x8e, 0x4c, 0xc8),
		piece.L: tcell.NewRGBColor(0xd8, 0xb0, 0x3c),
	}
)

// canvas is the part of tcell.Screen the renderer draws through.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// app wires terminal keys and drawing to the engine.
type app struct {
	engine   *engine.Engine
	prefs    *store.Safe
	settings store.Settings
	player   *sound.Player
	hud      *hud.HUD

	// ascii draws coloured blocks instead of fruit emoji.
	ascii bool
}

// handleKey applies one key press. It returns false when the program
// should exit.
func (a *app) handleKey(k tcell.Key, r rune) bool {
	if k == tcell.KeyCtrlC {
		return false
	}
	if k == tcell.KeyRune {
		switch r {
		case 'm':
			a.player.ToggleMute()
			a.saveSettings()
			return true
		case '-':
			a.player.SetVolume(a.player.Volume() - volumeStep)
			a.saveSettings()
			return true
		case '+', '=':
			a.player.SetVolume(a.player.Volume() + volumeStep)
			a.saveSettings()
			return true
		}
	}

	e := a.engine
	switch e.State() {
	case engine.Menu:
		return a.menuKey(k, r)
	case engine.Playing:
		a.playKey(k, r)
	case engine.Paused:
		switch {
		case k == tcell.KeyEscape, r == 'p':
			e.TogglePause()
		case r == 'q':
			e.Quit()
		}
	case engine.GameOver, engine.Completed:
		switch {
		case r == 'r':
			a.start(e.Snapshot().Mode.ID)
		case k == tcell.KeyEnter, k == tcell.KeyEscape:
			e.Reset()
		}
	}
	return true
}

func (a *app) menuKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape:
		return false
	case tcell.KeyUp:
		a.settings.StartingLevel = scoring.ClampStartLevel(a.settings.StartingLevel + 1)
		a.saveSettings()
		return true
	case tcell.KeyDown:
		a.settings.StartingLevel = scoring.ClampStartLevel(a.settings.StartingLevel - 1)
		a.saveSettings()
		return true
	}
	if r == 'q' {
		return false
	}
	if id, ok := mode.ParseID(string(r)); ok && k == tcell.KeyRune {
		a.start(id)
	}
	return true
}

// Terminals report key repeats as fresh presses, so every event is one action.
func (a *app) playKey(k tcell.Key, r rune) {
	e := a.engine
	switch k {
	case tcell.KeyLeft:
		e.MovePiece(-1, 0)
		return
	case tcell.KeyRight:
		e.MovePiece(1, 0)
		return
	case tcell.KeyDown:
		e.SoftDrop()
		return
	case tcell.KeyUp:
		e.RotatePiece(true)
		return
	case tcell.KeyEscape:
		e.TogglePause()
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch r {
	case 'h':
		e.MovePiece(-1, 0)
	case 'l':
		e.MovePiece(1, 0)
	case 'j':
		e.SoftDrop()
	case 'k', 'x':
		e.RotatePiece(true)
	case 'z':
		e.RotatePiece(false)
	case ' ':
		e.HardDrop()
	case 'c':
		e.HoldPiece()
	case 'p':
		e.TogglePause()
	}
}

func (a *app) start(id mode.ID) {
	a.hud.Clear()
	a.engine.Start(id, a.settings.StartingLevel)
}

func (a *app) saveSettings() {
	a.player.Apply(&a.settings)
	store.SaveSettings(a.prefs, a.settings)
}

// text writes s from (x, y) one column per rune.
func text(c canvas, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x++
	}
}

type look uint8

const (
	solid look = iota
	ghost
	flash
)

func (a *app) glyph(c canvas, x, y int, k piece.Kind, l look) {
	cx := originX + x*cellWidth
	cy := originY + y
	style := tcell.StyleDefault.Foreground(fruitColors[k])
	switch {
	case l == ghost:
		c.SetContent(cx, cy, '░', nil, ghostStyle)
		c.SetContent(cx+1, cy, '░', nil, ghostStyle)
	case l == flash:
		c.SetContent(cx, cy, '█', nil, flashStyle)
		c.SetContent(cx+1, cy, '█', nil, flashStyle)
	case a.ascii:
		c.SetContent(cx, cy, '█', nil, style)
		c.SetContent(cx+1, cy, '█', nil, style)
	default:
		sym := []rune(k.Symbol())
		c.SetContent(cx, cy, sym[0], sym[1:], style)
	}
}

func (a *app) draw(c canvas, s engine.Snapshot, banners []string) {
	// Frame.
	right := originX + board.Width*cellWidth
	bottom := originY + board.Height
	for y := originY; y < bottom; y++ {
		c.SetContent(originX-1, y, '│', nil, frameStyle)
		c.SetContent(right, y, '│', nil, frameStyle)
	}
	for x := originX - 1; x <= right; x++ {
		c.SetContent(x, bottom, '─', nil, frameStyle)
	}
	c.SetContent(originX-1, bottom, '└', nil, frameStyle)
	c.SetContent(right, bottom, '┘', nil, frameStyle)

	for y := range board.Height {
		clearing := slices.Contains(s.Clearing, y)
		for x := range board.Width {
			cell := s.Grid[y][x]
			if cell.Empty() {
				continue
			}
			l := solid
			if clearing && int(s.ClearProgress*8)%2 == 0 {
				l = flash
			}
			a.glyph(c, x, y, cell.Fruit, l)
		}
	}

	if s.Current != nil {
		shadow := *s.Current
		shadow.X, shadow.Y = s.Ghost.X, s.Ghost.Y
		for _, p := range shadow.Cells() {
			if p.Y >= 0 {
				a.glyph(c, p.X, p.Y, shadow.Kind, ghost)
			}
		}
		for _, p := range s.Current.Cells() {
			if p.Y >= 0 {
				a.glyph(c, p.X, p.Y, s.Current.Kind, solid)
			}
		}
	}

	a.drawPanel(c, s, banners)

	switch s.State {
	case engine.Menu:
		a.overlay(c,
			"FRUITRIS",
			"",
			"1 SPRINT",
			"2 MARATHON",
			"3 ZEN",
			"",
			fmt.Sprintf("LEVEL %d", a.settings.StartingLevel),
			"UP/DOWN",
			"",
			"Q exit")
	case engine.Paused:
		a.overlay(c, "PAUSED", "", "P resume", "Q menu")
	case engine.GameOver:
		a.overlay(c, "GAME OVER", "", "R retry", "ENTER menu")
	case engine.Completed:
		lines := []string{"COMPLETE!", ""}
		if s.Mode.NewRecord {
			lines = append(lines, "NEW RECORD", "")
		}
		a.overlay(c, append(lines, "R retry", "ENTER menu")...)
	}
}

func (a *app) drawPanel(c canvas, s engine.Snapshot, banners []string) {
	y := originY
	line := func(format string, args ...any) {
		text(c, panelX, y, textStyle, fmt.Sprintf(format, args...))
		y++
	}

	line("SCORE  %d", s.Score)
	line("BEST   %d", s.HighScore)
	line("LEVEL  %d", s.Level)
	line("LINES  %d", s.Lines)
	if s.BackToBack {
		line("B2B")
	}
	if s.Combo.Multiplier > 1 {
		line("COMBO  x%.2f", s.Combo.Multiplier)
	}
	y++

	if s.HasMode {
		for _, l := range hud.ModeLines(s.Mode) {
			line("%s", l)
		}
		y++
	}

	names := make([]string, len(s.Next))
	for i, k := range s.Next {
		names[i] = k.String()
	}
	line("NEXT   %s", strings.Join(names, " "))
	held := "-"
	if s.Held != piece.None {
		held = s.Held.String()
	}
	line("HOLD   %s", held)
	y++

	for _, b := range banners {
		line("%s", b)
	}

	vol := fmt.Sprintf("VOL %d%%", int(a.player.Volume()*100+0.5))
	if a.player.Muted() {
		vol = "MUTED"
	}
	text(c, panelX, originY+board.Height, textStyle, vol)
}

// overlay centres lines over the board.
func (a *app) overlay(c canvas, lines ...string) {
	width := board.Width * cellWidth
	y := originY + board.Height/2 - len(lines)/2
	for _, l := range lines {
		x := originX + (width-len(l))/2
		text(c, x, y, dimStyle, l)
		y++
	}
}
