package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/hud"
	"github.com/plus3/fruitris/mode"
	"github.com/plus3/fruitris/scoring"
	"github.com/plus3/fruitris/sound"
	"github.com/plus3/fruitris/store"

	debugui_ebiten "github.com/plus3/fruitris/debugui/ebiten"
)

const (
	tick       = time.Second / 60
	volumeStep = 0.1
)

// Game implements ebiten.Game on top of the engine.
type Game struct {
	engine   *engine.Engine
	prefs    *store.Safe
	settings store.Settings
	player   *sound.Player
	hud      *hud.HUD
	controls *controls
	debug    *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	if g.debug != nil {
		g.debug.Update()
		if g.debug.Overlay.Input().WantCaptureKeyboard {
			g.engine.Update(tick)
			return nil
		}
	}

	if pressed(ebiten.KeyM) {
		g.player.ToggleMute()
		g.saveSettings()
	}
	if pressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract) {
		g.player.SetVolume(g.player.Volume() - volumeStep)
		g.saveSettings()
	}
	if pressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd) {
		g.player.SetVolume(g.player.Volume() + volumeStep)
		g.saveSettings()
	}

	switch g.engine.State() {
	case engine.Menu:
		g.updateMenu()
	case engine.Playing:
		if pressed(ebiten.KeyP, ebiten.KeyEscape) {
			g.engine.TogglePause()
			break
		}
		g.controls.play(g.engine, tick)
	case engine.Paused:
		if pressed(ebiten.KeyP, ebiten.KeyEscape) {
			g.engine.TogglePause()
		}
		if pressed(ebiten.KeyQ) {
			g.engine.Quit()
		}
	case engine.GameOver, engine.Completed:
		if pressed(ebiten.KeyR) {
			g.start(g.engine.Snapshot().Mode.ID)
		}
		if pressed(ebiten.KeyEnter, ebiten.KeyEscape) {
			g.engine.Reset()
		}
	}

	g.engine.Update(tick)
	return nil
}

func (g *Game) updateMenu() {
	if pressed(ebiten.KeyUp) {
		g.settings.StartingLevel = scoring.ClampStartLevel(g.settings.StartingLevel + 1)
		g.saveSettings()
	}
	if pressed(ebiten.KeyDown) {
		g.settings.StartingLevel = scoring.ClampStartLevel(g.settings.StartingLevel - 1)
		g.saveSettings()
	}
	for key, id := range map[ebiten.Key]mode.ID{
		ebiten.Key1: mode.TimeAttackID,
		ebiten.Key2: mode.EnduranceID,
		ebiten.Key3: mode.RelaxedID,
	} {
		if pressed(key) {
			g.start(id)
			return
		}
	}
}

func (g *Game) start(id mode.ID) {
	g.hud.Clear()
	g.controls = newControls()
	g.engine.Start(id, g.settings.StartingLevel)
}

func (g *Game) saveSettings() {
	g.player.Apply(&g.settings)
	store.SaveSettings(g.prefs, g.settings)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	snap := g.engine.Snapshot()
	drawBoard(screen, snap)
	drawPanel(screen, snap, g.hud.Active(), g.player.Muted(), g.player.Volume())

	switch snap.State {
	case engine.Menu:
		drawMenu(screen, g.settings.StartingLevel, snap.HighScore)
	case engine.Paused:
		drawCentered(screen, "PAUSED", "", "P resume", "Q quit to menu")
	case engine.GameOver:
		drawCentered(screen, "GAME OVER", "", "R retry", "ENTER menu")
	case engine.Completed:
		lines := []string{"COMPLETE!", ""}
		if snap.Mode.NewRecord {
			lines = append(lines, "NEW RECORD", "")
		}
		drawCentered(screen, append(lines, "R retry", "ENTER menu")...)
	}

	if g.debug != nil {
		g.debug.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return screenWidth, screenHeight
}
