package main

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/fruitris/board"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/hud"
	"github.com/plus3/fruitris/piece"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	cellSize     = 30
	offsetX      = 50
	offsetY      = 50
	previewScale = 0.6

	screenWidth  = offsetX + board.Width*cellSize + 220
	screenHeight = offsetY*2 + board.Height*cellSize
)

var (
	background  = color.RGBA{0x10, 0x10, 0x18, 0xff}
	frameColor  = colornames.Gray
	ghostColor  = color.RGBA{0xff, 0xff, 0xff, 0x50}
	outline     = colornames.Black
	flashColor  = colornames.White
	textColor   = colornames.Whitesmoke
	bannerColor = colornames.Gold
	dimColor    = color.RGBA{0, 0, 0, 0xb0}
	fruitColors = map[piece.Kind]color.RGBA{
		piece.I: {0xf5, 0xd7, 0x3b, 0xff}, // banana
		piece.O: {0xff, 0x98, 0x1f, 0xff}, // orange
		piece.T: {0xe0, 0x32, 0x32, 0xff}, // apple
		piece.S: {0xf0, 0x4a, 0x6e, 0xff}, // strawberry
		piece.Z: {0x7c, 0xc0, 0x3c, 0xff}, // kiwi
		piece.J: {0x8e, 0x4c, 0xc8, 0xff}, // grapes
		piece.L: {0xd8, 0xb0, 0x3c, 0xff}, // pineapple
	}
)

// label draws s with its top-left corner at (x, y).
func label(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	face := basicfont.Face7x13
	text.Draw(dst, s, face, x, y+face.Ascent, clr)
}

func drawCell(dst *ebiten.Image, x, y, size float32, clr color.Color) {
	vector.DrawFilledRect(dst, x, y, size, size, clr, false)
	vector.StrokeRect(dst, x, y, size, size, 1, outline, false)
}

func boardCell(dst *ebiten.Image, x, y int, clr color.Color) {
	drawCell(dst, float32(offsetX+x*cellSize), float32(offsetY+y*cellSize), cellSize, clr)
}

func drawShape(dst *ebiten.Image, k piece.Kind, x, y float32, size float32) {
	for _, c := range piece.ShapeOf(k, 0).Cells() {
		drawCell(dst, x+float32(c.X)*size, y+float32(c.Y)*size, size, fruitColors[k])
	}
}

func drawBoard(dst *ebiten.Image, s engine.Snapshot) {
	vector.StrokeRect(dst, offsetX-2, offsetY-2, board.Width*cellSize+4, board.Height*cellSize+4, 2, frameColor, false)

	for y := range board.Height {
		clearing := slices.Contains(s.Clearing, y)
		for x := range board.Width {
			cell := s.Grid[y][x]
			if cell.Empty() {
				continue
			}
			clr := color.Color(fruitColors[cell.Fruit])
			// Clearing rows blink until they are removed.
			if clearing && int(s.ClearProgress*8)%2 == 0 {
				clr = flashColor
			}
			boardCell(dst, x, y, clr)
		}
	}

	if s.Current == nil {
		return
	}
	ghost := *s.Current
	ghost.X, ghost.Y = s.Ghost.X, s.Ghost.Y
	for _, c := range ghost.Cells() {
		if c.Y >= 0 {
			boardCell(dst, c.X, c.Y, ghostColor)
		}
	}
	for _, c := range s.Current.Cells() {
		if c.Y >= 0 {
			boardCell(dst, c.X, c.Y, fruitColors[s.Current.Kind])
		}
	}
}

func drawPanel(dst *ebiten.Image, s engine.Snapshot, banners []string, muted bool, volume float64) {
	x := offsetX + board.Width*cellSize + 20
	y := offsetY
	line := func(format string, args ...any) {
		label(dst, fmt.Sprintf(format, args...), x, y, textColor)
		y += 16
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
	y += 8

	if s.HasMode {
		for _, l := range hud.ModeLines(s.Mode) {
			line("%s", l)
		}
		y += 8
	}

	line("NEXT")
	size := float32(cellSize * previewScale)
	for _, k := range s.Next {
		drawShape(dst, k, float32(x), float32(y), size)
		y += int(size * 3)
	}
	y += 8

	line("HOLD")
	if s.Held != piece.None {
		drawShape(dst, s.Held, float32(x), float32(y), size)
	}
	y += int(size*3) + 8

	for _, b := range banners {
		label(dst, b, x, y, bannerColor)
		y += 16
	}

	sound := fmt.Sprintf("VOL %d%%", int(volume*100+0.5))
	if muted {
		sound = "MUTED"
	}
	ebitenutil.DebugPrintAt(dst, sound, x, screenHeight-offsetY)
}

func drawCentered(dst *ebiten.Image, lines ...string) {
	vector.DrawFilledRect(dst, offsetX, offsetY, board.Width*cellSize, board.Height*cellSize, dimColor, false)
	y := offsetY + board.Height*cellSize/2 - len(lines)*8
	for _, l := range lines {
		x := offsetX + board.Width*cellSize/2 - len(l)*7/2
		label(dst, l, x, y, textColor)
		y += 16
	}
}

func drawMenu(dst *ebiten.Image, startLevel int, highScore int) {
	drawCentered(dst,
		"FRUITRIS",
		"",
		"1  SPRINT    40 lines",
		"2  MARATHON  reach level 15",
		"3  ZEN       no game over",
		"",
		fmt.Sprintf("UP/DOWN  start level %d", startLevel),
		"M mute   -/+ volume",
		"",
		fmt.Sprintf("HIGH SCORE %d", highScore),
	)
}
