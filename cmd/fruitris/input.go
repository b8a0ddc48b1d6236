package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/fruitris/engine"
)

const (
	repeatDelay = 200 * time.Millisecond
	repeatRate  = 50 * time.Millisecond
	softDropGap = 50 * time.Millisecond
)

// repeater turns a held key into an initial press plus auto-repeat.
type repeater struct {
	delay, rate time.Duration
	held        time.Duration
}

// Step reports how many times the action fires this frame.
func (r *repeater) Step(justPressed, down bool, dt time.Duration) int {
	switch {
	case justPressed:
		r.held = 0
		return 1
	case !down:
		r.held = 0
		return 0
	}
	r.held += dt
	fires := 0
	for r.held > r.delay {
		r.held -= r.rate
		fires++
	}
	return fires
}

type controls struct {
	left  repeater
	right repeater
	down  repeater
}

func newControls() *controls {
	return &controls{
		left:  repeater{delay: repeatDelay, rate: repeatRate},
		right: repeater{delay: repeatDelay, rate: repeatRate},
		down:  repeater{delay: 0, rate: softDropGap},
	}
}

func pressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func held(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

// play applies the in-game keys to the engine.
func (c *controls) play(e *engine.Engine, dt time.Duration) {
	for range c.left.Step(pressed(ebiten.KeyLeft), held(ebiten.KeyLeft), dt) {
		e.MovePiece(-1, 0)
	}
	for range c.right.Step(pressed(ebiten.KeyRight), held(ebiten.KeyRight), dt) {
		e.MovePiece(1, 0)
	}
	for range c.down.Step(pressed(ebiten.KeyDown), held(ebiten.KeyDown), dt) {
		e.SoftDrop()
	}

	if pressed(ebiten.KeyUp, ebiten.KeyX) {
		e.RotatePiece(true)
	}
	if pressed(ebiten.KeyZ) {
		e.RotatePiece(false)
	}
	if pressed(ebiten.KeySpace) {
		e.HardDrop()
	}
	if pressed(ebiten.KeyC, ebiten.KeyShiftLeft, ebiten.KeyShiftRight) {
		e.HoldPiece()
	}
}
