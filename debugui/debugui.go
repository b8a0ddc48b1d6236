// Package debugui provides Dear ImGui inspector windows for a running game
// engine. Windows are registered on an Overlay, which the front-end renders
// once per frame between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fruitris/engine"
)

// Item holds a Dear ImGui render function.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Game input should be ignored while it is.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay renders every registered item each frame.
type Overlay struct {
	items []Item
	input InputState
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

func (o *Overlay) Add(render func()) {
	o.items = append(o.items, Item{Render: render})
}

func (o *Overlay) Len() int {
	return len(o.items)
}

// Render updates the input state and draws all items.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range o.items {
		item.Render()
	}
}

// Input returns the capture state observed by the last Render.
func (o *Overlay) Input() InputState {
	return o.input
}

// Install registers the standard engine, stage timing and combo windows.
func Install(o *Overlay, e *engine.Engine) {
	engineWindow := NewEngineWindow(e)
	timings := NewStageTimingsWindow(e, 120)
	combos := NewComboWindow(e)

	o.Add(engineWindow.Render)
	o.Add(timings.Render)
	o.Add(combos.Render)
}
