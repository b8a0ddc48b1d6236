package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fruitris/engine"
	"github.com/plus3/fruitris/mode"
)

// EngineWindow shows the session state and offers pause and restart
// controls.
type EngineWindow struct {
	engine *engine.Engine
}

func NewEngineWindow(e *engine.Engine) *EngineWindow {
	return &EngineWindow{engine: e}
}

func (w *EngineWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 320), imgui.CondOnce)

	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := w.engine.Snapshot()

	imgui.Text(fmt.Sprintf("State: %s", snap.State))
	imgui.Text(fmt.Sprintf("Score: %d (best %d)", snap.Score, snap.HighScore))
	imgui.Text(fmt.Sprintf("Level: %d (start %d)", snap.Level, snap.StartLevel))
	imgui.Text(fmt.Sprintf("Lines: %d", snap.Lines))
	imgui.Text(fmt.Sprintf("Drop Interval: %s", snap.DropInterval))
	imgui.Text(fmt.Sprintf("Back-to-Back: %t", snap.BackToBack))
	imgui.Text(fmt.Sprintf("Soft Drop: %d", snap.SoftDrop))
	if len(snap.Clearing) > 0 {
		imgui.Text(fmt.Sprintf("Clearing rows %v (%.0f%%)", snap.Clearing, snap.ClearProgress*100))
	}

	if snap.Current != nil {
		imgui.Separator()
		c := snap.Current
		imgui.Text(fmt.Sprintf("Piece: %s %s rot %d at (%d, %d)", c.Kind, c.Kind.Symbol(), c.Rotation, c.X, c.Y))
		imgui.Text(fmt.Sprintf("Ghost: (%d, %d)", snap.Ghost.X, snap.Ghost.Y))
	}
	imgui.Text(fmt.Sprintf("Held: %s  Can hold: %t", snap.Held, snap.CanHold))
	imgui.Text(fmt.Sprintf("Next: %v", snap.Next))

	if snap.HasMode {
		imgui.Separator()
		for _, line := range ProgressLines(snap.Mode) {
			imgui.Text(line)
		}
	}

	imgui.Separator()
	label := "Pause"
	if snap.State == engine.Paused {
		label = "Resume"
	}
	if imgui.Button(label) {
		w.engine.TogglePause()
	}
	imgui.SameLine()
	if imgui.Button("Quit to Menu") {
		w.engine.Quit()
	}

	imgui.End()
}

// ProgressLines formats a mode's progress for display.
func ProgressLines(p mode.Progress) []string {
	lines := []string{fmt.Sprintf("Mode: %s", p.Name)}
	switch p.ID {
	case mode.TimeAttackID:
		lines = append(lines,
			fmt.Sprintf("Lines: %d / %d", p.Lines, p.TargetLines),
			fmt.Sprintf("Time: %s", p.Elapsed.Truncate(time.Millisecond)))
		if p.HasBestTime {
			lines = append(lines, fmt.Sprintf("Best: %s", p.BestTime.Truncate(time.Millisecond)))
		}
	case mode.EnduranceID:
		lines = append(lines, fmt.Sprintf("Target level: %d (best %d)", p.TargetLevel, p.BestLevel))
	case mode.RelaxedID:
		lines = append(lines, fmt.Sprintf("Recoveries: %d", p.Recoveries))
	}
	if p.Completed {
		lines = append(lines, "Completed")
	}
	if p.NewRecord {
		lines = append(lines, "New record!")
	}
	return lines
}
