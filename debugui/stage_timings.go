package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fruitris/engine"
)

// FrameHistory is a fixed ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

func (h *FrameHistory) Push(d time.Duration) {
	h.samples[h.index] = float32(d.Seconds() * 1000)
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded samples, in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples {
		sum += s
	}
	return sum / float32(h.filled)
}

// StageTimingsWindow plots frame time and tabulates per-stage timing of the
// engine's update pipeline.
type StageTimingsWindow struct {
	engine  *engine.Engine
	history *FrameHistory
	timer   *FrameTimer
}

func NewStageTimingsWindow(e *engine.Engine, historyFrames int) *StageTimingsWindow {
	return &StageTimingsWindow{
		engine:  e,
		history: NewFrameHistory(historyFrames),
		timer:   NewFrameTimer(),
	}
}

func (w *StageTimingsWindow) Render() {
	w.history.Push(w.timer.Delta())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 300), imgui.CondOnce)

	if !imgui.BeginV("Stage Timings", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := w.history.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &w.history.samples[0], int32(len(w.history.samples)))

	stats := w.engine.Stats()
	imgui.Text(fmt.Sprintf("Updates: %d across %d stages", stats.TotalExecutions, stats.StageCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("StageStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Stage")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableSetupColumn("Last")
		imgui.TableHeadersRow()

		for _, s := range stats.Stages {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.LastDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

// Delta returns the time since the previous call.
func (ft *FrameTimer) Delta() time.Duration {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime)
	ft.lastFrameTime = now
	return delta
}
