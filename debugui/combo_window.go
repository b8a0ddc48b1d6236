package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/fruitris/engine"
)

// ComboWindow lists the multiplier, the live notice and recent fruit
// combos.
type ComboWindow struct {
	engine *engine.Engine
}

func NewComboWindow(e *engine.Engine) *ComboWindow {
	return &ComboWindow{engine: e}
}

func (w *ComboWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(320, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 240), imgui.CondOnce)

	if !imgui.BeginV("Fruit Combos", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := w.engine.Snapshot()
	stats := snap.Combo

	imgui.Text(fmt.Sprintf("Multiplier: x%.2f", stats.Multiplier))
	imgui.Text(fmt.Sprintf("Total Combos: %d", stats.TotalCombos))
	imgui.Text(fmt.Sprintf("Last Size: %d", stats.LastSize))
	if n := snap.Notice; n != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.8, 0.2, 1), fmt.Sprintf("+%d (%d fruits, x%.2f)", n.Bonus, n.Size, n.Multiplier))
	}

	if imgui.TreeNodeStr("History") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ComboHistoryTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Fruit")
			imgui.TableSetupColumn("Size")
			imgui.TableSetupColumn("Pattern")
			imgui.TableSetupColumn("Level")
			imgui.TableSetupColumn("Bonus")
			imgui.TableHeadersRow()

			for i := len(stats.History) - 1; i >= 0; i-- {
				rec := stats.History[i]
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%s %s", rec.Fruit.Symbol(), rec.Fruit.Fruit()))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", rec.Size))
				imgui.TableNextColumn()
				imgui.Text(rec.Patterns.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", rec.Level))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", rec.Bonus))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
