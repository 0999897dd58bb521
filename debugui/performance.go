package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/thingbox/ecs"
)

// PerformancePanel shows a frame-time graph and per-phase scheduler stats.
type PerformancePanel struct {
	scheduler    *ecs.Scheduler
	count        func() int
	frameHistory []float32
	frameIndex   int
	recorded     int
}

// NewPerformancePanel keeps historyFrames frame times. count reports the
// live entity count.
func NewPerformancePanel(scheduler *ecs.Scheduler, count func() int, historyFrames int) *PerformancePanel {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return &PerformancePanel{
		scheduler:    scheduler,
		count:        count,
		frameHistory: make([]float32, historyFrames),
	}
}

// Record stores one frame time in seconds.
func (pp *PerformancePanel) Record(dt float32) {
	pp.frameHistory[pp.frameIndex] = dt * 1000
	pp.frameIndex = (pp.frameIndex + 1) % len(pp.frameHistory)
	if pp.recorded < len(pp.frameHistory) {
		pp.recorded++
	}
}

// AverageMillis is the mean of the recorded frame times.
func (pp *PerformancePanel) AverageMillis() float32 {
	if pp.recorded == 0 {
		return 0
	}
	var sum float32
	for _, ft := range pp.frameHistory {
		sum += ft
	}
	return sum / float32(pp.recorded)
}

func (pp *PerformancePanel) Render(dt float32) {
	pp.Record(dt)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := pp.scheduler.GetStats()
	avg := pp.AverageMillis()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}

	imgui.Text(fmt.Sprintf("Entities: %d", pp.count()))
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &pp.frameHistory[0], int32(len(pp.frameHistory)))

	if imgui.TreeNodeStr("Phases") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PhaseStats", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Phase")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
