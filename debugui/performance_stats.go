package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/skirmish/ecs"
	"github.com/plus3/skirmish/game"
)

// PerformanceStats shows frame times, registry bookkeeping and per-step timings.
type PerformanceStats struct {
	history *frameHistory
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	return &PerformanceStats{history: newFrameHistory(historyFrames)}
}

func (ps *PerformanceStats) Render(frame *game.UpdateFrame, steps *game.SchedulerStats) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.history.push(float32(frame.DeltaTime * 1000))
	stats := frame.Registry.CollectStats()

	imgui.Text(fmt.Sprintf("Live Entities: %d (%d active)", stats.LiveEntities, stats.ActiveEntities))
	imgui.Text(fmt.Sprintf("Pending: %d add, %d kill", stats.PendingAdd, stats.PendingKill))
	imgui.Text(fmt.Sprintf("Free Ids: %d", stats.FreeIDs))
	imgui.Text(fmt.Sprintf("Tags: %d  Groups: %d", stats.Tags, stats.Groups))

	avg := ps.history.average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	if steps != nil && imgui.TreeNodeStr("Steps") {
		renderStepTable(steps)
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Component Pools") {
		renderPoolTable(stats.Pools)
		imgui.TreePop()
	}

	imgui.End()
}

func renderStepTable(stats *game.SchedulerStats) {
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("StepStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Step")
	imgui.TableSetupColumn("Last")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	rows := append([]game.StepStats{stats.Reconcile}, stats.Steps...)
	for _, step := range rows {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(step.Name)
		imgui.TableNextColumn()
		imgui.Text(formatDuration(step.LastDuration))
		imgui.TableNextColumn()
		imgui.Text(formatDuration(step.AvgDuration))
		imgui.TableNextColumn()
		imgui.Text(formatDuration(step.MaxDuration))
	}
	imgui.EndTable()
}

func renderPoolTable(pools []ecs.PoolStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("PoolStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Component")
	imgui.TableSetupColumn("Slots")
	imgui.TableSetupColumn("Carriers")
	imgui.TableHeadersRow()

	for _, p := range pools {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(p.Type)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", p.Slots))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", p.Carriers))
	}
	imgui.EndTable()
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d.Microseconds())/1000)
}

// frameHistory is a ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	next    int
	filled  int
}

func newFrameHistory(n int) *frameHistory {
	if n < 1 {
		n = 1
	}
	return &frameHistory{samples: make([]float32, n)}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.next] = ms
	h.next = (h.next + 1) % len(h.samples)
	if h.filled < len(h.samples) {
		h.filled++
	}
}

// average ignores slots that have not been written yet.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, v := range h.samples {
		sum += v
	}
	return sum / float32(h.filled)
}
