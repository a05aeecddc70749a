// Package debugui draws Dear ImGui tooling windows over the running game: frame and
// step timings, an entity browser, a component inspector, a system viewer and a
// spawn window.
package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/skirmish/assets"
	"github.com/plus3/skirmish/game"
	"go.uber.org/zap"
)

// StatsSource reports scheduler step timings.
type StatsSource interface {
	GetStats() *game.SchedulerStats
}

// Overlay implements game.Overlay on top of the cimgui-go ebiten backend.
type Overlay struct {
	log     *zap.Logger
	backend *ebitenbackend.EbitenBackend
	stats   StatsSource

	perf      *PerformanceStats
	browser   *EntityBrowser
	inspector *ComponentInspector
	systems   *SystemViewer
	spawn     *SpawnWindow
}

// New creates the ImGui backend and its window, disables imgui.ini and prepares
// every tooling window. historyFrames sizes the frame time graph.
func New(title string, width, height, historyFrames int, store *assets.Store, log *zap.Logger) *Overlay {
	if log == nil {
		log = zap.NewNop()
	}
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		log:       log,
		backend:   backend,
		perf:      NewPerformanceStats(historyFrames),
		browser:   NewEntityBrowser(100),
		inspector: NewComponentInspector(),
		systems:   NewSystemViewer(),
		spawn:     NewSpawnWindow(store, log.Named("spawn")),
	}
}

// SetStatsSource attaches the scheduler whose step timings are shown. The game's
// scheduler only exists after game.New, which already needs the overlay.
func (o *Overlay) SetStatsSource(s StatsSource) {
	o.stats = s
}

// Update builds this frame's windows. The game has already run its systems, so the
// windows show the state the next Draw will render.
func (o *Overlay) Update(frame *game.UpdateFrame) error {
	if frame == nil {
		return nil
	}
	o.backend.BeginFrame()

	var stats *game.SchedulerStats
	if o.stats != nil {
		stats = o.stats.GetStats()
	}
	o.perf.Render(frame, stats)

	if system, ok := o.systems.Render(frame.Registry); ok {
		o.browser.FilterBySystem(system)
	}
	o.browser.Render(frame.Registry)
	selected, ok := o.browser.Selected()
	o.inspector.Render(frame.Registry, selected, ok)
	o.spawn.Render(frame.Registry, frame.Ticks)

	o.backend.EndFrame()
	return nil
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

// KeySource returns a game.KeySource that hides key presses while an ImGui widget
// has keyboard focus, so typing into a filter does not steer the player.
func (o *Overlay) KeySource() game.KeySource {
	return filteredKeys{}
}

type filteredKeys struct{}

func (filteredKeys) AppendJustPressed(keys []ebiten.Key) []ebiten.Key {
	if imgui.CurrentIO().WantCaptureKeyboard() {
		return keys
	}
	return inpututil.AppendJustPressedKeys(keys)
}
