package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/skirmish/ecs"
)

// SystemViewer lists registered systems with their required components and member
// counts. Clicking a row filters the entity browser to that system's members.
type SystemViewer struct {
	selected ecs.System
}

func NewSystemViewer() *SystemViewer {
	return &SystemViewer{}
}

// Render reports a selection change: the clicked system, or nil when the current
// selection was clicked again.
func (sv *SystemViewer) Render(r *ecs.Registry) (ecs.System, bool) {
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil, false
	}

	systems := r.Systems()
	maxMembers := 0
	for _, s := range systems {
		maxMembers = max(maxMembers, len(s.Entities()))
	}

	var changed bool
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Requires")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		for _, s := range systems {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selected == s
			if imgui.SelectableBoolV(systemLabel(s), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				if isSelected {
					sv.selected = nil
				} else {
					sv.selected = s
				}
				changed = true
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(requiredComponents(s), ", "))

			imgui.TableNextColumn()
			members := len(s.Entities())
			imgui.Text(fmt.Sprintf("%d", members))

			if maxMembers > 0 {
				barWidth := float32(members) / float32(maxMembers) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return sv.selected, changed
}

func systemLabel(s ecs.System) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", s), "*")
}

func requiredComponents(s ecs.System) []string {
	ids := s.Signature().IDs()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = componentName(id)
	}
	return names
}
