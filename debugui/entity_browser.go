package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/skirmish/ecs"
)

type EntityInfo struct {
	Entity     ecs.Entity
	Tag        string
	Group      string
	Components []string
	Active     bool
}

const (
	columnID = iota
	columnTag
	columnGroup
	columnComponents
)

// EntityBrowser lists live entities with their tag, group and components. The
// listing is rebuilt only when the registry version changes.
type EntityBrowser struct {
	entities      []EntityInfo
	version       uint64
	built         bool
	sortColumn    int
	sortAscending bool

	selected     ecs.Entity
	hasSelection bool
	filterText   string
	filterSystem ecs.System

	perPage     int
	currentPage int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	if perPage < 1 {
		perPage = 100
	}
	return &EntityBrowser{
		sortColumn:    columnID,
		sortAscending: true,
		perPage:       perPage,
	}
}

// Selected returns the entity picked in the table, if any.
func (eb *EntityBrowser) Selected() (ecs.Entity, bool) {
	return eb.selected, eb.hasSelection
}

// FilterBySystem restricts the listing to members of s; nil clears the filter.
func (eb *EntityBrowser) FilterBySystem(s ecs.System) {
	eb.filterSystem = s
	eb.currentPage = 0
}

func (eb *EntityBrowser) Render(r *ecs.Registry) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(r)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterSystem = nil
		eb.currentPage = 0
	}

	filtered := filterEntities(eb.entities, eb.filterText, eb.filterSystem)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Tag")
		imgui.TableSetupColumn("Group")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
			filtered = filterEntities(eb.entities, eb.filterText, eb.filterSystem)
			sortSpecs.SetSpecsDirty(false)
		}

		start, end := pageBounds(len(filtered), eb.currentPage, eb.perPage)
		for _, info := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selected == info.Entity
			label := fmt.Sprintf("%d", info.Entity.ID())
			if !info.Active {
				label += " (pending)"
			}
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = info.Entity
				eb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(info.Tag)
			imgui.TableNextColumn()
			imgui.Text(info.Group)
			imgui.TableNextColumn()
			imgui.Text(strings.Join(info.Components, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.perPage {
		totalPages := (len(filtered) + eb.perPage - 1) / eb.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

func (eb *EntityBrowser) refresh(r *ecs.Registry) {
	if eb.built && eb.version == r.Version() {
		return
	}
	eb.entities = collectEntities(r)
	sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
	eb.version = r.Version()
	eb.built = true

	if eb.hasSelection && !r.IsAlive(eb.selected) {
		eb.hasSelection = false
	}
}

func collectEntities(r *ecs.Registry) []EntityInfo {
	live := r.LiveEntities()
	out := make([]EntityInfo, 0, len(live))
	for _, e := range live {
		info := EntityInfo{Entity: e, Active: r.IsActive(e)}
		info.Tag, _ = r.EntityTag(e)
		info.Group, _ = r.EntityGroup(e)
		for _, id := range r.EntitySignature(e).IDs() {
			info.Components = append(info.Components, componentName(id))
		}
		out = append(out, info)
	}
	return out
}

func componentName(id ecs.ComponentID) string {
	if t := ecs.ComponentTypeOf(id); t != nil {
		return t.Name()
	}
	return fmt.Sprintf("component(%d)", id)
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		var less bool

		switch column {
		case columnTag:
			less = a.Tag < b.Tag
		case columnGroup:
			less = a.Group < b.Group
		case columnComponents:
			less = len(a.Components) < len(b.Components)
		default:
			less = a.Entity < b.Entity
		}

		if !ascending {
			return !less
		}
		return less
	})
}

// filterEntities keeps entities whose id, tag, group or component names contain
// text (case-insensitive) and, when system is set, that belong to it.
func filterEntities(entities []EntityInfo, text string, system ecs.System) []EntityInfo {
	if text == "" && system == nil {
		return entities
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(entities))
	for _, info := range entities {
		if system != nil && !system.HasEntity(info.Entity) {
			continue
		}
		if needle != "" {
			haystack := strings.ToLower(fmt.Sprintf("%d %s %s %s",
				info.Entity.ID(), info.Tag, info.Group, strings.Join(info.Components, " ")))
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		filtered = append(filtered, info)
	}
	return filtered
}

func pageBounds(total, page, perPage int) (start, end int) {
	start = page * perPage
	if start > total {
		start = total
	}
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end
}
