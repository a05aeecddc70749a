package debugui

import (
	"fmt"
	"math"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/skirmish/ecs"
)

// ComponentInspector shows and edits the components of the selected entity. Edits
// write straight through the pointers the registry hands out.
type ComponentInspector struct {
	fields *fieldCache
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{fields: newFieldCache()}
}

func (ci *ComponentInspector) Render(r *ecs.Registry, e ecs.Entity, selected bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if !selected {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	if !r.IsAlive(e) {
		imgui.Text(fmt.Sprintf("%s is no longer alive", e))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", e.ID()))
	if tag, ok := r.EntityTag(e); ok {
		imgui.Text(fmt.Sprintf("Tag: %s", tag))
	}
	if group, ok := r.EntityGroup(e); ok {
		imgui.Text(fmt.Sprintf("Group: %s", group))
	}
	if r.IsPendingKill(e) {
		imgui.Text("Pending kill")
	}
	imgui.Separator()

	for _, cv := range r.ComponentValues(e) {
		if imgui.TreeNodeStr(cv.Type.Name()) {
			ci.renderStruct(cv.Type.Name(), reflect.ValueOf(cv.Value).Elem())
			imgui.TreePop()
		}
	}

	if imgui.Button("Kill") {
		r.KillEntity(e)
	}

	imgui.End()
}

func (ci *ComponentInspector) renderStruct(path string, val reflect.Value) {
	fields := ci.fields.of(val.Type())
	if len(fields) == 0 {
		imgui.Text("(no fields)")
		return
	}
	for _, f := range fields {
		ci.renderField(path+"."+f.Name, f.Name, val.Field(f.Index))
	}
}

// renderField draws an editor for one field. path keeps ImGui ids unique when two
// components share field names.
func (ci *ComponentInspector) renderField(path, name string, val reflect.Value) {
	id := "##" + path

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			setInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(min(val.Uint(), math.MaxInt32))
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			setUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			setFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + id) {
			ci.renderStruct(path, val)
			imgui.TreePop()
		}

	case reflect.Pointer, reflect.Func, reflect.Interface:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
		} else {
			imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setInt stores v into an int field, ignoring values the field cannot hold.
func setInt(field reflect.Value, v int64) bool {
	if !field.CanSet() || field.OverflowInt(v) {
		return false
	}
	field.SetInt(v)
	return true
}

func setUint(field reflect.Value, v uint64) bool {
	if !field.CanSet() || field.OverflowUint(v) {
		return false
	}
	field.SetUint(v)
	return true
}

func setFloat(field reflect.Value, v float64) bool {
	if !field.CanSet() || field.OverflowFloat(v) {
		return false
	}
	field.SetFloat(v)
	return true
}
