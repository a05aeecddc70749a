package level

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	lua "github.com/yuin/gopher-lua"
	"gopkg.in/yaml.v3"
)

var luaFunctionType = reflect.TypeFor[*lua.LFunction]()

// decodeYAML parses a YAML level document.
func decodeYAML(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, eris.Wrap(err, "parse yaml level")
	}
	return &def, nil
}

// decodeLua copies a Lua Level table into a Definition. Field names follow the
// yaml tags, or the lua tag where one is set. Lua arrays may start at 0 or 1.
func decodeLua(v lua.LValue) (*Definition, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, eris.Errorf("Level must be a table, got %s", v.Type())
	}
	var def Definition
	if err := decodeValue(tbl, reflect.ValueOf(&def).Elem(), "Level"); err != nil {
		return nil, err
	}
	return &def, nil
}

func fieldName(f reflect.StructField) string {
	if name := f.Tag.Get("lua"); name != "" {
		return name
	}
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}

func decodeValue(v lua.LValue, dst reflect.Value, path string) error {
	if v == lua.LNil {
		return nil
	}

	if dst.Type() == luaFunctionType {
		fn, ok := v.(*lua.LFunction)
		if !ok {
			if tbl, isTable := v.(*lua.LTable); isTable {
				fn, ok = firstElement(tbl).(*lua.LFunction)
			}
		}
		if !ok {
			return eris.Errorf("%s: expected function, got %s", path, v.Type())
		}
		dst.Set(reflect.ValueOf(fn))
		return nil
	}

	switch dst.Kind() {
	case reflect.Pointer:
		elem := reflect.New(dst.Type().Elem())
		if err := decodeValue(v, elem.Elem(), path); err != nil {
			return err
		}
		dst.Set(elem)
	case reflect.Struct:
		tbl, ok := v.(*lua.LTable)
		if !ok {
			return eris.Errorf("%s: expected table, got %s", path, v.Type())
		}
		t := dst.Type()
		for i := range t.NumField() {
			name := fieldName(t.Field(i))
			if name == "" {
				continue
			}
			if err := decodeValue(tbl.RawGetString(name), dst.Field(i), path+"."+name); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		tbl, ok := v.(*lua.LTable)
		if !ok {
			return eris.Errorf("%s: expected table, got %s", path, v.Type())
		}
		items := arrayItems(tbl)
		if dst.Kind() == reflect.Slice {
			dst.Set(reflect.MakeSlice(dst.Type(), len(items), len(items)))
		}
		for i, item := range items {
			if i >= dst.Len() {
				break
			}
			if err := decodeValue(item, dst.Index(i), path+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	case reflect.String:
		s, ok := v.(lua.LString)
		if !ok {
			return eris.Errorf("%s: expected string, got %s", path, v.Type())
		}
		dst.SetString(string(s))
	case reflect.Bool:
		dst.SetBool(lua.LVAsBool(v))
	case reflect.Int, reflect.Int64, reflect.Int32:
		n, ok := v.(lua.LNumber)
		if !ok {
			return eris.Errorf("%s: expected number, got %s", path, v.Type())
		}
		dst.SetInt(int64(n))
	case reflect.Float64:
		n, ok := v.(lua.LNumber)
		if !ok {
			return eris.Errorf("%s: expected number, got %s", path, v.Type())
		}
		dst.SetFloat(float64(n))
	default:
		return eris.Errorf("%s: unsupported field kind %s", path, dst.Kind())
	}
	return nil
}

// arrayItems returns the array part of tbl, including a value stored at index 0.
func arrayItems(tbl *lua.LTable) []lua.LValue {
	var items []lua.LValue
	if zero := tbl.RawGetInt(0); zero != lua.LNil {
		items = append(items, zero)
	}
	for i := 1; i <= tbl.Len(); i++ {
		items = append(items, tbl.RawGetInt(i))
	}
	return items
}

func firstElement(tbl *lua.LTable) lua.LValue {
	if items := arrayItems(tbl); len(items) > 0 {
		return items[0]
	}
	return lua.LNil
}
