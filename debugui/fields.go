package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported struct field the inspector can show.
type FieldInfo struct {
	Name  string
	Index int
	Kind  reflect.Kind
}

// fieldCache memoizes the exported fields of component types.
type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func newFieldCache() *fieldCache {
	return &fieldCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// of returns the exported fields of t, or nil when t is not a struct.
func (c *fieldCache) of(t reflect.Type) []FieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{Name: f.Name, Index: i, Kind: f.Type.Kind()})
		}
	}

	c.mu.Lock()
	c.fields[t] = fields
	c.mu.Unlock()
	return fields
}
