package executor

import (
	"reflect"
	"strings"
)

// sourceFieldValue reads a field from the parent value for fields with no
// registered resolver. Maps are read by key; structs by json tag, falling
// back to a case-insensitive field-name match. Fields tagged `json:"-"`
// are invisible to the graph.
func sourceFieldValue(source any, field string) any {
	if source == nil {
		return nil
	}
	if m, ok := source.(map[string]any); ok {
		return m[field]
	}

	rv := reflect.ValueOf(source)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		if name == field || strings.EqualFold(sf.Name, field) {
			return rv.Field(i).Interface()
		}
	}
	return nil
}
