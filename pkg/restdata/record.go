package restdata

import (
	"reflect"

	"github.com/iancoleman/strcase"
)

// Identifiable is implemented by record types that know their own
// identifier.
type Identifiable interface {
	RecordID() any
}

// RecordID reduces a bulk-operation element to its raw identifier. Records
// may implement Identifiable, carry an "id" key in a map, or expose an ID
// struct field; bare identifiers pass through unchanged.
func RecordID(v any) any {
	switch rec := v.(type) {
	case Identifiable:
		return rec.RecordID()
	case map[string]any:
		if id, ok := rec["id"]; ok {
			return id
		}
		return v
	}

	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() == reflect.Struct {
		if f := rv.FieldByName("ID"); f.IsValid() && f.CanInterface() {
			return f.Interface()
		}
	}
	return v
}

// ResourceName derives a default resource name from a record's type, e.g.
// BlogPost becomes "blog_post". Useful for callers that keep one Go struct
// per API resource.
func ResourceName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct || t.Name() == "" {
		return ""
	}
	return strcase.ToSnake(t.Name())
}
