package record

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Delimiter joins the elements of a collection field within a single cell.
const Delimiter = "\n"

// Encode converts one instance into an ordered row of cell values, one per
// schema field. Scalar fields pass through as native cell values, collection
// fields are flattened into a single Delimiter-joined string cell, and
// anything else is stringified with its default fmt representation.
//
// When readable is true, collection elements are written as "- element"
// bullet lines instead. Readable output is for humans and does not decode
// back to the original collection.
func (s *Schema) Encode(instance any, readable bool) ([]any, error) {
	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, &SchemaError{Type: s.Type, Reason: "nil instance"}
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, &SchemaError{Type: s.Type, Reason: "nil instance"}
	}
	if v.Type() != s.Type {
		return nil, &SchemaError{Type: s.Type, Reason: fmt.Sprintf("instance has type %s", v.Type())}
	}

	row := make([]any, len(s.Fields))
	for i, f := range s.Fields {
		fv := v.FieldByIndex(f.Index)
		if !fv.IsValid() {
			return nil, &FieldAccessError{Field: f.Name}
		}
		row[i] = encodeCell(fv, f.Kind, readable)
	}
	return row, nil
}

func encodeCell(v reflect.Value, kind Kind, readable bool) any {
	switch kind {
	case KindScalar:
		return scalarCell(v)
	case KindCollection:
		return flatten(v, readable)
	case KindAny:
		if v.IsNil() {
			return ""
		}
		rv := v.Elem()
		return encodeCell(rv, classify(rv.Type()), readable)
	default:
		return fmt.Sprint(v.Interface())
	}
}

func scalarCell(v reflect.Value) any {
	if v.Type() == timeType {
		// Render times ourselves so the value reads back identically from
		// both xlsx and CSV.
		return v.Interface().(time.Time).Format(time.RFC3339)
	}
	if v.Kind() == reflect.Slice {
		return string(v.Bytes())
	}
	return v.Interface()
}

func flatten(v reflect.Value, readable bool) string {
	n := v.Len()
	if n == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		text := elementText(v.Index(i))
		if readable {
			b.WriteString("- ")
			b.WriteString(text)
			b.WriteString(Delimiter)
			continue
		}
		if i > 0 {
			b.WriteString(Delimiter)
		}
		b.WriteString(text)
	}
	return b.String()
}

func elementText(v reflect.Value) string {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}
	if v.Type() == timeType {
		return v.Interface().(time.Time).Format(time.RFC3339)
	}
	return fmt.Sprint(v.Interface())
}
