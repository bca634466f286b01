// Package record maps struct instances to ordered rows of cell values and
// back. It derives an ordered field list from a struct type via reflection
// and uses it as both the header row and the encode/decode order.
package record

import (
	"reflect"
	"sync"
	"time"
)

// Kind classifies how a field's value maps onto a cell.
type Kind int

const (
	// KindScalar values pass through as native cell values.
	KindScalar Kind = iota
	// KindCollection values are flattened to a single newline-joined cell.
	KindCollection
	// KindAny fields are interface-typed; the runtime value decides whether
	// the cell is scalar, flattened, or stringified.
	KindAny
	// KindOther values (structs, maps, pointers) are stringified with their
	// default fmt representation. They are never recursively flattened.
	KindOther
)

// Field describes one column of a record type.
type Field struct {
	Name  string // column header
	Index []int  // reflect field index, supports promoted fields
	Type  reflect.Type
	Kind  Kind
}

// Schema is the ordered field list for one record type. The order is the
// struct's declaration order and is stable for the lifetime of the process,
// so the header row and every encoded row always align.
type Schema struct {
	Type   reflect.Type
	Fields []Field
}

var schemaCache sync.Map // reflect.Type -> *Schema

// SchemaFor derives the schema for a record type. Results are cached, so
// reflection runs once per type rather than once per instance.
func SchemaFor(t reflect.Type) (*Schema, error) {
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*Schema), nil
	}
	s, err := deriveSchema(t)
	if err != nil {
		return nil, err
	}
	actual, _ := schemaCache.LoadOrStore(t, s)
	return actual.(*Schema), nil
}

func deriveSchema(t reflect.Type) (*Schema, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &SchemaError{Type: t, Reason: "record type must be a struct"}
	}

	var fields []Field
	for _, sf := range reflect.VisibleFields(t) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("ezexcel"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fields = append(fields, Field{
			Name:  name,
			Index: sf.Index,
			Type:  sf.Type,
			Kind:  classify(sf.Type),
		})
	}
	if len(fields) == 0 {
		return nil, &SchemaError{Type: t, Reason: "no introspectable fields"}
	}
	return &Schema{Type: t, Fields: fields}, nil
}

// Headers returns the column header row in field order.
func (s *Schema) Headers() []string {
	headers := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		headers[i] = f.Name
	}
	return headers
}

// CheckHeader verifies that a header row read from a file matches this
// schema's field names and order.
func (s *Schema) CheckHeader(header []string) error {
	if len(header) == 0 {
		return &SchemaError{Type: s.Type, Reason: "missing header row"}
	}
	if len(header) != len(s.Fields) {
		return &SchemaError{Type: s.Type, Reason: "header does not match record fields"}
	}
	for i, f := range s.Fields {
		if header[i] != f.Name {
			return &SchemaError{Type: s.Type, Reason: "header does not match record fields"}
		}
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

func classify(t reflect.Type) Kind {
	if t == timeType {
		return KindScalar
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return KindScalar
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			// []byte is a single text cell, not a flattened collection.
			return KindScalar
		}
		if isScalarElem(t.Elem()) {
			return KindCollection
		}
		return KindOther
	case reflect.Interface:
		return KindAny
	default:
		return KindOther
	}
}

func isScalarElem(t reflect.Type) bool {
	if t.Kind() == reflect.Interface {
		return true
	}
	return classify(t) == KindScalar && t.Kind() != reflect.Slice
}
