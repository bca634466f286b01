package record

import (
	"fmt"
	"reflect"
)

// SchemaError indicates that a record type's field structure cannot be
// determined or satisfied.
type SchemaError struct {
	Type   reflect.Type
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("record schema: %s", e.Reason)
	}
	return fmt.Sprintf("record schema for %s: %s", e.Type, e.Reason)
}

// FieldAccessError indicates an instance is missing a field the schema
// declares.
type FieldAccessError struct {
	Field string
}

func (e *FieldAccessError) Error() string {
	return fmt.Sprintf("record field %q is not accessible on the instance", e.Field)
}

// RowShapeError indicates a row whose cell count does not match the
// schema's field count.
type RowShapeError struct {
	Got  int
	Want int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row has %d cells, schema has %d fields", e.Got, e.Want)
}

// CoercionError indicates a cell value that cannot be converted to the
// declared field type.
type CoercionError struct {
	Field string
	Value string
	Type  reflect.Type
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("field %q: cannot coerce %q to %s", e.Field, e.Value, e.Type)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}
