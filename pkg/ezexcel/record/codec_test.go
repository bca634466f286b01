package record

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

// rowStrings renders an encoded row the way a backend reads it back.
func rowStrings(t *testing.T, row []any) []string {
	t.Helper()
	cells := make([]string, len(row))
	for i, v := range row {
		if v == nil {
			continue
		}
		cells[i] = fmt.Sprint(v)
	}
	return cells
}

func TestEncode_ScalarsPassThrough(t *testing.T) {
	type animal struct {
		Name               string
		ConservationStatus string
	}

	s, err := SchemaFor(reflect.TypeOf(animal{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	row, err := s.Encode(animal{"Leopard Gecko", "Least Concern"}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if row[0] != "Leopard Gecko" || row[1] != "Least Concern" {
		t.Errorf("Unexpected row %v", row)
	}
}

func TestEncode_FlattensCollections(t *testing.T) {
	s, err := SchemaFor(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	row, err := s.Encode(user{"John Doe", 20, 75, []string{"Abby", "Mike", "Janice"}}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if row[3] != "Abby\nMike\nJanice" {
		t.Errorf("Expected flattened cell, got %q", row[3])
	}
}

func TestEncode_Readable(t *testing.T) {
	s, err := SchemaFor(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	row, err := s.Encode(user{"John Doe", 20, 75, []string{"Abby", "Mike", "Janice"}}, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if row[3] != "- Abby\n- Mike\n- Janice\n" {
		t.Errorf("Expected bulleted cell, got %q", row[3])
	}
}

func TestEncode_NestedStructStringified(t *testing.T) {
	type owner struct {
		First string
		Last  string
	}
	type pet struct {
		Name  string
		Owner owner
	}

	s, err := SchemaFor(reflect.TypeOf(pet{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	row, err := s.Encode(pet{"Rex", owner{"Jan", "Doe"}}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if row[1] != "{Jan Doe}" {
		t.Errorf("Expected default stringification, got %q", row[1])
	}
}

func TestEncode_TypeMismatch(t *testing.T) {
	s, err := SchemaFor(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	type stranger struct{ Name string }
	_, err = s.Encode(stranger{"?"}, false)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected SchemaError, got %v", err)
	}
}

func TestRoundTrip_Scalars(t *testing.T) {
	type measurement struct {
		Label   string
		Count   int
		Ratio   float64
		Enabled bool
		Taken   time.Time
	}

	s, err := SchemaFor(reflect.TypeOf(measurement{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	in := measurement{"sample", 42, 0.5, true, time.Date(2021, 3, 14, 9, 26, 53, 0, time.UTC)}
	row, err := s.Encode(in, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := s.Decode(rowStrings(t, row))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	out := decoded.(measurement)
	if out != in {
		t.Errorf("Round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestRoundTrip_StringCollection(t *testing.T) {
	s, err := SchemaFor(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	in := user{"Rex", 5, 30, []string{"A", "B", "C"}}
	row, err := s.Encode(in, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := s.Decode(rowStrings(t, row))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	out := decoded.(user)
	if !reflect.DeepEqual(out.Family, []string{"A", "B", "C"}) {
		t.Errorf("Expected order and count preserved, got %v", out.Family)
	}
}

func TestRoundTrip_IntCollection(t *testing.T) {
	type scores struct {
		Name   string
		Points []int
	}

	s, err := SchemaFor(reflect.TypeOf(scores{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	row, err := s.Encode(scores{"game", []int{1, 2, 3}}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if row[1] != "1\n2\n3" {
		t.Errorf("Expected flattened numbers, got %q", row[1])
	}

	decoded, err := s.Decode(rowStrings(t, row))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out := decoded.(scores)
	if !reflect.DeepEqual(out.Points, []int{1, 2, 3}) {
		t.Errorf("Expected coerced elements, got %v", out.Points)
	}
}

func TestRoundTrip_EmptyCollection(t *testing.T) {
	s, err := SchemaFor(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	row, err := s.Encode(user{"Solo", 1, 1, []string{}}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if row[3] != "" {
		t.Errorf("Expected empty cell for empty collection, got %q", row[3])
	}

	decoded, err := s.Decode(rowStrings(t, row))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out := decoded.(user)
	if out.Family == nil {
		t.Error("Expected an empty collection, got nil")
	}
	if len(out.Family) != 0 {
		t.Errorf("Expected an empty collection, not %v", out.Family)
	}
}

func TestDecode_RowShape(t *testing.T) {
	s, err := SchemaFor(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	_, err = s.Decode([]string{"only", "three", "cells"})
	var shapeErr *RowShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Expected RowShapeError, got %v", err)
	}
	if shapeErr.Got != 3 || shapeErr.Want != 4 {
		t.Errorf("Expected got=3 want=4, got %+v", shapeErr)
	}
}

func TestDecode_CoercionFailure(t *testing.T) {
	s, err := SchemaFor(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	_, err = s.Decode([]string{"Rex", "not a number", "30", ""})
	var coerceErr *CoercionError
	if !errors.As(err, &coerceErr) {
		t.Fatalf("Expected CoercionError, got %v", err)
	}
	if coerceErr.Field != "Age" {
		t.Errorf("Expected failure on Age, got %q", coerceErr.Field)
	}
}

func TestDecode_EmptyScalarCells(t *testing.T) {
	s, err := SchemaFor(reflect.TypeOf(user{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	decoded, err := s.Decode([]string{"", "", "", ""})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out := decoded.(user)
	if out.Name != "" || out.Age != 0 || len(out.Family) != 0 {
		t.Errorf("Expected zero values, got %+v", out)
	}
}

func TestAnyField_DynamicEncodeAndParse(t *testing.T) {
	type note struct {
		Label string
		Value any
	}

	s, err := SchemaFor(reflect.TypeOf(note{}))
	if err != nil {
		t.Fatalf("SchemaFor failed: %v", err)
	}

	row, err := s.Encode(note{"names", []any{"Ann", "Bo"}}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if row[1] != "Ann\nBo" {
		t.Errorf("Expected dynamic collection flattened, got %q", row[1])
	}

	decoded, err := s.Decode([]string{"count", "12"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	out := decoded.(note)
	if out.Value != int64(12) {
		t.Errorf("Expected numeric cell parsed to int64, got %T %v", out.Value, out.Value)
	}
}
