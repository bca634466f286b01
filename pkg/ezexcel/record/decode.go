package record

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Decode converts one row of cell strings back into a new instance of the
// schema's record type. The row must have exactly one cell per field.
//
// Collection fields are reconstructed by splitting the cell on Delimiter
// and coercing each element to the slice's element type; an empty cell
// decodes to an empty collection, not a one-element one. Scalar fields are
// coerced from the cell's string form. Fields of composite kinds were
// stringified on encode and cannot be reconstructed; they are left at
// their zero value.
func (s *Schema) Decode(cells []string) (any, error) {
	if len(cells) != len(s.Fields) {
		return nil, &RowShapeError{Got: len(cells), Want: len(s.Fields)}
	}

	out := reflect.New(s.Type).Elem()
	for i, f := range s.Fields {
		fv := out.FieldByIndex(f.Index)
		if err := decodeCell(fv, f, cells[i]); err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}

func decodeCell(fv reflect.Value, f Field, cell string) error {
	switch f.Kind {
	case KindCollection:
		return decodeCollection(fv, f, cell)
	case KindScalar:
		return coerceScalar(fv, f.Name, cell)
	case KindAny:
		if cell == "" {
			return nil
		}
		fv.Set(reflect.ValueOf(parseCell(cell)))
		return nil
	default:
		return nil
	}
}

func decodeCollection(fv reflect.Value, f Field, cell string) error {
	if cell == "" {
		fv.Set(reflect.MakeSlice(f.Type, 0, 0))
		return nil
	}
	parts := strings.Split(cell, Delimiter)
	out := reflect.MakeSlice(f.Type, len(parts), len(parts))
	for i, part := range parts {
		if err := coerceScalar(out.Index(i), f.Name, part); err != nil {
			return err
		}
	}
	fv.Set(out)
	return nil
}

// coerceScalar assigns a cell's string form to a scalar destination,
// converting to the destination's type. Empty cells leave numeric, boolean
// and time destinations at their zero value, since both backends read
// missing cells back as empty strings.
func coerceScalar(fv reflect.Value, field, cell string) error {
	t := fv.Type()
	if t == timeType {
		if cell == "" {
			return nil
		}
		ts, err := time.Parse(time.RFC3339, cell)
		if err != nil {
			return &CoercionError{Field: field, Value: cell, Type: t, Err: err}
		}
		fv.Set(reflect.ValueOf(ts))
		return nil
	}

	switch t.Kind() {
	case reflect.String:
		fv.SetString(cell)
	case reflect.Bool:
		if cell == "" {
			return nil
		}
		b, err := strconv.ParseBool(cell)
		if err != nil {
			return &CoercionError{Field: field, Value: cell, Type: t, Err: err}
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if cell == "" {
			return nil
		}
		i, err := strconv.ParseInt(cell, 10, t.Bits())
		if err != nil {
			return &CoercionError{Field: field, Value: cell, Type: t, Err: err}
		}
		fv.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if cell == "" {
			return nil
		}
		u, err := strconv.ParseUint(cell, 10, t.Bits())
		if err != nil {
			return &CoercionError{Field: field, Value: cell, Type: t, Err: err}
		}
		fv.SetUint(u)
	case reflect.Float32, reflect.Float64:
		if cell == "" {
			return nil
		}
		fl, err := strconv.ParseFloat(cell, t.Bits())
		if err != nil {
			return &CoercionError{Field: field, Value: cell, Type: t, Err: err}
		}
		fv.SetFloat(fl)
	case reflect.Interface:
		if cell != "" {
			fv.Set(reflect.ValueOf(parseCell(cell)))
		}
	case reflect.Slice:
		// []byte scalar cell
		fv.SetBytes([]byte(cell))
	default:
		return &CoercionError{Field: field, Value: cell, Type: t}
	}
	return nil
}

// parseCell attempts to parse an untyped cell as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseCell(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
