// Package ezexcel stores instances of plain Go structs as rows in a
// spreadsheet file (xlsx or CSV) and loads them back.
//
// A session is opened against one file and one record type. The type's
// exported fields, in declaration order, become the header row and the
// column order for every stored instance:
//
//	type Animal struct {
//		Name               string
//		ConservationStatus string
//	}
//
//	sheet, err := ezexcel.Open[Animal]("animals.xlsx")
//	if err != nil {
//		return err
//	}
//	defer sheet.Close()
//
//	err = sheet.Store(
//		Animal{"Leopard Gecko", "Least Concern"},
//		Animal{"Philippine Eagle", "Threatened"},
//	)
//
// Slices of scalars are flattened into a single cell with newline
// separators and reconstructed on load. Nested structs and maps are
// stringified, not flattened; they do not survive a round trip.
//
// Loading reverses the mapping:
//
//	sheet, err := ezexcel.Open[Animal]("animals.xlsx", ezexcel.WithReadOnly())
//	if err != nil {
//		return err
//	}
//	defer sheet.Close()
//
//	animals, err := sheet.LoadAll()
//
// The format is picked from the file extension; a path without one gets
// ".xlsx" appended. A session assumes exclusive single-writer access to
// its file and performs no locking.
package ezexcel

import (
	"errors"
	"path/filepath"
	"reflect"

	"github.com/Descent098/ezexcel/pkg/ezexcel/record"
	"github.com/Descent098/ezexcel/pkg/ezexcel/sheetio"
)

// ErrClosed indicates an operation on a session after Close.
var ErrClosed = errors.New("ezexcel: spreadsheet closed")

// Spreadsheet is an open session against a single spreadsheet file for a
// single record type T.
type Spreadsheet[T any] struct {
	path   string
	schema *record.Schema
	file   sheetio.File
	opts   options
	closed bool
}

// Open opens or creates the spreadsheet at path for record type T. The
// default mode truncates or creates the file for writing; see WithAppend
// and WithReadOnly. The schema for T is derived once and cached.
func Open[T any](path string, opts ...Option) (*Spreadsheet[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	recordType := reflect.TypeOf((*T)(nil)).Elem()
	if recordType.Kind() != reflect.Struct {
		return nil, &record.SchemaError{Type: recordType, Reason: "record type must be a struct"}
	}
	schema, err := record.SchemaFor(recordType)
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}
	file, err := sheetio.Open(path, o.mode, o.sheet)
	if err != nil {
		return nil, err
	}
	return &Spreadsheet[T]{path: path, schema: schema, file: file, opts: o}, nil
}

// Path returns the resolved file path for the session.
func (s *Spreadsheet[T]) Path() string {
	return s.path
}

// Headers returns the column header row for T, in field order. The order is
// stable across calls and sessions.
func (s *Spreadsheet[T]) Headers() []string {
	return s.schema.Headers()
}

// Store encodes the given instances and writes them as rows, in argument
// order. Every instance is encoded before anything is written, so an encode
// failure leaves the file without a partial batch. Store may be called
// repeatedly before Close; later calls append below earlier ones.
func (s *Spreadsheet[T]) Store(instances ...T) error {
	if s.closed {
		return ErrClosed
	}
	rows := make([][]any, 0, len(instances))
	for _, instance := range instances {
		row, err := s.schema.Encode(instance, s.opts.readable)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return s.file.WriteTable(s.schema.Headers(), rows)
}

// StoreSlice stores an ordered batch of instances.
func (s *Spreadsheet[T]) StoreSlice(instances []T) error {
	return s.Store(instances...)
}

// Load reads the file and returns a cursor over its decoded instances in
// file order. The file's header row must match T's schema.
func (s *Spreadsheet[T]) Load() (*Rows[T], error) {
	if s.closed {
		return nil, ErrClosed
	}
	header, cells, err := s.file.ReadTable()
	if err != nil {
		return nil, err
	}
	if err := s.schema.CheckHeader(header); err != nil {
		return nil, err
	}
	return &Rows[T]{schema: s.schema, rows: cells}, nil
}

// LoadAll drains a Load cursor into a slice.
func (s *Spreadsheet[T]) LoadAll() ([]T, error) {
	rows, err := s.Load()
	if err != nil {
		return nil, err
	}
	var out []T
	for rows.Next() {
		out = append(out, rows.Value())
	}
	return out, rows.Err()
}

// Close flushes and releases the underlying file. Close runs exactly once;
// further calls are no-ops returning nil.
func (s *Spreadsheet[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}
