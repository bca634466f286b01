// Package sheetio persists header-and-row tables to spreadsheet files and
// enumerates them back. The backend is chosen from the file extension at
// open time; callers stay format-agnostic past that point.
package sheetio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Mode selects how a spreadsheet file is opened.
type Mode int

const (
	// Create truncates or creates the file for writing.
	Create Mode = iota
	// Append keeps existing rows and writes new ones after them.
	Append
	// Read opens the file for reading only.
	Read
)

// ErrUnknownFormat indicates a file extension no backend handles.
var ErrUnknownFormat = errors.New("unsupported spreadsheet format")

// ErrReadOnly indicates a write against a file opened with Read.
var ErrReadOnly = errors.New("spreadsheet opened read-only")

// ErrWriteOnly indicates a read against a file opened for writing.
var ErrWriteOnly = errors.New("spreadsheet opened for writing")

// File is the capability the codec layer depends on.
//
// WriteTable writes the header row once per file, then the given rows in
// order; repeated calls append further rows. ReadTable returns the header
// row and every data row, each padded to the header's width. Close is
// idempotent and flushes buffered writes on every path.
type File interface {
	WriteTable(header []string, rows [][]any) error
	ReadTable() (header []string, rows [][]string, err error)
	Close() error
}

// Open opens path in the given mode, dispatching on the file extension.
// The sheet name applies to xlsx files only; empty means "Sheet1".
func Open(path string, mode Mode, sheet string) (File, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return openXLSX(path, mode, sheet)
	case ".csv":
		return openCSV(path, mode)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}
