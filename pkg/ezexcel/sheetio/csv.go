package sheetio

import (
	"encoding/csv"
	"fmt"
	"os"
)

type csvFile struct {
	path        string
	mode        Mode
	f           *os.File
	w           *csv.Writer
	wroteHeader bool
	closed      bool
}

func openCSV(path string, mode Mode) (*csvFile, error) {
	switch mode {
	case Read:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return &csvFile{path: path, mode: mode, f: f}, nil
	case Append:
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return &csvFile{
			path:        path,
			mode:        mode,
			f:           f,
			w:           csv.NewWriter(f),
			wroteHeader: info.Size() > 0,
		}, nil
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", path, err)
		}
		return &csvFile{path: path, mode: mode, f: f, w: csv.NewWriter(f)}, nil
	}
}

func (c *csvFile) WriteTable(header []string, rows [][]any) error {
	if c.mode == Read {
		return ErrReadOnly
	}

	if !c.wroteHeader {
		if err := c.w.Write(header); err != nil {
			return fmt.Errorf("write %s: %w", c.path, err)
		}
		c.wroteHeader = true
	}
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, value := range row {
			rec[i] = cellString(value)
		}
		if err := c.w.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", c.path, err)
		}
	}
	return nil
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (c *csvFile) ReadTable() ([]string, [][]string, error) {
	if c.mode != Read {
		return nil, nil, ErrWriteOnly
	}
	records, err := csv.NewReader(c.f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

func (c *csvFile) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var flushErr error
	if c.w != nil {
		c.w.Flush()
		flushErr = c.w.Error()
	}
	closeErr := c.f.Close()
	if flushErr != nil {
		return fmt.Errorf("save %s: %w", c.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", c.path, closeErr)
	}
	return nil
}
