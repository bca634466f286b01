package sheetio

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

type xlsxFile struct {
	path    string
	sheet   string
	mode    Mode
	f       *excelize.File
	nextRow int // 1-based row the next write lands on; 0 until a header exists
	closed  bool
}

func openXLSX(path string, mode Mode, sheet string) (*xlsxFile, error) {
	if sheet == "" {
		sheet = defaultSheet
	}

	if mode == Create {
		f := excelize.NewFile()
		if sheet != defaultSheet {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("create %s: %w", path, err)
			}
		}
		return &xlsxFile{path: path, sheet: sheet, mode: mode, f: f}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	x := &xlsxFile{path: path, sheet: sheet, mode: mode, f: f}
	if mode == Append {
		rows, err := f.GetRows(sheet)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		x.nextRow = len(rows) + 1
	}
	return x, nil
}

func (x *xlsxFile) WriteTable(header []string, rows [][]any) error {
	if x.mode == Read {
		return ErrReadOnly
	}

	if x.nextRow <= 1 {
		if err := x.writeHeader(header); err != nil {
			return err
		}
	}

	firstDataRow := x.nextRow
	for _, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, x.nextRow)
			if err != nil {
				return fmt.Errorf("write %s: %w", x.path, err)
			}
			if err := x.f.SetCellValue(x.sheet, cell, value); err != nil {
				return fmt.Errorf("write %s: %w", x.path, err)
			}
		}
		x.nextRow++
	}

	if len(rows) > 0 {
		// Wrap text so flattened collection cells render one element per
		// line when the file is opened in a spreadsheet application.
		if err := x.styleRange(firstDataRow, x.nextRow-1, len(header), &excelize.Style{
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (x *xlsxFile) writeHeader(header []string) error {
	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("write %s: %w", x.path, err)
		}
		if err := x.f.SetCellValue(x.sheet, cell, name); err != nil {
			return fmt.Errorf("write %s: %w", x.path, err)
		}
	}
	if err := x.styleRange(1, 1, len(header), &excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return err
	}
	x.nextRow = 2
	return nil
}

func (x *xlsxFile) styleRange(fromRow, toRow, cols int, style *excelize.Style) error {
	styleID, err := x.f.NewStyle(style)
	if err != nil {
		return fmt.Errorf("write %s: %w", x.path, err)
	}
	first, err := excelize.CoordinatesToCellName(1, fromRow)
	if err != nil {
		return fmt.Errorf("write %s: %w", x.path, err)
	}
	last, err := excelize.CoordinatesToCellName(cols, toRow)
	if err != nil {
		return fmt.Errorf("write %s: %w", x.path, err)
	}
	if err := x.f.SetCellStyle(x.sheet, first, last, styleID); err != nil {
		return fmt.Errorf("write %s: %w", x.path, err)
	}
	return nil
}

func (x *xlsxFile) ReadTable() ([]string, [][]string, error) {
	if x.mode != Read {
		return nil, nil, ErrWriteOnly
	}
	rows, err := x.f.GetRows(x.sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", x.path, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// GetRows trims trailing empty cells, so pad each row back out to
		// the header's width.
		for len(row) < len(header) {
			row = append(row, "")
		}
		data = append(data, row)
	}
	return header, data, nil
}

func (x *xlsxFile) Close() error {
	if x.closed {
		return nil
	}
	x.closed = true

	if x.mode == Read {
		if err := x.f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", x.path, err)
		}
		return nil
	}
	saveErr := x.f.SaveAs(x.path)
	closeErr := x.f.Close()
	if saveErr != nil {
		return fmt.Errorf("save %s: %w", x.path, saveErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", x.path, closeErr)
	}
	return nil
}
