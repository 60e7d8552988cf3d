// Package sheet reads and writes single-sheet .xlsx tables with excelize.
package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name used when none is configured.
const DefaultSheet = "Sheet1"

// ErrNoSheet indicates the requested sheet does not exist in the workbook.
var ErrNoSheet = errors.New("sheet: no such sheet")

// Kind classifies a cell's value for typed export.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
)

// Cell is one read cell: its raw text and how it should be typed.
type Cell struct {
	Text string
	Kind Kind
}

// Number parses a KindNumber cell.
func (c Cell) Number() (float64, bool) {
	if c.Kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(c.Text, 64)
	return f, err == nil
}

// Bool parses a KindBool cell. Excel stores booleans as "1"/"0".
func (c Cell) Bool() (bool, bool) {
	if c.Kind != KindBool {
		return false, false
	}
	switch strings.ToUpper(c.Text) {
	case "1", "TRUE":
		return true, true
	case "0", "FALSE":
		return false, true
	}
	return false, false
}

// Table is a header row plus data rows. Every row has len(Header) cells.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]Cell
}

// WriteTable writes header and rows to a new workbook at path, replacing any
// existing file.
func WriteTable(path, sheetName string, header []string, rows [][]any) error {
	if sheetName == "" {
		sheetName = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheetName != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheetName); err != nil {
			return fmt.Errorf("sheet: rename sheet: %w", err)
		}
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("sheet: open stream writer: %w", err)
	}
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := sw.SetRow("A1", headerCells); err != nil {
		return fmt.Errorf("sheet: write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("sheet: row %d: %w", i+1, err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("sheet: write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("sheet: flush: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("sheet: ensure output dir: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("sheet: save %s: %w", path, err)
	}
	return nil
}

// ReadTable reads sheetName, or the first sheet when sheetName is empty.
// The first row is the header; shorter rows are padded with empty cells.
func ReadTable(path, sheetName string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet: open %s: %w", path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w in %s", ErrNoSheet, path)
		}
		sheetName = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w %q in %s", ErrNoSheet, sheetName, path)
	}

	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet: read %s: %w", sheetName, err)
	}
	table := &Table{Sheet: sheetName}
	if len(raw) == 0 {
		return table, nil
	}
	table.Header = append([]string{}, raw[0]...)
	for r, values := range raw[1:] {
		row := make([]Cell, len(table.Header))
		for c := range row {
			if c >= len(values) || values[c] == "" {
				continue
			}
			kind, err := cellKind(f, sheetName, c+1, r+2)
			if err != nil {
				return nil, err
			}
			row[c] = Cell{Text: values[c], Kind: kind}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func cellKind(f *excelize.File, sheetName string, col, row int) (Kind, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return KindEmpty, fmt.Errorf("sheet: cell name: %w", err)
	}
	typ, err := f.GetCellType(sheetName, name)
	if err != nil {
		return KindEmpty, fmt.Errorf("sheet: cell type %s: %w", name, err)
	}
	switch typ {
	case excelize.CellTypeBool:
		return KindBool, nil
	case excelize.CellTypeNumber, excelize.CellTypeDate, excelize.CellTypeUnset:
		// Unset cells with a value are numbers: excelize omits t="n".
		return KindNumber, nil
	default:
		return KindString, nil
	}
}
