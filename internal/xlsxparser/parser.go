// =============================================================================
// Catalog Converter - XLSX Reader
// =============================================================================
//
// This module reads the three kinds of workbook the converter consumes:
//   - the catalog export (one product per row, headers on a known row)
//   - the price/stock reference (same shape, different layout)
//   - the upload template (only its label row is read here)
//
// LAYOUT:
//   Every read is driven by a config.SheetLayout:
//
//     | Row 1  | SKU      | Product Name (English) | ...   <- HeaderRow = 1
//     | Row 2  | (help text rows skipped)                  |
//     | Row 5  | HBG100PN | Leather Tote           | ...   <- DataStartRow = 5
//
//   An empty sheet name selects the first sheet.
//
// Cell values are read as stored, ignoring number formats, so a price of
// 19.99 in a cell formatted "0" still reads as "19.99". Blank rows are skipped; blank
// header cells drop their column.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/internal/types"
)

var (
	// ErrSheetNotFound is returned when the configured sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrUnsupportedFormat is returned for workbook formats excelize cannot
	// open, such as legacy binary .xls files.
	ErrUnsupportedFormat = errors.New("unsupported workbook format")
)

// =============================================================================
// TABLE READING
// =============================================================================

// ReadTable reads a header row and the data rows below it.
//
// PARAMETERS:
//   - path: The .xlsx/.xlsm file.
//   - layout: Sheet name and row positions.
//
// RETURNS:
//   - The table, rows in sheet order.
//   - An error if the file or sheet cannot be read, or the header row is
//     beyond the end of the sheet.
func ReadTable(path string, layout config.SheetLayout) (*types.Table, error) {
	rows, err := readRows(path, layout.Sheet)
	if err != nil {
		return nil, err
	}
	return buildTable(rows, layout)
}

// ReadLabels returns the label row of a sheet, one entry per column starting
// at column A. Blank labels are kept as "" so positions match columns.
func ReadLabels(path string, layout config.SheetLayout) ([]string, error) {
	rows, err := readRows(path, layout.Sheet)
	if err != nil {
		return nil, err
	}
	if layout.HeaderRow < 1 || layout.HeaderRow > len(rows) {
		return nil, fmt.Errorf("label row %d is beyond the last row (%d)", layout.HeaderRow, len(rows))
	}

	labels := make([]string, len(rows[layout.HeaderRow-1]))
	for i, cell := range rows[layout.HeaderRow-1] {
		labels[i] = strings.TrimSpace(cell)
	}
	return labels, nil
}

// SheetNames lists the worksheets of a workbook.
func SheetNames(path string) ([]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func open(path string) (*excelize.File, error) {
	if strings.EqualFold(filepath.Ext(path), ".xls") {
		return nil, fmt.Errorf("%w: %s (save it as .xlsx or .csv)", ErrUnsupportedFormat, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return f, nil
}

func readRows(path, sheet string) ([][]string, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q in %s (available: %s)",
			ErrSheetNotFound, sheet, path, strings.Join(f.GetSheetList(), ", "))
	}

	// Number formats would round prices and quantities; read what is stored.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %q: %w", sheet, err)
	}
	return rows, nil
}

// buildTable turns raw rows into a Table. Row numbers are 1-indexed.
func buildTable(rows [][]string, layout config.SheetLayout) (*types.Table, error) {
	if layout.HeaderRow < 1 || layout.HeaderRow > len(rows) {
		return nil, fmt.Errorf("header row %d is beyond the last row (%d)", layout.HeaderRow, len(rows))
	}

	headerRow := rows[layout.HeaderRow-1]
	table := &types.Table{}
	columns := make([]int, 0, len(headerRow))
	for i, h := range headerRow {
		h = strings.TrimSpace(h)
		if h == "" || table.HasColumn(h) {
			continue
		}
		table.Headers = append(table.Headers, h)
		columns = append(columns, i)
	}

	start := layout.DataStartRow
	if start <= layout.HeaderRow {
		start = layout.HeaderRow + 1
	}

	for i := start - 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}
		rec := types.SourceRecord{Row: i + 1, Fields: make(map[string]string, len(columns))}
		for j, col := range columns {
			if col < len(row) {
				rec.Fields[table.Headers[j]] = row[col]
			}
		}
		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
