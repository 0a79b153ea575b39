// =============================================================================
// Catalog Converter - CSV Reader
// =============================================================================
//
// This module reads catalog exports and price references saved as CSV. It
// produces the same types.Table the XLSX reader does, so the rest of the
// pipeline does not care which format the operator exported.
//
// FEATURES:
//   - Configurable delimiter (comma, tab, pipe, semicolon)
//   - Header row and data start row from config.SheetLayout
//   - UTF-8 byte order mark stripped from the first header
//   - Ragged rows tolerated (missing trailing cells read as blank)
//
// Row numbers count CSV records, not physical lines, so a quoted field that
// spans lines still counts as one row.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/internal/types"
)

const bom = "\uFEFF"

// ReadTable reads a CSV file into a Table.
//
// PARAMETERS:
//   - filePath: The CSV file.
//   - layout: Header and data start rows. The sheet name is ignored.
//   - delimiter: The field separator; "" means comma.
//
// RETURNS:
//   - The table, rows in file order.
//   - An error if the file cannot be read or is shorter than the header row.
func ReadTable(filePath string, layout config.SheetLayout, delimiter string) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file, layout, delimiter)
}

// Read is ReadTable over an io.Reader.
func Read(r io.Reader, layout config.SheetLayout, delimiter string) (*types.Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	configureReader(reader, delimiter)

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if layout.HeaderRow < 1 || layout.HeaderRow > len(allRows) {
		return nil, fmt.Errorf("header row %d is beyond the last row (%d)", layout.HeaderRow, len(allRows))
	}

	table := &types.Table{}
	columns := extractHeaders(allRows[layout.HeaderRow-1], table)

	start := layout.DataStartRow
	if start <= layout.HeaderRow {
		start = layout.HeaderRow + 1
	}

	for i := start - 1; i < len(allRows); i++ {
		row := allRows[i]
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

// configureReader configures the CSV reader for the delimiter.
func configureReader(reader *csv.Reader, delimiter string) {
	switch delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(delimiter) > 0 {
			reader.Comma = []rune(delimiter)[0]
		} else {
			reader.Comma = ','
		}
	}

	// Exports from spreadsheet tools are often ragged and loosely quoted.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// extractHeaders fills table.Headers from the header row and returns the
// column index of each kept header. Blank and repeated headers are dropped.
func extractHeaders(row []string, table *types.Table) []int {
	columns := make([]int, 0, len(row))
	for i, h := range row {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		h = strings.TrimSpace(h)
		if h == "" || table.HasColumn(h) {
			continue
		}
		table.Headers = append(table.Headers, h)
		columns = append(columns, i)
	}
	return columns
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
