// =============================================================================
// Catalog Converter - XLSX Writers
// =============================================================================
//
// This module writes mapped rows into copies of marketplace workbooks.
//
// TEMPLATE SINK:
//   Each chunk of destination records becomes one copy of the upload
//   template. The label row is read once; every destination field is bound
//   to its template columns (see ResolveColumns) and each record fills one
//   row starting at the layout's data row:
//
//     | Row 2 | Category | Product Name | Quantity | ... | Quantity |  <- labels
//     | Row 5 | 29264    | Leather Belt | 7        | ... | 7        |  <- record 1
//
//   Scalar fields are written to every bound column. Series fields (image
//   URLs) are spread one value per bound column; extra values are dropped.
//   Fields marked numeric (prices, quantity) are written as number cells;
//   a value that does not parse is written as text.
//
// UPDATE SINK:
//   Price and stock update rows are plain three-column sheets written to a
//   copy of the update template, or to a new workbook with a header row when
//   the template is absent.
//
// =============================================================================

package xlsxwriter

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/catalog-converter/internal/audit"
	"github.com/ginjaninja78/catalog-converter/internal/batch"
	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/internal/transform"
	"github.com/ginjaninja78/catalog-converter/internal/types"
	"github.com/ginjaninja78/catalog-converter/internal/xlsxparser"
)

// =============================================================================
// TEMPLATE SINK
// =============================================================================

// TemplateSink writes destination records into copies of an upload template.
type TemplateSink struct {
	path    string
	layout  config.SheetLayout
	columns ColumnMap
	numeric map[string]bool
	log     logrus.FieldLogger
}

// NewTemplateSink reads the template labels and binds fields to columns.
//
// PARAMETERS:
//   - cfg: Template path, layout and matching mode.
//   - fields: Every destination field the records may carry.
//   - rec: Receives one MissingDestinationColumn entry per unbound field.
//     May be nil.
//   - split: Labels audit entries.
//   - log: Receives chunk progress.
//
// RETURNS:
//   - The sink.
//   - An error if the template cannot be read, or strict matching fails.
func NewTemplateSink(cfg config.TemplateConfig, fields []string, rec audit.Recorder, split string, log logrus.FieldLogger) (*TemplateSink, error) {
	labels, err := xlsxparser.ReadLabels(cfg.Path, cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to read template labels: %w", err)
	}

	columns, missing, err := ResolveColumns(labels, fields, cfg.StrictColumns)
	if err != nil {
		return nil, err
	}
	for _, field := range missing {
		if rec != nil {
			rec.Record(audit.Entry{
				Kind:    audit.MissingDestinationColumn,
				Split:   split,
				Field:   field,
				Message: "template has no column for this field, values are dropped",
			})
		}
	}

	return &TemplateSink{
		path:    cfg.Path,
		layout:  cfg.Layout,
		columns: columns,
		numeric: make(map[string]bool),
		log:     log.WithField("split", split),
	}, nil
}

// NumericFields marks fields whose values are written as number cells.
func (s *TemplateSink) NumericFields(fields ...string) *TemplateSink {
	for _, field := range fields {
		if field != "" {
			s.numeric[field] = true
		}
	}
	return s
}

// Columns returns the resolved field bindings.
func (s *TemplateSink) Columns() ColumnMap {
	return s.columns
}

// WriteChunks writes one workbook per chunk, named with batch.ChunkFileName.
// The context is checked before each chunk; chunks already written stay on
// disk when it is cancelled.
func (s *TemplateSink) WriteChunks(ctx context.Context, base string, chunks [][]*types.DestinationRecord) ([]string, error) {
	var written []string
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		path := batch.ChunkFileName(base, i+1)
		if err := s.WriteChunk(path, chunk); err != nil {
			return written, err
		}
		written = append(written, path)

		s.log.WithFields(logrus.Fields{
			"chunk": i + 1,
			"rows":  len(chunk),
			"file":  path,
		}).Info("Wrote upload file")
	}
	return written, nil
}

// WriteChunk writes records into a fresh copy of the template saved at path.
func (s *TemplateSink) WriteChunk(path string, records []*types.DestinationRecord) error {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to open template %s: %w", s.path, err)
	}
	defer f.Close()

	sheet := s.layout.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	for i, rec := range records {
		row := s.layout.DataStartRow + i
		for _, field := range rec.Fields() {
			cols := s.columns[field]
			if len(cols) == 0 {
				continue
			}
			if err := writeField(f, sheet, row, cols, rec, field, s.numeric[field]); err != nil {
				return fmt.Errorf("row %d field %q: %w", rec.SourceRow, field, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeField(f *excelize.File, sheet string, row int, cols []int, rec *types.DestinationRecord, field string, numeric bool) error {
	if rec.IsSeries(field) {
		for k, v := range rec.Values(field) {
			if k >= len(cols) {
				break
			}
			if err := setCell(f, sheet, cols[k], row, v, numeric); err != nil {
				return err
			}
		}
		return nil
	}

	v := rec.Get(field)
	for _, col := range cols {
		if err := setCell(f, sheet, col, row, v, numeric); err != nil {
			return err
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value string, numeric bool) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return err
	}
	if numeric {
		if d, ok := transform.ParseDecimal(value); ok {
			n, _ := d.Float64()
			return f.SetCellFloat(sheet, cell, n, -1, 64)
		}
	}
	return f.SetCellStr(sheet, cell, value)
}
