package xlsxwriter

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/catalog-converter/internal/batch"
	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/pkg/utils"
)

// UpdateSink writes price or stock update rows.
type UpdateSink struct {
	cfg config.UpdateSheetConfig
	log logrus.FieldLogger
}

// NewUpdateSink creates a sink for one update file kind.
func NewUpdateSink(cfg config.UpdateSheetConfig, log logrus.FieldLogger) *UpdateSink {
	return &UpdateSink{cfg: cfg, log: log.WithField("update", cfg.Output)}
}

// WriteChunks writes one workbook per chunk of rows. Each row holds the three
// update cells in header order.
func (s *UpdateSink) WriteChunks(ctx context.Context, base string, chunks [][][]string) ([]string, error) {
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
		s.log.WithFields(logrus.Fields{"chunk": i + 1, "rows": len(chunk), "file": path}).Info("Wrote update file")
	}
	return written, nil
}

// WriteChunk writes rows to path, starting at the layout's data row.
func (s *UpdateSink) WriteChunk(path string, rows [][]string) error {
	f, sheet, err := s.open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, s.cfg.Layout.DataStartRow+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// open copies the template to path when it exists, or creates a workbook
// with the header row.
func (s *UpdateSink) open(path string) (*excelize.File, string, error) {
	if s.cfg.Template != "" && utils.FileExists(s.cfg.Template) {
		if err := utils.CopyFile(s.cfg.Template, path); err != nil {
			return nil, "", fmt.Errorf("failed to copy update template: %w", err)
		}
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		sheet := s.cfg.Layout.Sheet
		if sheet == "" {
			sheet = f.GetSheetName(0)
		}
		return f, sheet, nil
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	if s.cfg.Layout.Sheet != "" && s.cfg.Layout.Sheet != sheet {
		if err := f.SetSheetName(sheet, s.cfg.Layout.Sheet); err != nil {
			f.Close()
			return nil, "", err
		}
		sheet = s.cfg.Layout.Sheet
	}

	cell, err := excelize.CoordinatesToCellName(1, s.cfg.Layout.HeaderRow)
	if err != nil {
		f.Close()
		return nil, "", err
	}
	headers := s.cfg.Headers
	if err := f.SetSheetRow(sheet, cell, &headers); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("failed to write headers: %w", err)
	}
	return f, sheet, nil
}
