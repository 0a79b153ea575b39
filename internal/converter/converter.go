// =============================================================================
// Catalog Converter - Converter Module
// =============================================================================
//
// This module contains the run orchestration. It drives one conversion from
// the catalog export to the upload workbooks and, when a reference is
// configured, the price and stock update workbooks.
//
// CONVERSION PIPELINE:
//   1. Read the catalog export (.xlsx or .csv)
//   2. Drop rows without stock on hand (optional)
//   3. Route rows to splits by SKU prefix
//   4. Map each split and write it in chunks of 1000 rows
//   5. Reconcile every mapped row against the reference (optional)
//   6. Write the audit log and the summary log
//
// CONCURRENCY:
//   Splits are independent and processed in parallel, bounded by
//   processing.max_concurrency. Variant numbering never crosses a split.
//   Cancellation is checked before each chunk is written.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/catalog-converter/internal/audit"
	"github.com/ginjaninja78/catalog-converter/internal/batch"
	"github.com/ginjaninja78/catalog-converter/internal/category"
	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/internal/csvparser"
	"github.com/ginjaninja78/catalog-converter/internal/logging"
	"github.com/ginjaninja78/catalog-converter/internal/mapper"
	"github.com/ginjaninja78/catalog-converter/internal/reconcile"
	"github.com/ginjaninja78/catalog-converter/internal/types"
	"github.com/ginjaninja78/catalog-converter/internal/xlsxparser"
	"github.com/ginjaninja78/catalog-converter/internal/xlsxwriter"
	"github.com/ginjaninja78/catalog-converter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one run.
type Result struct {
	// RunID identifies the run in log lines and file names.
	RunID string

	// Splits holds one entry per configured split, in configuration order.
	Splits []SplitResult

	// PriceUpdateFiles and StockUpdateFiles are empty unless the reference
	// is enabled.
	PriceUpdateFiles []string
	StockUpdateFiles []string

	// Reconcile counts reference lookups.
	Reconcile reconcile.Stats

	// SummaryFile and AuditLogFile are empty when not written.
	SummaryFile  string
	AuditLogFile string

	// Audit holds every recoverable condition met during the run.
	Audit *audit.Trail

	Stats ProcessingStats
}

// SplitResult represents the outcome of one split.
type SplitResult struct {
	Name string

	// Rows is the number of mapped rows.
	Rows int

	// OutputFiles are the chunk workbooks written, in chunk order.
	OutputFiles []string

	// Categories counts rows per category code, most frequent first.
	Categories []CategoryCount

	// Records are the mapped rows, kept for reconciliation.
	Records []*types.DestinationRecord

	// Error is set when the split failed and processing continued.
	Error error
}

// CategoryCount is one line of the category assignment report.
type CategoryCount struct {
	Code        string
	Description string
	Count       int
}

// String implements fmt.Stringer.
func (c CategoryCount) String() string {
	return fmt.Sprintf("%s %s: %d", c.Code, c.Description, c.Count)
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// SourceRows is the number of non-blank rows read from the export.
	SourceRows int

	// StockFiltered is the number of rows dropped for having no stock.
	StockFiltered int

	// Unmatched is the number of rows no split accepted.
	Unmatched int

	// MappedRows is the number of rows mapped across all splits.
	MappedRows int

	// ProcessingTime is the wall time of the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs conversions for one configuration.
type Converter struct {
	cfg   *config.Config
	runID string
	log   logrus.FieldLogger
	trail *audit.Trail
}

// New creates a Converter with a fresh run id.
//
// PARAMETERS:
//   - cfg: A validated configuration.
//   - log: The base logger; every line gets a run_id field.
func New(cfg *config.Config, log logrus.FieldLogger) *Converter {
	if log == nil {
		log = logging.Discard()
	}
	runID := uuid.New().String()
	log = log.WithField("run_id", runID)

	return &Converter{
		cfg:   cfg,
		runID: runID,
		log:   log,
		trail: audit.NewTrail(log),
	}
}

// RunID returns the id of this converter's run.
func (c *Converter) RunID() string {
	return c.runID
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
//
// RETURNS:
//   - The result, filled as far as the run got.
//   - An error for fatal conditions: unreadable source, template or
//     reference, a failed write, or cancellation. With ContinueOnError a
//     failing split is reported in its SplitResult instead.
func (c *Converter) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	result := &Result{RunID: c.runID, Audit: c.trail}
	fields := c.cfg.Mapping.Fields

	// =========================================================================
	// STEP 1: READ THE CATALOG EXPORT
	// =========================================================================

	c.log.WithField("source", c.cfg.Source.Path).Info("Reading catalog export")

	table, err := LoadTable(c.cfg.Source.Path, c.cfg.Source.Layout, c.cfg.Source.Delimiter)
	if err != nil {
		return result, fmt.Errorf("failed to read source: %w", err)
	}
	result.Stats.SourceRows = len(table.Records)
	records := table.Records

	// =========================================================================
	// STEP 2: STOCK FILTER
	// =========================================================================
	// Rows without stock on hand are never listed. When the export has no
	// stock column the filter cannot run and every row is kept.

	if c.cfg.Processing.FilterStock {
		if table.HasColumn(fields.Stock) {
			records = mapper.FilterInStock(records, fields.Stock, c.trail)
			result.Stats.StockFiltered = result.Stats.SourceRows - len(records)
			c.log.WithFields(logrus.Fields{
				"kept":    len(records),
				"dropped": result.Stats.StockFiltered,
			}).Info("Filtered rows without stock")
		} else {
			c.log.WithField("column", fields.Stock).Warn("Stock column not found, keeping all rows")
		}
	}

	// =========================================================================
	// STEP 3: ROUTE ROWS TO SPLITS
	// =========================================================================

	routed, unmatched := mapper.SplitBySKU(records, fields.SKU, c.cfg.Splits)
	result.Stats.Unmatched = unmatched
	if unmatched > 0 {
		c.log.WithField("rows", unmatched).Warn("Rows matched no split and were skipped")
	}

	m, err := mapper.New(c.cfg, c.trail, c.log)
	if err != nil {
		return result, err
	}

	if !c.cfg.Processing.DryRun {
		if err := utils.EnsureDirectories(c.cfg.Output.Dir); err != nil {
			return result, err
		}
	}

	// =========================================================================
	// STEP 4: MAP AND WRITE EACH SPLIT
	// =========================================================================

	result.Splits = make([]SplitResult, len(c.cfg.Splits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Processing.MaxConcurrency)

	for i, split := range c.cfg.Splits {
		i, split := i, split
		g.Go(func() error {
			sr, err := c.processSplit(gctx, m, split, table.Headers, routed[i])
			if err != nil {
				sr.Error = err
				result.Splits[i] = sr
				if c.cfg.Processing.ContinueOnError && ctx.Err() == nil {
					logging.LogError(c.log.WithField("split", split.Name), "converter", "process split", err)
					return nil
				}
				return fmt.Errorf("split %s: %w", split.Name, err)
			}
			result.Splits[i] = sr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	for _, sr := range result.Splits {
		result.Stats.MappedRows += sr.Rows
	}

	// =========================================================================
	// STEP 5: RECONCILE AGAINST THE REFERENCE
	// =========================================================================

	if c.cfg.Reference.Enabled {
		if err := c.reconcile(ctx, result); err != nil {
			return result, err
		}
	}

	// =========================================================================
	// STEP 6: AUDIT AND SUMMARY LOGS
	// =========================================================================

	result.Stats.ProcessingTime = time.Since(startTime)
	c.log.WithField("entries", c.trail.Total()).Info(c.trail.Summary())

	if err := c.writeLogs(result, startTime); err != nil {
		return result, err
	}

	c.log.WithFields(logrus.Fields{
		"rows":     result.Stats.MappedRows,
		"duration": result.Stats.ProcessingTime.String(),
	}).Info("Conversion complete")

	return result, nil
}

// processSplit maps one split and writes its chunks.
func (c *Converter) processSplit(ctx context.Context, m *mapper.Mapper, split config.SplitConfig, headers []string, records []types.SourceRecord) (SplitResult, error) {
	sr := SplitResult{Name: split.Name}
	log := c.log.WithField("split", split.Name)

	if len(records) == 0 {
		log.Info("No rows for split, nothing to write")
		return sr, nil
	}

	mapped := m.MapBatch(mapper.Batch{Split: split.Name, Headers: headers, Records: records})
	sr.Rows = len(mapped)
	sr.Records = mapped
	sr.Categories = countCategories(mapped, c.cfg.Mapping.Fields.Category, m.Categories())

	for _, cc := range sr.Categories {
		log.WithFields(logrus.Fields{
			"category":    cc.Code,
			"description": cc.Description,
			"rows":        cc.Count,
		}).Info("Category assignment")
	}

	if c.cfg.Processing.DryRun {
		log.WithField("rows", sr.Rows).Info("Dry run, skipping upload files")
		return sr, nil
	}

	sink, err := xlsxwriter.NewTemplateSink(c.cfg.Template, c.cfg.DestinationFields(), c.trail, split.Name, c.log)
	if err != nil {
		return sr, err
	}
	sink.NumericFields(c.cfg.NumericFields()...)

	chunks := batch.Split(mapped, batch.DefaultChunkSize)
	base := filepath.Join(c.cfg.Output.Dir, split.Output)
	sr.OutputFiles, err = sink.WriteChunks(ctx, base, chunks)
	return sr, err
}

// reconcile builds and writes the price and stock updates for every mapped
// row, in split order.
func (c *Converter) reconcile(ctx context.Context, result *Result) error {
	refCfg := c.cfg.Reference
	fields := c.cfg.Mapping.Fields

	c.log.WithField("reference", refCfg.Path).Info("Reading price/stock reference")

	table, err := LoadTable(refCfg.Path, refCfg.Layout, c.cfg.Source.Delimiter)
	if err != nil {
		return fmt.Errorf("failed to read reference: %w", err)
	}
	ref, err := reconcile.LoadReference(table, refCfg.SKUColumn, refCfg.PriceColumn, refCfg.QuantityColumn, c.trail)
	if err != nil {
		return err
	}

	var items []reconcile.Item
	for _, sr := range result.Splits {
		for _, d := range sr.Records {
			items = append(items, reconcile.Item{SKU: d.Get(fields.OutputSKU), BasePrice: d.Get(fields.BasePrice)})
		}
	}

	engine := reconcile.Engine{ChunkSize: batch.DefaultChunkSize, Audit: c.trail, Split: "reconcile"}
	res := engine.Reconcile(items, ref)
	result.Reconcile = res.Stats

	c.log.WithFields(logrus.Fields{
		"reference_skus": ref.Len(),
		"price_hits":     res.Stats.PriceHits,
		"price_misses":   res.Stats.PriceMiss,
		"stock_hits":     res.Stats.StockHits,
		"stock_misses":   res.Stats.StockMiss,
	}).Info("Reconciled against reference")

	if c.cfg.Processing.DryRun {
		return nil
	}

	priceRows := make([][][]string, len(res.PriceBatches))
	for i, b := range res.PriceBatches {
		for _, u := range b {
			priceRows[i] = append(priceRows[i], u.Row())
		}
	}
	stockRows := make([][][]string, len(res.StockBatches))
	for i, b := range res.StockBatches {
		for _, u := range b {
			stockRows[i] = append(stockRows[i], u.Row())
		}
	}

	priceSink := xlsxwriter.NewUpdateSink(refCfg.PriceUpdate, c.log)
	result.PriceUpdateFiles, err = priceSink.WriteChunks(ctx, filepath.Join(c.cfg.Output.Dir, refCfg.PriceUpdate.Output), priceRows)
	if err != nil {
		return fmt.Errorf("failed to write price updates: %w", err)
	}

	stockSink := xlsxwriter.NewUpdateSink(refCfg.StockUpdate, c.log)
	result.StockUpdateFiles, err = stockSink.WriteChunks(ctx, filepath.Join(c.cfg.Output.Dir, refCfg.StockUpdate.Output), stockRows)
	if err != nil {
		return fmt.Errorf("failed to write stock updates: %w", err)
	}
	return nil
}

// writeLogs writes the audit log and the summary log when enabled. Dry runs
// write neither.
func (c *Converter) writeLogs(result *Result, startTime time.Time) error {
	out := c.cfg.Output
	if c.cfg.Processing.DryRun {
		return nil
	}

	if out.WriteAuditLog && c.trail.Total() > 0 {
		path := filepath.Join(out.Dir, fmt.Sprintf("audit_%s.txt", c.runID))
		if err := c.trail.WriteLog(path); err != nil {
			return err
		}
		result.AuditLogFile = path
	}

	if out.WriteSummary {
		path, err := utils.WriteSummaryLog(c.summary(result, startTime), out.Dir)
		if err != nil {
			return err
		}
		result.SummaryFile = path
		c.log.WithField("file", path).Info("Wrote summary")
	}
	return nil
}

func (c *Converter) summary(result *Result, startTime time.Time) utils.ProcessingSummary {
	s := utils.ProcessingSummary{
		RunID:            c.runID,
		StartTime:        startTime,
		EndTime:          startTime.Add(result.Stats.ProcessingTime),
		SourceFile:       c.cfg.Source.Path,
		SourceRows:       result.Stats.SourceRows,
		StockFiltered:    result.Stats.StockFiltered,
		Unmatched:        result.Stats.Unmatched,
		PriceUpdateFiles: result.PriceUpdateFiles,
		StockUpdateFiles: result.StockUpdateFiles,
		AuditSummary:     c.trail.Summary(),
		DryRun:           c.cfg.Processing.DryRun,
	}
	for _, sr := range result.Splits {
		split := utils.SplitSummary{Name: sr.Name, Rows: sr.Rows, OutputFiles: sr.OutputFiles}
		for _, cc := range sr.Categories {
			split.Categories = append(split.Categories, cc.String())
		}
		if sr.Error != nil {
			split.Error = sr.Error.Error()
		}
		s.Splits = append(s.Splits, split)
	}
	return s
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// LoadTable reads a .csv file with csvparser and anything else with
// xlsxparser.
func LoadTable(path string, layout config.SheetLayout, delimiter string) (*types.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return csvparser.ReadTable(path, layout, delimiter)
	}
	return xlsxparser.ReadTable(path, layout)
}

// countCategories tallies the category field. Codes unknown to the engine
// keep a blank description.
func countCategories(records []*types.DestinationRecord, field string, engine *category.Engine) []CategoryCount {
	counts := make(map[string]int)
	for _, d := range records {
		counts[d.Get(field)]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for code, n := range counts {
		cc := CategoryCount{Code: code, Count: n}
		if engine != nil {
			if info, ok := engine.CategoryInfo(code); ok {
				cc.Description = info.Description
			}
		}
		out = append(out, cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}
