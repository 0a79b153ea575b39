// =============================================================================
// Catalog Converter - Row Mapper
// =============================================================================
//
// This module turns the catalog rows of one split into upload-template rows.
//
// MAPPING STEPS (per row, in this order):
//   1. Column mappings: copy each mapped source column, running its transforms
//   2. Fixed values: constant fields (these override step 1)
//   3. Category: rule engine over product name + image text
//   4. Pricing: base and list price from the retail price
//   5. Variants: color + theme from a pre-pass over the whole batch
//   6. Parent key: derived from the SKU
//   7. Images: the URL series for SKU images, the first URL for detail images
//
// The mapper only decides field values. Writing a value to every column that
// shares the field name (Quantity, Base Price - USD, ...) is the sink's job.
//
// RECOVERABLE CONDITIONS (audited, never fatal):
//   - A mapped source column missing from the export: skipped for the batch
//   - An unparseable price: both prices left blank
//   - A SKU repeated within the batch: both rows are kept
//
// =============================================================================

package mapper

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/catalog-converter/internal/audit"
	"github.com/ginjaninja78/catalog-converter/internal/category"
	"github.com/ginjaninja78/catalog-converter/internal/config"
	"github.com/ginjaninja78/catalog-converter/internal/pricing"
	"github.com/ginjaninja78/catalog-converter/internal/transform"
	"github.com/ginjaninja78/catalog-converter/internal/types"
	"github.com/ginjaninja78/catalog-converter/internal/variant"
)

// =============================================================================
// MAPPER
// =============================================================================

// Mapping is a resolved column mapping.
type Mapping struct {
	Source      string
	Destination string
	Transform   transform.Func
}

// Mapper maps source rows to destination rows. A Mapper holds no per-batch
// state and may be shared between goroutines.
type Mapper struct {
	mappings []Mapping
	fixed    []config.FixedValue
	fields   config.FieldNames

	// categories is nil when category rules are disabled.
	categories *category.Engine
	pricing    pricing.Strategy
	variants   variant.Assigner

	audit audit.Recorder
	log   logrus.FieldLogger
}

// New builds a mapper from configuration.
//
// RETURNS:
//   - The mapper.
//   - An error if a transform name or a category rule is invalid.
func New(cfg *config.Config, rec audit.Recorder, log logrus.FieldLogger) (*Mapper, error) {
	m := &Mapper{
		fixed:   cfg.Mapping.FixedValues,
		fields:  cfg.Mapping.Fields,
		pricing: pricing.NewStrategy(cfg.Pricing.BaseMultiplier, cfg.Pricing.ListMultiplier),
		audit:   rec,
		log:     log,
	}

	for _, c := range cfg.Mapping.Columns {
		fn, err := transform.Chain(c.Transforms...)
		if err != nil {
			return nil, fmt.Errorf("mapping %q: %w", c.Source, err)
		}
		m.mappings = append(m.mappings, Mapping{Source: c.Source, Destination: c.Destination, Transform: fn})
	}

	if !cfg.Categories.Disabled {
		engine, err := cfg.CategoryEngine()
		if err != nil {
			return nil, fmt.Errorf("category rules: %w", err)
		}
		m.categories = engine
	}

	return m, nil
}

// Categories returns the category engine, or nil when rules are disabled.
func (m *Mapper) Categories() *category.Engine {
	return m.categories
}

// Batch is the input of one MapBatch call.
type Batch struct {
	// Split labels audit entries and log lines.
	Split string

	// Headers are the source columns present in the export.
	Headers []string

	Records []types.SourceRecord
}

// MapBatch maps every record of a batch, in order. Variant numbering and
// duplicate detection see the whole batch and nothing outside it.
func (m *Mapper) MapBatch(b Batch) []*types.DestinationRecord {
	log := m.log.WithField("split", b.Split)
	present := make(map[string]bool, len(b.Headers))
	for _, h := range b.Headers {
		present[h] = true
	}

	// Resolve once which mappings can run against this export.
	active := make([]Mapping, 0, len(m.mappings))
	for _, mp := range m.mappings {
		if !present[mp.Source] {
			m.record(b.Split, audit.Entry{
				Kind:    audit.MissingField,
				Field:   mp.Source,
				Message: fmt.Sprintf("source column missing, %q left blank", mp.Destination),
			})
			continue
		}
		active = append(active, mp)
	}
	for _, f := range []string{m.fields.SKU, m.fields.ProductName, m.fields.Price} {
		if !present[f] {
			m.record(b.Split, audit.Entry{
				Kind:    audit.MissingField,
				Field:   f,
				Message: "source column missing, derived values fall back to defaults",
			})
		}
	}

	out := make([]*types.DestinationRecord, len(b.Records))
	seen := make(map[string]int, len(b.Records))

	for i, rec := range b.Records {
		dst := types.NewDestinationRecord(rec.Row)

		m.applyMappings(dst, rec, active)
		m.applyFixed(dst)
		m.applyCategory(dst, rec)
		m.applyPricing(b.Split, dst, rec)

		if sku := rec.Get(m.fields.SKU); sku != "" {
			if first, dup := seen[sku]; dup {
				m.record(b.Split, audit.Entry{
					Kind:    audit.DuplicateSKU,
					Row:     rec.Row,
					Field:   m.fields.SKU,
					Value:   sku,
					Message: fmt.Sprintf("SKU already seen on row %d", first),
				})
			} else {
				seen[sku] = rec.Row
			}
		}

		out[i] = dst
	}

	m.applyVariants(out, b.Records)

	for i, rec := range b.Records {
		out[i].Set(m.fields.ParentKey, transform.SKUToParent(rec.Get(m.fields.SKU)))
		m.applyImages(out[i], rec)
	}

	log.WithField("rows", len(out)).Debug("mapped batch")
	return out
}

// =============================================================================
// STEPS
// =============================================================================

func (m *Mapper) applyMappings(dst *types.DestinationRecord, rec types.SourceRecord, active []Mapping) {
	for _, mp := range active {
		dst.Set(mp.Destination, mp.Transform(rec.Fields[mp.Source]))
	}
}

func (m *Mapper) applyFixed(dst *types.DestinationRecord) {
	for _, f := range m.fixed {
		dst.Set(f.Field, f.Value)
	}
}

func (m *Mapper) applyCategory(dst *types.DestinationRecord, rec types.SourceRecord) {
	if m.categories == nil {
		return
	}
	aux := rec.Get(m.fields.ProductImages)
	dst.Set(m.fields.Category, m.categories.DetermineCategory(rec.Get(m.fields.ProductName), aux))
}

func (m *Mapper) applyPricing(split string, dst *types.DestinationRecord, rec types.SourceRecord) {
	raw := rec.Get(m.fields.Price)
	base, list := m.pricing.ComputeStrings(raw)
	if raw != "" && base == "" {
		m.record(split, audit.Entry{
			Kind:    audit.UnparseableValue,
			Row:     rec.Row,
			Field:   m.fields.Price,
			Value:   raw,
			Message: "price is not a number, prices left blank",
		})
	}
	dst.Set(m.fields.BasePrice, base)
	dst.Set(m.fields.ListPrice, list)
}

func (m *Mapper) applyVariants(out []*types.DestinationRecord, records []types.SourceRecord) {
	items := make([]variant.Item, len(records))
	for i, rec := range records {
		items[i] = variant.Item{
			SKU:   rec.Get(m.fields.SKU),
			Color: out[i].Get(m.fields.Color),
			Theme: out[i].Get(m.fields.Theme),
		}
	}

	assignments, _ := m.variants.Assign(items)
	for i, a := range assignments {
		out[i].Set(m.fields.Color, a.Color)
		out[i].Set(m.fields.Theme, a.Theme)
	}
}

func (m *Mapper) applyImages(dst *types.DestinationRecord, rec types.SourceRecord) {
	urls := transform.SelectImageURLs(rec.Get(m.fields.OptionImage), rec.Get(m.fields.ProductImages))
	if len(urls) == 0 {
		return
	}
	if m.fields.SKUImages != "" {
		dst.SetSeries(m.fields.SKUImages, urls)
	}
	if m.fields.DetailImages != "" {
		dst.Set(m.fields.DetailImages, urls[0])
	}
}

func (m *Mapper) record(split string, e audit.Entry) {
	if m.audit == nil {
		return
	}
	e.Split = split
	m.audit.Record(e)
}

// =============================================================================
// SPLITTING
// =============================================================================

// SplitBySKU routes records to the first split whose prefix matches the SKU
// (case-insensitive). Records matching no prefix go to the catch-all split
// (the one without prefixes) or are dropped when none exists.
//
// RETURNS:
//   - One record list per split, indexed like splits.
//   - The number of records matching no split.
func SplitBySKU(records []types.SourceRecord, skuField string, splits []config.SplitConfig) ([][]types.SourceRecord, int) {
	out := make([][]types.SourceRecord, len(splits))
	catchAll := -1
	for i, s := range splits {
		if len(s.Prefixes) == 0 {
			catchAll = i
			break
		}
	}

	unmatched := 0
	for _, rec := range records {
		sku := strings.ToUpper(rec.Get(skuField))
		idx := catchAll
	search:
		for i, s := range splits {
			for _, p := range s.Prefixes {
				if p != "" && strings.HasPrefix(sku, strings.ToUpper(p)) {
					idx = i
					break search
				}
			}
		}
		if idx < 0 {
			unmatched++
			continue
		}
		out[idx] = append(out[idx], rec)
	}
	return out, unmatched
}
