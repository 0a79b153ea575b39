// =============================================================================
// Catalog Converter - Reconciliation Engine
// =============================================================================
//
// After the upload files are produced, the marketplace listing is kept in
// sync with an external price/stock reference (the wholesaler's inventory
// sheet). This package produces the two update record sets:
//
//   PRICE UPDATE:  SKU ID | Current base price | New base price
//   STOCK UPDATE:  SKU    | SKU ID (blank)     | New quantity
//
// FALLBACKS:
//   - A SKU missing from the reference, or present without a price, keeps its
//     computed base price as the new base price.
//   - The new base price is left blank only when there is neither a
//     reference price nor a computed base price. Such rows are audited as
//     UnparseableValue and counted in Stats.Unpriced.
//   - A SKU missing from the reference gets a new quantity of 0.
//   - Blank SKUs are skipped.
//
// Lookup is by exact, case-sensitive match on the trimmed SKU.
//
// =============================================================================

package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/catalog-converter/internal/audit"
	"github.com/ginjaninja78/catalog-converter/internal/batch"
)

// =============================================================================
// REFERENCE
// =============================================================================

// Entry is one reference row.
type Entry struct {
	// Price is the authoritative sale price, if the reference has one.
	Price decimal.NullDecimal

	// Quantity is the on-hand quantity. Blank quantities read as zero.
	Quantity decimal.Decimal
}

// Reference answers lookups by SKU.
type Reference interface {
	Lookup(sku string) (Entry, bool)
}

// MapReference is an in-memory Reference.
type MapReference struct {
	entries map[string]Entry
}

// NewMapReference creates an empty reference.
func NewMapReference() *MapReference {
	return &MapReference{entries: make(map[string]Entry)}
}

// Add stores an entry. The first entry for a SKU wins; later ones are
// ignored and reported as false.
func (m *MapReference) Add(sku string, e Entry) bool {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return false
	}
	if _, exists := m.entries[sku]; exists {
		return false
	}
	m.entries[sku] = e
	return true
}

// Lookup implements Reference.
func (m *MapReference) Lookup(sku string) (Entry, bool) {
	e, ok := m.entries[strings.TrimSpace(sku)]
	return e, ok
}

// Len returns the number of distinct SKUs.
func (m *MapReference) Len() int {
	return len(m.entries)
}

// =============================================================================
// UPDATE RECORDS
// =============================================================================

// Item is one mapped output row to reconcile.
type Item struct {
	SKU string

	// BasePrice is the base price written to the upload file, "" if none.
	BasePrice string
}

// PriceUpdate is one row of a price update file.
type PriceUpdate struct {
	SKU              string
	CurrentBasePrice string
	NewBasePrice     string
}

// Row returns the cells in update-file column order.
func (p PriceUpdate) Row() []string {
	return []string{p.SKU, p.CurrentBasePrice, p.NewBasePrice}
}

// StockUpdate is one row of a stock update file. SKUID is always blank; the
// marketplace fills it after the first upload.
type StockUpdate struct {
	SKU      string
	SKUID    string
	Quantity string
}

// Row returns the cells in update-file column order.
func (s StockUpdate) Row() []string {
	return []string{s.SKU, s.SKUID, s.Quantity}
}

// Stats counts how each lookup resolved.
type Stats struct {
	Items     int
	Skipped   int
	PriceHits int
	PriceMiss int
	StockHits int
	StockMiss int
	Unpriced  int
}

// Result holds the reconciled records, already split into upload batches.
type Result struct {
	PriceUpdates []PriceUpdate
	StockUpdates []StockUpdate
	PriceBatches [][]PriceUpdate
	StockBatches [][]StockUpdate
	Stats        Stats
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine reconciles mapped rows against a reference.
type Engine struct {
	// ChunkSize bounds each batch; non-positive means batch.DefaultChunkSize.
	ChunkSize int

	// Audit receives lookup misses. May be nil.
	Audit audit.Recorder

	// Split labels audit entries.
	Split string
}

// Reconcile produces one price and one stock update per non-blank SKU, in
// input order.
func (e *Engine) Reconcile(items []Item, ref Reference) Result {
	var res Result
	res.Stats.Items = len(items)

	for _, it := range items {
		sku := strings.TrimSpace(it.SKU)
		if sku == "" {
			res.Stats.Skipped++
			continue
		}

		current := strings.TrimSpace(it.BasePrice)
		entry, found := ref.Lookup(sku)

		newPrice := current
		switch {
		case found && entry.Price.Valid:
			newPrice = entry.Price.Decimal.StringFixed(2)
			res.Stats.PriceHits++
		default:
			res.Stats.PriceMiss++
			e.record(audit.Entry{
				Kind:    audit.ReferenceLookupMiss,
				Field:   "price",
				Value:   sku,
				Message: "no reference price, keeping current base price",
			})
			if current == "" {
				res.Stats.Unpriced++
				e.record(audit.Entry{
					Kind:    audit.UnparseableValue,
					Field:   "price",
					Value:   sku,
					Message: "no reference price and no computed base price",
				})
			}
		}

		quantity := "0"
		if found {
			quantity = entry.Quantity.Truncate(0).String()
			res.Stats.StockHits++
		} else {
			res.Stats.StockMiss++
			e.record(audit.Entry{
				Kind:    audit.ReferenceLookupMiss,
				Field:   "stock",
				Value:   sku,
				Message: "no reference stock, setting quantity to 0",
			})
		}

		res.PriceUpdates = append(res.PriceUpdates, PriceUpdate{
			SKU:              sku,
			CurrentBasePrice: current,
			NewBasePrice:     newPrice,
		})
		res.StockUpdates = append(res.StockUpdates, StockUpdate{
			SKU:      sku,
			Quantity: quantity,
		})
	}

	res.PriceBatches = batch.Split(res.PriceUpdates, e.ChunkSize)
	res.StockBatches = batch.Split(res.StockUpdates, e.ChunkSize)
	return res
}

func (e *Engine) record(entry audit.Entry) {
	if e.Audit == nil {
		return
	}
	entry.Split = e.Split
	e.Audit.Record(entry)
}
