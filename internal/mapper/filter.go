package mapper

import (
	"github.com/ginjaninja78/catalog-converter/internal/audit"
	"github.com/ginjaninja78/catalog-converter/internal/transform"
	"github.com/ginjaninja78/catalog-converter/internal/types"
)

// FilterInStock keeps records whose stock field parses as a number greater
// than zero. Blank or non-numeric stock counts as out of stock. Dropped rows
// are recorded as audit.StockFiltered when rec is not nil.
func FilterInStock(records []types.SourceRecord, stockField string, rec audit.Recorder) []types.SourceRecord {
	kept := make([]types.SourceRecord, 0, len(records))
	for _, r := range records {
		raw := r.Get(stockField)
		if qty, ok := transform.ParseDecimal(raw); ok && qty.IsPositive() {
			kept = append(kept, r)
			continue
		}
		if rec != nil {
			rec.Record(audit.Entry{
				Kind:    audit.StockFiltered,
				Row:     r.Row,
				Field:   stockField,
				Value:   raw,
				Message: "no stock on hand, row skipped",
			})
		}
	}
	return kept
}
