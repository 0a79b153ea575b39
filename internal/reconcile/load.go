package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/catalog-converter/internal/audit"
	"github.com/ginjaninja78/catalog-converter/internal/transform"
	"github.com/ginjaninja78/catalog-converter/internal/types"
)

// LoadReference builds a MapReference from a reference table.
//
// PARAMETERS:
//   - table: The reference sheet as read by xlsxparser or csvparser.
//   - skuColumn, priceColumn, quantityColumn: Header labels to read.
//   - rec: Receives duplicate SKUs and unreadable values. May be nil.
//
// RETURNS:
//   - The reference. Rows with a blank SKU are ignored.
//   - An error if the table lacks the SKU column.
//
// A price that does not parse leaves the entry unpriced. A quantity that does
// not parse reads as zero.
func LoadReference(table *types.Table, skuColumn, priceColumn, quantityColumn string, rec audit.Recorder) (*MapReference, error) {
	if !table.HasColumn(skuColumn) {
		return nil, fmt.Errorf("reference has no %q column (found: %v)", skuColumn, table.Headers)
	}

	record := func(e audit.Entry) {
		if rec != nil {
			e.Split = "reference"
			rec.Record(e)
		}
	}

	ref := NewMapReference()
	for _, row := range table.Records {
		sku := row.Get(skuColumn)
		if sku == "" {
			continue
		}

		var entry Entry
		if raw := row.Get(priceColumn); raw != "" {
			if d, ok := transform.ParseDecimal(raw); ok {
				entry.Price = decimal.NullDecimal{Decimal: d, Valid: true}
			} else {
				record(audit.Entry{Kind: audit.UnparseableValue, Row: row.Row, Field: priceColumn, Value: raw,
					Message: "reference price is not a number"})
			}
		}
		if raw := row.Get(quantityColumn); raw != "" {
			if d, ok := transform.ParseDecimal(raw); ok {
				entry.Quantity = d
			} else {
				record(audit.Entry{Kind: audit.UnparseableValue, Row: row.Row, Field: quantityColumn, Value: raw,
					Message: "reference quantity is not a number, reading as 0"})
			}
		}

		if !ref.Add(sku, entry) {
			record(audit.Entry{Kind: audit.DuplicateSKU, Row: row.Row, Field: skuColumn, Value: sku,
				Message: "SKU repeated in reference, keeping the first row"})
		}
	}
	return ref, nil
}
