package reconcile

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/catalog-converter/internal/audit"
)

func priced(price string, qty int64) Entry {
	return Entry{
		Price:    decimal.NullDecimal{Decimal: decimal.RequireFromString(price), Valid: true},
		Quantity: decimal.NewFromInt(qty),
	}
}

func TestReconcileUsesReference(t *testing.T) {
	ref := NewMapReference()
	ref.Add("HBG100PN", priced("15.50", 12))

	res := (&Engine{}).Reconcile([]Item{{SKU: "HBG100PN", BasePrice: "18.99"}}, ref)

	require.Len(t, res.PriceUpdates, 1)
	assert.Equal(t, PriceUpdate{SKU: "HBG100PN", CurrentBasePrice: "18.99", NewBasePrice: "15.50"}, res.PriceUpdates[0])
	assert.Equal(t, StockUpdate{SKU: "HBG100PN", Quantity: "12"}, res.StockUpdates[0])
	assert.Equal(t, 1, res.Stats.PriceHits)
	assert.Equal(t, 1, res.Stats.StockHits)
}

func TestReconcileFallbacks(t *testing.T) {
	ref := NewMapReference()
	ref.Add("HW1", Entry{Quantity: decimal.NewFromInt(4)})
	trail := audit.NewTrail(nil)

	e := &Engine{Audit: trail, Split: "handbags"}
	res := e.Reconcile([]Item{
		{SKU: "HW1", BasePrice: "9.99"},
		{SKU: "HW2", BasePrice: "4.99"},
		{SKU: "HW3", BasePrice: ""},
	}, ref)

	require.Len(t, res.PriceUpdates, 3)
	assert.Equal(t, "9.99", res.PriceUpdates[0].NewBasePrice, "entry without a price keeps base")
	assert.Equal(t, "4", res.StockUpdates[0].Quantity)
	assert.Equal(t, "4.99", res.PriceUpdates[1].NewBasePrice)
	assert.Equal(t, "0", res.StockUpdates[1].Quantity)
	assert.Equal(t, "", res.PriceUpdates[2].NewBasePrice)

	assert.Equal(t, 3, res.Stats.PriceMiss)
	assert.Equal(t, 2, res.Stats.StockMiss)
	assert.Equal(t, 1, res.Stats.Unpriced)
	assert.Equal(t, 5, trail.Count(audit.ReferenceLookupMiss))
	assert.Equal(t, 1, trail.Count(audit.UnparseableValue))
	assert.Equal(t, "handbags", trail.Entries(audit.ReferenceLookupMiss)[0].Split)
}

func TestReconcileLeavesUnpricedBlank(t *testing.T) {
	ref := NewMapReference()
	ref.Add("HW3", Entry{Quantity: decimal.NewFromInt(2)})
	trail := audit.NewTrail(nil)

	res := (&Engine{Audit: trail, Split: "reconcile"}).Reconcile([]Item{{SKU: "HW3"}}, ref)

	require.Len(t, res.PriceUpdates, 1)
	assert.Equal(t, []string{"HW3", "", ""}, res.PriceUpdates[0].Row())
	assert.Equal(t, "2", res.StockUpdates[0].Quantity, "stock still updates")
	assert.Equal(t, 1, res.Stats.Unpriced)

	unpriced := trail.Entries(audit.UnparseableValue)
	require.Len(t, unpriced, 1)
	assert.Equal(t, "HW3", unpriced[0].Value)
	assert.Equal(t, "reconcile", unpriced[0].Split)
}

func TestReconcileSkipsBlankSKUs(t *testing.T) {
	res := (&Engine{}).Reconcile([]Item{{SKU: "  "}, {SKU: "A1", BasePrice: "1.99"}}, NewMapReference())
	assert.Len(t, res.PriceUpdates, 1)
	assert.Len(t, res.StockUpdates, 1)
	assert.Equal(t, 1, res.Stats.Skipped)
}

func TestLookupIsExactAndCaseSensitive(t *testing.T) {
	ref := NewMapReference()
	ref.Add(" HBG1 ", priced("5", 1))

	_, ok := ref.Lookup("HBG1")
	assert.True(t, ok)
	_, ok = ref.Lookup("hbg1")
	assert.False(t, ok)
}

func TestFirstReferenceEntryWins(t *testing.T) {
	ref := NewMapReference()
	assert.True(t, ref.Add("X", priced("1", 1)))
	assert.False(t, ref.Add("X", priced("2", 2)))
	assert.False(t, ref.Add("", priced("3", 3)))

	e, _ := ref.Lookup("X")
	assert.Equal(t, "1.00", e.Price.Decimal.StringFixed(2))
	assert.Equal(t, 1, ref.Len())
}

func TestReconcileBatches(t *testing.T) {
	items := make([]Item, 2500)
	for i := range items {
		items[i] = Item{SKU: fmt.Sprintf("SKU%04d", i), BasePrice: "1.99"}
	}

	res := (&Engine{}).Reconcile(items, NewMapReference())
	require.Len(t, res.PriceBatches, 3)
	require.Len(t, res.StockBatches, 3)
	assert.Len(t, res.PriceBatches[2], 500)
	assert.Equal(t, "SKU1000", res.StockBatches[1][0].SKU)
}
