// =============================================================================
// Catalog Converter - Pricing Strategy
// =============================================================================
//
// Derives the marketplace base and list prices from the catalog retail price.
//
// FORMULA:
//   base = trunc(price * BaseMultiplier) - 0.01, never below 0.01
//   list = trunc(price * ListMultiplier) - 0.01, bumped to base + 0.01 when
//          it would not exceed base
//
//   trunc drops the fractional part toward zero, so every price ends in .99.
//
// EXAMPLE (default multipliers 1.0 / 1.25):
//   19.99 -> base 18.99, list 23.99
//
// =============================================================================

package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/catalog-converter/internal/transform"
)

var (
	cent     = decimal.New(1, -2)
	minPrice = cent
)

// Prices is one computed base/list pair.
type Prices struct {
	Base decimal.Decimal
	List decimal.Decimal
}

// Strings renders both prices with exactly two decimals.
func (p Prices) Strings() (base, list string) {
	return p.Base.StringFixed(2), p.List.StringFixed(2)
}

// Strategy holds the configured multipliers.
type Strategy struct {
	BaseMultiplier decimal.Decimal
	ListMultiplier decimal.Decimal
}

// DefaultStrategy uses a 1.0 base and 1.25 list multiplier.
func DefaultStrategy() Strategy {
	return Strategy{
		BaseMultiplier: decimal.NewFromInt(1),
		ListMultiplier: decimal.New(125, -2),
	}
}

// NewStrategy builds a strategy from float multipliers. Non-positive values
// fall back to the defaults.
func NewStrategy(base, list float64) Strategy {
	s := DefaultStrategy()
	if base > 0 {
		s.BaseMultiplier = decimal.NewFromFloat(base)
	}
	if list > 0 {
		s.ListMultiplier = decimal.NewFromFloat(list)
	}
	return s
}

// Compute derives prices from a raw source price string.
// ok is false when the input is blank or not a number.
func (s Strategy) Compute(source string) (Prices, bool) {
	price, ok := transform.ParseDecimal(source)
	if !ok {
		return Prices{}, false
	}

	base := price.Mul(s.BaseMultiplier).Truncate(0).Sub(cent)
	if base.LessThan(minPrice) {
		base = minPrice
	}

	list := price.Mul(s.ListMultiplier).Truncate(0).Sub(cent)
	if list.LessThanOrEqual(base) {
		list = base.Add(cent)
	}

	return Prices{Base: base, List: list}, true
}

// ComputeStrings is Compute rendered for a spreadsheet cell. Absent or
// unparseable input yields ("", "").
func (s Strategy) ComputeStrings(source string) (base, list string) {
	p, ok := s.Compute(source)
	if !ok {
		return "", ""
	}
	return p.Strings()
}
