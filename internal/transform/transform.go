// =============================================================================
// Catalog Converter - Field Transformer
// =============================================================================
//
// This package provides the pure per-value transformations applied while
// mapping a catalog row onto the upload template.
//
// CONTRACT:
//   - Every function is total: any input string yields an output string.
//   - The empty string is the "absent" sentinel in both directions.
//   - No function keeps state between calls.
//
// NAMED TRANSFORMS:
//   Column mappings in the YAML configuration refer to transforms by name.
//   The registry below resolves those names:
//     trim        - strip surrounding whitespace
//     price       - normalize a price string to a canonical decimal
//     parent_sku  - derive the parent key from a variant SKU
//     first_image - keep only the first URL of an image list
//     uppercase   - upper-case the value
//     lowercase   - lower-case the value
//     integer     - truncate a numeric value to a whole number
//
// =============================================================================

package transform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Func is a single named value transformation.
type Func func(value string) string

// =============================================================================
// REGISTRY
// =============================================================================

var registry = map[string]Func{
	"trim":        TrimText,
	"price":       NormalizePrice,
	"parent_sku":  SKUToParent,
	"first_image": FirstImageURL,
	"uppercase":   func(v string) string { return strings.ToUpper(TrimText(v)) },
	"lowercase":   func(v string) string { return strings.ToLower(TrimText(v)) },
	"integer":     Integer,
}

// Lookup returns the transform registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}

// Names returns every registered transform name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain resolves a list of transform names into one Func applied left to
// right. An empty list yields the identity transform.
//
// RETURNS:
//   - The composed transform.
//   - An error naming the first unknown transform.
func Chain(names ...string) (Func, error) {
	fns := make([]Func, 0, len(names))
	for _, name := range names {
		fn, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown transform: %q", name)
		}
		fns = append(fns, fn)
	}

	return func(value string) string {
		for _, fn := range fns {
			value = fn(value)
		}
		return value
	}, nil
}

// =============================================================================
// TEXT
// =============================================================================

// TrimText returns the value without surrounding whitespace.
func TrimText(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(value)
}

// =============================================================================
// PRICES
// =============================================================================

// currencyPrefixes are stripped from the front of a price before parsing.
var currencyPrefixes = []string{"USD", "US$", "$", "€", "£", "¥"}

// NormalizePrice parses a free-form price into a canonical decimal string.
//
// EXAMPLES:
//   "$1,234.50" -> "1234.5"
//   " 19.99 "   -> "19.99"
//   "n/a"       -> ""
//
// Parsing failures yield the absent sentinel rather than an error.
func NormalizePrice(value string) string {
	d, ok := ParseDecimal(value)
	if !ok {
		return ""
	}
	return d.String()
}

// ParseDecimal is the parsing half of NormalizePrice, exposed for callers
// that want the decimal itself.
func ParseDecimal(value string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero, false
	}

	for _, prefix := range currencyPrefixes {
		if strings.HasPrefix(strings.ToUpper(s), prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Integer truncates a numeric value toward zero and renders it without a
// fractional part. Non-numeric input yields "".
func Integer(value string) string {
	d, ok := ParseDecimal(value)
	if !ok {
		return ""
	}
	return d.Truncate(0).String()
}

// =============================================================================
// SKUS
// =============================================================================

// parentPattern captures a SKU body that ends in a non-letter, followed by the
// trailing run of ASCII letters that names the variant.
var parentPattern = regexp.MustCompile(`^(.*[^A-Za-z])([A-Za-z]+)$`)

// SKUToParent derives the parent key shared by sibling variants.
//
// RULES:
//   - Blank input yields "".
//   - A trailing run of letters is removed only when something other than a
//     letter precedes it, so all-alphabetic SKUs come back unchanged.
//   - Single-letter suffixes are removed too.
//
// EXAMPLES:
//   "HBG100PN"  -> "HBG100"
//   "HBG200"    -> "HBG200"
//   "CAP00642W" -> "CAP00642"
//   "BAG"       -> "BAG"
//
// The function is idempotent: the result never ends in a letter run that can
// be stripped again, since its last character is a non-letter or the whole
// string is letters.
func SKUToParent(sku string) string {
	s := strings.TrimSpace(sku)
	if s == "" {
		return ""
	}
	if m := parentPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// =============================================================================
// IMAGES
// =============================================================================

// SelectImageURLs picks the image list for a row. The per-variant image wins
// when present; otherwise the product gallery is split into individual URLs.
func SelectImageURLs(primary, fallback string) []string {
	if urls := SplitURLs(primary); len(urls) > 0 {
		return urls[:1]
	}
	return SplitURLs(fallback)
}

// SplitURLs splits a list of URLs on whitespace and the usual list separators.
func SplitURLs(value string) []string {
	urls := strings.FieldsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '|'
	})
	if urls == nil {
		return []string{}
	}
	return urls
}

// FirstImageURL returns the first URL of a list, or "".
func FirstImageURL(value string) string {
	urls := SplitURLs(value)
	if len(urls) == 0 {
		return ""
	}
	return urls[0]
}
