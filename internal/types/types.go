// =============================================================================
// Catalog Converter - Shared Types
// =============================================================================
//
// This package contains the record types shared by the core engine and the
// file adapters, kept here to avoid import cycles. Types defined here are
// used by:
//   - mapper
//   - xlsxparser / csvparser
//   - xlsxwriter
//   - converter
//
// =============================================================================

package types

import "strings"

// =============================================================================
// SOURCE TYPES
// =============================================================================

// SourceRecord is one product row read from the catalog export.
// A missing key and an empty string both mean "absent".
type SourceRecord struct {
	// Row is the 1-indexed row number in the source file.
	// Useful for audit messages.
	Row int

	// Fields maps source column header to raw cell text.
	Fields map[string]string
}

// Get returns the trimmed value of a field, or "" when absent.
func (r SourceRecord) Get(field string) string {
	return strings.TrimSpace(r.Fields[field])
}

// Has reports whether the field holds a non-blank value.
func (r SourceRecord) Has(field string) bool {
	return r.Get(field) != ""
}

// Table is an ordered snapshot of a source sheet.
type Table struct {
	// Headers are the column names in sheet order.
	Headers []string

	// Records are the data rows in sheet order.
	Records []SourceRecord
}

// HasColumn reports whether the table carries a column with this header.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// =============================================================================
// DESTINATION TYPES
// =============================================================================

// DestinationRecord is a fully-populated output row addressed by destination
// field name. Insertion order of fields is kept so writers are deterministic.
//
// A field holds either a scalar (written to every column bound to the field)
// or a series (distributed one value per bound column, in column order).
type DestinationRecord struct {
	// SourceRow is the row number of the SourceRecord this row came from.
	SourceRow int

	keys   []string
	values map[string][]string
	series map[string]bool
}

// NewDestinationRecord creates an empty record for the given source row.
func NewDestinationRecord(sourceRow int) *DestinationRecord {
	return &DestinationRecord{
		SourceRow: sourceRow,
		values:    make(map[string][]string),
		series:    make(map[string]bool),
	}
}

// Set stores a scalar value. Setting a field again replaces the value but keeps
// its original position.
func (d *DestinationRecord) Set(field, value string) {
	d.touch(field)
	d.values[field] = []string{value}
	d.series[field] = false
}

// SetSeries stores an ordered list of values to be spread across the columns
// bound to the field.
func (d *DestinationRecord) SetSeries(field string, values []string) {
	d.touch(field)
	d.values[field] = append([]string(nil), values...)
	d.series[field] = true
}

// Get returns the scalar value of a field (the first value of a series).
func (d *DestinationRecord) Get(field string) string {
	v := d.values[field]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Values returns every value held by a field.
func (d *DestinationRecord) Values(field string) []string {
	return d.values[field]
}

// IsSeries reports whether the field was stored with SetSeries.
func (d *DestinationRecord) IsSeries(field string) bool {
	return d.series[field]
}

// Fields returns the field names in insertion order.
func (d *DestinationRecord) Fields() []string {
	return append([]string(nil), d.keys...)
}

func (d *DestinationRecord) touch(field string) {
	if _, ok := d.values[field]; !ok {
		d.keys = append(d.keys, field)
	}
}
