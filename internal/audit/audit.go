// =============================================================================
// Catalog Converter - Audit Trail
// =============================================================================
//
// This package collects the recoverable conditions met while converting a
// catalog. None of them abort a batch; each one falls back to a documented
// default and is recorded here so the operator can review it afterwards.
//
// KINDS:
//   missing_field              - a mapped source column is not in the export
//   unparseable_value          - a value could not be parsed (e.g. a price)
//   missing_destination_column - a destination field has no template column
//   reference_lookup_miss      - the price/stock reference lacks a SKU
//   duplicate_sku              - a SKU appears more than once in a split
//   stock_filtered             - a row was dropped by the stock filter
//
// REPORTING:
//   - Every entry is counted per kind.
//   - The first SampleLimit entries of each kind are kept verbatim.
//   - Entries are also logged (warn for data problems, debug for expected
//     fallbacks such as filtered rows).
//
// =============================================================================

package audit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// =============================================================================
// ENTRY TYPES
// =============================================================================

// Kind classifies an audit entry.
type Kind string

const (
	MissingField             Kind = "missing_field"
	UnparseableValue         Kind = "unparseable_value"
	MissingDestinationColumn Kind = "missing_destination_column"
	ReferenceLookupMiss      Kind = "reference_lookup_miss"
	DuplicateSKU             Kind = "duplicate_sku"
	StockFiltered            Kind = "stock_filtered"
)

// SampleLimit is the number of entries kept verbatim per kind.
const SampleLimit = 50

// Entry is one recorded condition.
type Entry struct {
	Kind Kind

	// Split is the category split (output group) the entry belongs to.
	Split string

	// Row is the source row number, 0 when not row-specific.
	Row int

	// Field is the source or destination field involved.
	Field string

	// Value is the offending value, if any.
	Value string

	// Message is a human-readable explanation.
	Message string
}

// String implements fmt.Stringer.
func (e Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", e.Kind)
	if e.Split != "" {
		fmt.Fprintf(&b, " split=%s", e.Split)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " row=%d", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field=%q", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value=%q", e.Value)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}

// =============================================================================
// TRAIL
// =============================================================================

// Recorder is implemented by Trail. Components depend on this interface so a
// test can pass a Trail or any other sink.
type Recorder interface {
	Record(e Entry)
}

// Trail is a concurrency-safe collection of entries.
type Trail struct {
	mu      sync.Mutex
	counts  map[Kind]int
	samples map[Kind][]Entry
	log     logrus.FieldLogger
}

// NewTrail creates an empty trail. A nil logger disables logging.
func NewTrail(log logrus.FieldLogger) *Trail {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Trail{
		counts:  make(map[Kind]int),
		samples: make(map[Kind][]Entry),
		log:     log,
	}
}

// Record adds an entry.
func (t *Trail) Record(e Entry) {
	t.mu.Lock()
	t.counts[e.Kind]++
	if len(t.samples[e.Kind]) < SampleLimit {
		t.samples[e.Kind] = append(t.samples[e.Kind], e)
	}
	t.mu.Unlock()

	entry := t.log.WithFields(logrus.Fields{
		"kind":  string(e.Kind),
		"split": e.Split,
		"row":   e.Row,
		"field": e.Field,
	})
	if e.Kind == StockFiltered || e.Kind == ReferenceLookupMiss {
		entry.Debug(e.Message)
		return
	}
	entry.Warn(e.Message)
}

// Count returns the number of entries recorded for a kind.
func (t *Trail) Count(kind Kind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[kind]
}

// Total returns the number of entries across every kind.
func (t *Trail) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.counts {
		n += c
	}
	return n
}

// Entries returns the retained samples of a kind.
func (t *Trail) Entries(kind Kind) []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Entry(nil), t.samples[kind]...)
}

// Counts returns a copy of the per-kind counters.
func (t *Trail) Counts() map[Kind]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[Kind]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// =============================================================================
// REPORTING
// =============================================================================

// Summary formats the counters, one kind per line, sorted by kind.
func (t *Trail) Summary() string {
	counts := t.Counts()
	if len(counts) == 0 {
		return "No audit entries."
	}

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	var b strings.Builder
	fmt.Fprintf(&b, "Audit entries: %d\n", t.Total())
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %-28s %d\n", k, counts[Kind(k)])
	}
	return b.String()
}

// WriteLog writes the summary and every retained sample to filePath.
//
// RETURNS:
//   - An error if the file cannot be created or written.
func (t *Trail) WriteLog(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "Catalog Converter - Audit Log\nGenerated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	w.WriteString("================================================================================\n\n")
	w.WriteString(t.Summary())
	w.WriteString("\n")

	counts := t.Counts()
	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)

	for _, k := range kinds {
		entries := t.Entries(Kind(k))
		fmt.Fprintf(w, "%s (showing %d of %d)\n", k, len(entries), counts[Kind(k)])
		w.WriteString("--------------------------------------------------------------------------------\n")
		for _, e := range entries {
			w.WriteString("  " + e.String() + "\n")
		}
		w.WriteString("\n")
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush audit log: %w", err)
	}
	return nil
}
