// Package variant assigns display colors to sibling variants that arrive
// without one.
//
// Rows sharing a parent key (see transform.SKUToParent) form a group. A row
// that already carries a color keeps it. Otherwise a lone row becomes
// "One Color" and rows of a larger group are numbered "Color 1", "Color 2",
// ... in input order. Numbering is only consumed by rows that needed it.
package variant

import (
	"fmt"

	"github.com/ginjaninja78/catalog-converter/internal/transform"
)

const (
	// ThemeColor is the variation theme written for generated colors.
	ThemeColor = "Color"

	// SingleColor is the color given to a product with no siblings.
	SingleColor = "One Color"
)

// Item is the input for one row.
type Item struct {
	SKU   string
	Color string
	Theme string
}

// Assignment is the output for one row.
type Assignment struct {
	ParentKey string
	Color     string
	Theme     string

	// Generated is true when Color was produced here rather than carried over.
	Generated bool
}

// GroupState tracks per-parent counters for one Assign call.
type GroupState struct {
	totals   map[string]int
	assigned map[string]int
}

func newGroupState() *GroupState {
	return &GroupState{
		totals:   make(map[string]int),
		assigned: make(map[string]int),
	}
}

// Total is the number of rows seen for a parent key.
func (s *GroupState) Total(parent string) int { return s.totals[parent] }

// Assigned is how many generated colors were handed out for a parent key.
func (s *GroupState) Assigned(parent string) int { return s.assigned[parent] }

// Assigner runs the two-pass assignment. The zero value is ready to use.
type Assigner struct{}

// Assign returns one assignment per item, in order, along with the state the
// run ended with. State never carries across calls.
func (Assigner) Assign(items []Item) ([]Assignment, *GroupState) {
	state := newGroupState()
	parents := make([]string, len(items))

	for i, it := range items {
		parents[i] = transform.SKUToParent(it.SKU)
		state.totals[parents[i]]++
	}

	out := make([]Assignment, len(items))
	for i, it := range items {
		parent := parents[i]
		a := Assignment{ParentKey: parent, Theme: ThemeColor}

		switch {
		case transform.TrimText(it.Color) != "":
			a.Color = transform.TrimText(it.Color)
			if theme := transform.TrimText(it.Theme); theme != "" {
				a.Theme = theme
			}
		case state.totals[parent] == 1:
			a.Color = SingleColor
			a.Generated = true
		default:
			state.assigned[parent]++
			a.Color = fmt.Sprintf("Color %d", state.assigned[parent])
			a.Generated = true
		}

		out[i] = a
	}

	return out, state
}
