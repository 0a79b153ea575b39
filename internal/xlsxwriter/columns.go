package xlsxwriter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousColumn is returned in strict mode when a field name is a
// substring of more than one template label and matches none exactly.
var ErrAmbiguousColumn = errors.New("ambiguous template column")

// ColumnMap binds destination field names to 0-based template column indexes,
// in column order.
type ColumnMap map[string][]int

// ResolveColumns matches field names against a template label row.
//
// MATCHING:
//   - Every label equal to the field binds it (several "Quantity" columns
//     all receive the quantity).
//   - Otherwise the first label containing the field binds it. In strict
//     mode a second containing label is an error instead.
//   - A field matching no label is returned in missing.
//
// Matching is case-sensitive on trimmed labels.
func ResolveColumns(labels, fields []string, strict bool) (ColumnMap, []string, error) {
	columns := make(ColumnMap, len(fields))
	var missing []string

	for _, field := range fields {
		if _, done := columns[field]; done || field == "" {
			continue
		}

		var exact, partial []int
		for i, label := range labels {
			label = strings.TrimSpace(label)
			switch {
			case label == "":
			case label == field:
				exact = append(exact, i)
			case strings.Contains(label, field):
				partial = append(partial, i)
			}
		}

		switch {
		case len(exact) > 0:
			columns[field] = exact
		case len(partial) == 0:
			missing = append(missing, field)
		case strict && len(partial) > 1:
			return nil, nil, fmt.Errorf("%w: %q matches %q and %q",
				ErrAmbiguousColumn, field, labels[partial[0]], labels[partial[1]])
		default:
			columns[field] = partial[:1]
		}
	}

	return columns, missing, nil
}
