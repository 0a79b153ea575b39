// =============================================================================
// Catalog Converter - Category Rule Engine
// =============================================================================
//
// This package decides the marketplace category code for a product using an
// ordered list of keyword rules. The first rule whose predicate holds wins;
// products that match nothing receive the default code.
//
// RULE SHAPE:
//   A rule carries one or more keyword groups. Every group must have at least
//   one keyword contained in the lower-cased product name:
//
//     all_of:
//       - [women, female, ladies, woman]   # group 1
//       - [belt, waistband, strap]         # group 2
//
//   Optional aux groups are evaluated the same way against the auxiliary
//   text (image URLs or descriptions) passed alongside the name.
//
// Matching is substring-based, so "cat" also matches "catalog". The default
// list is tuned around that behavior; reorder with care.
//
// =============================================================================

package category

import (
	"fmt"
	"strings"
)

// DefaultCode is assigned when no rule matches.
const DefaultCode = "29153"

// DefaultDescription describes DefaultCode.
const DefaultDescription = "Unknown"

// Rule is one immutable category predicate.
type Rule struct {
	Code        string     `yaml:"code" validate:"required"`
	Description string     `yaml:"description"`
	AllOf       [][]string `yaml:"all_of" validate:"required,min=1,dive,min=1"`
	AuxAllOf    [][]string `yaml:"aux_all_of,omitempty"`
}

// Info is the code/description pair reported to callers.
type Info struct {
	Code        string
	Description string
}

// Engine evaluates rules in order. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	rules       []Rule
	defaultInfo Info
	index       map[string]Info
}

// NewEngine builds an engine over a copy of rules.
//
// RETURNS:
//   - The engine.
//   - An error if a rule has no code or no keyword groups, or a code repeats.
func NewEngine(rules []Rule, defaultCode, defaultDescription string) (*Engine, error) {
	if defaultCode == "" {
		defaultCode = DefaultCode
		defaultDescription = DefaultDescription
	}

	e := &Engine{
		rules:       make([]Rule, 0, len(rules)),
		defaultInfo: Info{Code: defaultCode, Description: defaultDescription},
		index:       make(map[string]Info, len(rules)+1),
	}

	for i, r := range rules {
		if r.Code == "" {
			return nil, fmt.Errorf("rule %d: missing category code", i+1)
		}
		if len(r.AllOf) == 0 {
			return nil, fmt.Errorf("rule %s: no keyword groups", r.Code)
		}
		if _, dup := e.index[r.Code]; dup {
			return nil, fmt.Errorf("rule %s: duplicate category code", r.Code)
		}
		e.rules = append(e.rules, normalizeRule(r))
		e.index[r.Code] = Info{Code: r.Code, Description: r.Description}
	}

	if _, ok := e.index[defaultCode]; !ok {
		e.index[defaultCode] = e.defaultInfo
	}

	return e, nil
}

// Default returns an engine over DefaultRules.
func Default() *Engine {
	e, err := NewEngine(DefaultRules(), DefaultCode, DefaultDescription)
	if err != nil {
		panic(err)
	}
	return e
}

// DetermineCategory returns the code of the first rule matching the product
// name (and aux text, for rules that look at it), or the default code.
func (e *Engine) DetermineCategory(name, aux string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return e.defaultInfo.Code
	}
	aux = strings.ToLower(aux)

	for _, r := range e.rules {
		if matchesAll(name, r.AllOf) && matchesAll(aux, r.AuxAllOf) {
			return r.Code
		}
	}
	return e.defaultInfo.Code
}

// CategoryInfo looks up the description for a code.
func (e *Engine) CategoryInfo(code string) (Info, bool) {
	info, ok := e.index[code]
	return info, ok
}

// AllCategories lists every rule in evaluation order followed by the default.
func (e *Engine) AllCategories() []Info {
	out := make([]Info, 0, len(e.rules)+1)
	for _, r := range e.rules {
		out = append(out, Info{Code: r.Code, Description: r.Description})
	}
	if _, isRule := e.ruleCode(e.defaultInfo.Code); !isRule {
		out = append(out, e.defaultInfo)
	}
	return out
}

// DefaultCode returns the fallback code of this engine.
func (e *Engine) DefaultCode() string {
	return e.defaultInfo.Code
}

func (e *Engine) ruleCode(code string) (Rule, bool) {
	for _, r := range e.rules {
		if r.Code == code {
			return r, true
		}
	}
	return Rule{}, false
}

// matchesAll reports whether every group has a keyword contained in text.
// No groups means no constraint.
func matchesAll(text string, groups [][]string) bool {
	for _, group := range groups {
		if !containsAny(text, group) {
			return false
		}
	}
	return true
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// normalizeRule lower-cases keywords and copies the groups so callers can
// not mutate the engine through the slice they passed in.
func normalizeRule(r Rule) Rule {
	return Rule{
		Code:        r.Code,
		Description: r.Description,
		AllOf:       lowerGroups(r.AllOf),
		AuxAllOf:    lowerGroups(r.AuxAllOf),
	}
}

func lowerGroups(groups [][]string) [][]string {
	if len(groups) == 0 {
		return nil
	}
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = make([]string, len(g))
		for j, w := range g {
			out[i][j] = strings.ToLower(strings.TrimSpace(w))
		}
	}
	return out
}
