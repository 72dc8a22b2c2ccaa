// Package classify maps free-text spreadsheet values onto small fixed
// taxonomies.
//
// Each classifier is a total function: any input, including empty or
// whitespace-only strings, maps to exactly one label in the classifier's
// declared taxonomy, defaulting to the fallback label. Classifiers are
// process-wide constants built at init and never mutated afterwards, so
// they are safe for concurrent use.
//
// Rule order is a correctness invariant, not an implementation detail.
// Rules are evaluated in declaration order and the first match wins;
// reordering changes output (e.g. track markers must be tested before the
// application-admission exact match, or bracketed values are misfiled).
package classify

import (
	"regexp"
	"strings"
)

// FallbackLabel is the label returned when no rule matches.
// All three taxonomies share the same fallback.
const FallbackLabel = "其他"

// Rule pairs a taxonomy label with the patterns that select it.
// A value matches the rule if any pattern matches.
type Rule struct {
	Label    string
	Patterns []*regexp.Regexp
}

// Labeler is the shared shape of all classifiers.
type Labeler interface {
	// Name identifies the classifier ("admission", "school", "region").
	Name() string

	// Classify maps a raw value to a taxonomy label. Total: never fails,
	// unmatched or blank input yields the fallback label.
	Classify(raw string) string

	// Taxonomy returns the declared label order, fallback last. Aggregation
	// output follows this order, never alphabetical order.
	Taxonomy() []string
}

// ruleClassifier evaluates an ordered rule list with first-match-wins.
type ruleClassifier struct {
	name     string
	rules    []Rule
	taxonomy []string
}

func newRuleClassifier(name string, taxonomy []string, rules []Rule) *ruleClassifier {
	return &ruleClassifier{name: name, rules: rules, taxonomy: taxonomy}
}

func (c *ruleClassifier) Name() string { return c.name }

func (c *ruleClassifier) Classify(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return FallbackLabel
	}
	for _, rule := range c.rules {
		for _, p := range rule.Patterns {
			if p.MatchString(v) {
				return rule.Label
			}
		}
	}
	return FallbackLabel
}

func (c *ruleClassifier) Taxonomy() []string {
	out := make([]string, len(c.taxonomy))
	copy(out, c.taxonomy)
	return out
}

// patterns compiles a pattern list, panicking on malformed expressions.
// Called only from init with literal patterns.
func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Lookup returns a classifier by name.
func Lookup(name string) (Labeler, bool) {
	switch name {
	case "admission":
		return Admission, true
	case "school":
		return SchoolType, true
	case "region":
		return Region, true
	default:
		return nil, false
	}
}
