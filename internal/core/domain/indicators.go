package domain

import (
	"sort"
	"strings"
)

// hoaxIndicators is the canonical set of labels that count as a negative
// finding. It must contain the negative name of every LabelSet, lowercased.
var hoaxIndicators = map[string]struct{}{
	"hoax":           {},
	"fake":           {},
	"fake/generated": {},
	"generated":      {},
	"manipulated":    {},
}

// HoaxIndicators returns the indicator set, sorted.
func HoaxIndicators() []string {
	out := make([]string, 0, len(hoaxIndicators))
	for k := range hoaxIndicators {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsHoaxIndicator reports whether label is in the indicator set.
// Matching is case-insensitive on the whole trimmed label, not a substring test.
func IsHoaxIndicator(label string) bool {
	_, ok := hoaxIndicators[strings.ToLower(strings.TrimSpace(label))]
	return ok
}

// IsNegativeFinding reports whether an evidence item counts towards a hoax verdict.
// Failed items never do: "could not analyse" is not "detected fake".
func IsNegativeFinding(item EvidenceItem) bool {
	if item.Failed() {
		return false
	}
	return IsHoaxIndicator(item.Result.Label)
}
