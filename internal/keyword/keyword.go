// Package keyword implements ordered substring rule matching.
package keyword

import "strings"

// Rule binds a set of trigger substrings to a result. Triggers must be lowercase.
type Rule[T any] struct {
	Triggers []string
	Result   T
}

// Matches reports whether any trigger occurs in the already-lowercased text.
func (r Rule[T]) Matches(lower string) bool {
	for _, t := range r.Triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}

	return false
}

// First returns the result of the first rule whose triggers occur in text,
// or fallback when none do. Matching is case-insensitive.
func First[T any](text string, rules []Rule[T], fallback T) T {
	lower := strings.ToLower(text)

	for _, r := range rules {
		if r.Matches(lower) {
			return r.Result
		}
	}

	return fallback
}
