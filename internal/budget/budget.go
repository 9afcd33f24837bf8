// Package budget bounds text handed to the language model.
package budget

import "unicode/utf8"

// Truncate keeps the first max characters of s. Truncation is silent.
// A non-positive max returns s unchanged.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
