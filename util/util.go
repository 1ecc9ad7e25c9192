package util

import "strings"

// MakeTextList joins items into an oxford-comma list ending in conj (e.g.
// "and" for "a, b, and c", "or" for "a, b, or c").
func MakeTextList(items []string, conj string) string {
	if len(items) < 1 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	} else if len(items) == 2 {
		return items[0] + " " + conj + " " + items[1]
	}

	// more than two, use an oxford comma
	out := make([]string, len(items))
	copy(out, items)
	out[len(out)-1] = conj + " " + out[len(out)-1]
	return strings.Join(out, ", ")
}
