// Package slug derives URL-safe identifiers from display names.
package slug

import "strings"

// Make lowercases the name, replaces every run of non-alphanumeric
// characters with a single hyphen and trims leading/trailing hyphens.
// It is idempotent: Make(Make(x)) == Make(x). An empty or
// all-symbol name yields the empty slug; callers reject those names.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
