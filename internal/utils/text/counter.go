// Package text holds rune-aware helpers for user-visible strings.
// Webhook APIs limit message sizes in characters, not bytes, and company
// updates may contain non-ASCII text.
package text

// CountRunes returns the number of characters in s.
func CountRunes(s string) int {
	return len([]rune(s))
}

// Truncate shortens s to at most max characters, replacing the tail with
// suffix. It never splits a multi-byte character. When suffix alone exceeds
// max, suffix is returned.
func Truncate(s string, max int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := max - CountRunes(suffix)
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + suffix
}
