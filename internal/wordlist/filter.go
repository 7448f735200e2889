package wordlist

import "unicode"

// FilterFunc returns true when a snippet should be kept.
type FilterFunc func(string) bool

// Typeable keeps snippets made only of printable runes and plain spaces,
// so every character can be entered in a single-line input field.
func Typeable(snippet string) bool {
	if snippet == "" {
		return false
	}
	for _, r := range snippet {
		if r == ' ' {
			continue
		}
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// MaxLength returns a filter that also rejects snippets longer than n runes.
func MaxLength(n int) FilterFunc {
	return func(snippet string) bool {
		return Typeable(snippet) && len([]rune(snippet)) <= n
	}
}
