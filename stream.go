package gemini

import (
	"iter"
	"strings"
)

// Tokens returns a single-pass sequence over the whitespace-delimited words of text,
// each with one trailing space. Once a range over it has started, later ranges yield nothing.
// Stopping early is fine; nothing needs to be released.
func Tokens(text string) iter.Seq[string] {
	words := strings.Fields(text)
	consumed := false
	return func(yield func(string) bool) {
		if consumed {
			return
		}
		consumed = true
		for _, w := range words {
			if !yield(w + " ") {
				return
			}
		}
	}
}
