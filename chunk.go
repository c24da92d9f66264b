package slack

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"
)

// Chunks yields successive pieces of text that are at most limit characters (runes) long. Each
// piece ends just after the last newline inside its window or, when the window has no newline,
// exactly at the limit-character boundary. Joining the pieces reproduces text. A limit of zero or
// less yields text as a single piece.
func Chunks(text string, limit int) iter.Seq[string] {

	return func(yield func(string) bool) {

		if limit <= 0 || utf8.RuneCountInString(text) <= limit {
			yield(text)
			return
		}

		remaining := text

		for remaining != "" {

			if utf8.RuneCountInString(remaining) <= limit {
				yield(remaining)
				return
			}

			// Byte offset of the first rune past the window
			window := 0

			for i := 0; i < limit; i++ {
				_, sz := utf8.DecodeRuneInString(remaining[window:])
				window += sz
			}

			cut := window

			if idx := strings.LastIndexByte(remaining[:window], '\n'); idx != -1 {
				cut = idx + 1
			}

			if !yield(remaining[:cut]) {
				return
			}

			remaining = remaining[cut:]
		}
	}
}

// SplitText returns all the pieces produced by Chunks.
func SplitText(text string, limit int) []string {
	return slices.Collect(Chunks(text, limit))
}
