// Package tokens provides a cheap token-count approximation used for
// chunk-size budgeting. It deliberately avoids a real tokenizer: the
// budget only needs to be roughly right, and the estimate must stay
// deterministic and dependency-free.
package tokens

import "unicode/utf8"

// charsPerToken is the average characters-per-token ratio of common
// BPE vocabularies on English prose.
const charsPerToken = 4

// Estimate returns a non-negative token count estimate for text.
// The empty string estimates to zero.
func Estimate(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + charsPerToken - 1) / charsPerToken
}
