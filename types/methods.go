package types

import (
	"strings"
)

// Window
// Returns the `size` tokens starting at `start` and the token that follows
// them. ok is false when the window or its target would run past the end.
func (tokens Tokens) Window(start, size int) (context Tokens, target Token,
	ok bool) {
	if start < 0 || size < 1 || start+size >= len(tokens) {
		return nil, "", false
	}
	return tokens[start : start+size], tokens[start+size], true
}

// NumWindows
// Returns how many windows of `size` have a following target token.
func (tokens Tokens) NumWindows(size int) int {
	if size < 1 || len(tokens) <= size {
		return 0
	}
	return len(tokens) - size
}

// String joins the tokens with single spaces.
func (tokens Tokens) String() string {
	return strings.Join(tokens, " ")
}

// Counts
// Returns the frequency of every distinct token along with the distinct
// tokens in the order they were first seen.
func (tokens Tokens) Counts() (counts map[Token]int, order Tokens) {
	counts = make(map[Token]int, len(tokens)/2)
	order = make(Tokens, 0, len(tokens)/2)
	for _, token := range tokens {
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}
	return counts, order
}
