package core

import "strings"

// MaxTokenLen bounds every token comparison. Two tokens that agree on the
// first MaxTokenLen characters are considered equal.
const MaxTokenLen = 32

// TokenNotFound is returned by Grammar.Validate when no entry matches.
const TokenNotFound = -1

// Grammar is the ordered set of legal strings for one argument slot.
// Grammars are compiled in and never mutated.
type Grammar []string

// Validate scans the grammar in order and returns the index of the first
// entry the candidate matches, or TokenNotFound. Matching is
// case-insensitive over the bounded comparison length, so neither operand
// can prefix-match the other.
func (g Grammar) Validate(candidate string) int {
	if candidate == "" {
		return TokenNotFound
	}
	for i, tok := range g {
		if tokenEqual(tok, candidate) {
			return i
		}
	}
	return TokenNotFound
}

// compareLen returns the bounded comparison length for two tokens: the
// longer of the two lengths, capped at MaxTokenLen.
func compareLen(a, b string) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n > MaxTokenLen {
		n = MaxTokenLen
	}
	return n
}

// tokenEqual reports whether a and b match case-insensitively over the
// bounded comparison length. Comparing over the longer length means a
// candidate with trailing garbage never matches a shorter known token.
func tokenEqual(a, b string) bool {
	n := compareLen(a, b)
	if len(a) < n || len(b) < n {
		return false
	}
	return strings.EqualFold(a[:n], b[:n])
}

// matchesPrefix reports whether verb matches name over the first len(name)
// characters, case-insensitively. This is the command table match rule: a
// longer verb still hits a shorter name, and declaration order breaks ties.
func matchesPrefix(name, verb string) bool {
	if name == "" || len(verb) < len(name) {
		return false
	}
	return strings.EqualFold(verb[:len(name)], name)
}
