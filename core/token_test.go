package core

import (
	"strings"
	"testing"
)

func TestGrammarValidate(t *testing.T) {
	cases := []struct {
		candidate string
		want      int
	}{
		{"get", 0},
		{"set", 1},
		{"clear", 2},
		{"config", 3},
		{"GET", 0},
		{"Clear", 2},
		{"", TokenNotFound},
		{"bogus", TokenNotFound},
		{"getx", TokenNotFound},
		{"ge", TokenNotFound},
		{"configs", TokenNotFound},
	}

	for _, tc := range cases {
		if got := gpioActions.Validate(tc.candidate); got != tc.want {
			t.Errorf("Validate(%q) = %d, want %d", tc.candidate, got, tc.want)
		}
	}
}

func TestGrammarValidateFirstMatchWins(t *testing.T) {
	g := Grammar{"input", "output"}
	if got := g.Validate("OUTPUT"); got != 1 {
		t.Errorf("Validate(OUTPUT) = %d, want 1", got)
	}
	if got := g.Validate("input"); got != 0 {
		t.Errorf("Validate(input) = %d, want 0", got)
	}
}

func TestGrammarValidateLengthCap(t *testing.T) {
	long := strings.Repeat("a", MaxTokenLen)
	g := Grammar{long + "x"}

	// The comparison length caps at MaxTokenLen, so tokens differing
	// only past the cap compare equal.
	if got := g.Validate(long + "y"); got != 0 {
		t.Errorf("Validate past the length cap = %d, want 0", got)
	}
}

func TestMatchesPrefix(t *testing.T) {
	cases := []struct {
		name, verb string
		want       bool
	}{
		{"get", "get", true},
		{"get", "getx", true},
		{"get", "GET", true},
		{"get", "ge", false},
		{"get", "", false},
		{"", "anything", false},
		{"help", "hel", false},
	}

	for _, tc := range cases {
		if got := matchesPrefix(tc.name, tc.verb); got != tc.want {
			t.Errorf("matchesPrefix(%q, %q) = %v, want %v", tc.name, tc.verb, got, tc.want)
		}
	}
}
