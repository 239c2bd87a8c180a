// Package shell implements the interactive command loop: it reads lines
// from a session stream, splits them into command tokens and data
// arguments, and hands them to the dispatcher.
package shell

import (
	"errors"
	"strings"
)

// Input limits, sized for interactive serial use.
const (
	MaxLineLen    = 1024
	MaxCmdTokens  = 10
	MaxDataTokens = 8
)

// Split errors, reported to the caller as a failed transaction.
var (
	ErrLineTooLong   = errors.New("line too long")
	ErrTooManyTokens = errors.New("too many command tokens")
	ErrTooManyData   = errors.New("too many data arguments")
)

// Split breaks one input line into command tokens and data arguments.
// Fields separate on whitespace and commas. The first field that looks
// numeric switches the rest of the line to data arguments, as does an
// opening parenthesis immediately after a command token; a closing
// parenthesis is dropped. So "dac write 0 100" and "dac write(0, 100)"
// produce the same result.
func Split(line string) (cmd, data []string, err error) {
	if len(line) > MaxLineLen {
		return nil, nil, ErrLineTooLong
	}

	var field strings.Builder
	inData := false

	flush := func() error {
		if field.Len() == 0 {
			return nil
		}
		tok := field.String()
		field.Reset()
		if !inData && looksNumeric(tok) {
			inData = true
		}
		if inData {
			if len(data) == MaxDataTokens {
				return ErrTooManyData
			}
			data = append(data, tok)
			return nil
		}
		if len(cmd) == MaxCmdTokens {
			return ErrTooManyTokens
		}
		cmd = append(cmd, tok)
		return nil
	}

	for _, c := range line {
		switch c {
		case ' ', '\t', ',', ')':
			if err := flush(); err != nil {
				return nil, nil, err
			}
		case '(':
			if err := flush(); err != nil {
				return nil, nil, err
			}
			inData = true
		default:
			field.WriteRune(c)
		}
	}
	if err := flush(); err != nil {
		return nil, nil, err
	}
	return cmd, data, nil
}

// looksNumeric reports whether a field reads as a numeric literal. Hex
// literals start with a digit so base prefixes need no special case.
func looksNumeric(tok string) bool {
	switch tok[0] {
	case '+', '-', '.':
		return true
	}
	return tok[0] >= '0' && tok[0] <= '9'
}
