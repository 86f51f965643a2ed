package shell

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTooManyTokens is returned when a buffer splits into more tokens than
// the caller allows.
var ErrTooManyTokens = errors.New("too many tokens")

// Argv is an argument vector, element 0 is the program name.
type Argv []string

// String joins the vector with single spaces.
func (a Argv) String() string {
	return strings.Join(a, " ")
}

// Tokenize splits buf on any of the bytes in delims, trims every candidate
// and keeps the ones that are not empty. Each token is a fresh copy and
// shares no memory with buf.
//
// If more than max tokens survive, Tokenize returns an error wrapping
// ErrTooManyTokens and no tokens. A max of zero or less is unbounded.
func Tokenize(buf string, delims string, max int) ([]string, error) {
	var out []string

	for _, candidate := range strings.FieldsFunc(buf, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	}) {
		scratch := []byte(candidate)
		token := scratch[:Trim(scratch)]
		if len(token) == 0 || string(token) == " " {
			continue
		}

		if max > 0 && len(out) == max {
			return nil, fmt.Errorf("%w: limit is %d", ErrTooManyTokens, max)
		}
		out = append(out, string(token))
	}

	return out, nil
}

// SplitArguments tokenizes a single command segment into an argument vector.
func SplitArguments(segment string, max int) (Argv, error) {
	args, err := Tokenize(segment, ArgumentDelimiters, max)
	if err != nil {
		return nil, err
	}
	return Argv(args), nil
}
