package shell

import (
	"fmt"
)

// SyntaxError is reported for a line that starts with a control token.
type SyntaxError struct {
	Token byte
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error near unexpected token `%c'", e.Token)
}

// Line is one parsed line of input.
type Line struct {
	// Text is the truncated and trimmed input.
	Text string
	// Background is true if the trimmed input ends with the background token.
	// It applies to every segment of the line.
	Background bool
	// Segments holds the trimmed, non-empty commands in execution order.
	Segments []string
}

// Empty is true if the line had nothing but whitespace.
func (l *Line) Empty() bool {
	return len(l.Text) == 0
}

// Truncate limits raw to what a read buffer of size bufSize holds, one byte
// is reserved for the terminator. A bufSize of zero or less disables the
// limit.
func Truncate(raw string, bufSize int) string {
	if bufSize > 0 && len(raw) > bufSize-1 {
		return raw[:bufSize-1]
	}
	return raw
}

// HasBackgroundFlag reports whether the trimmed line ends with the
// background token.
func HasBackgroundFlag(trimmed string) bool {
	return len(trimmed) > 0 && trimmed[len(trimmed)-1] == BackgroundToken
}

// Validate rejects lines that begin with a control token.
func Validate(trimmed string) error {
	if len(trimmed) == 0 {
		return nil
	}
	switch first := trimmed[0]; first {
	case BackgroundToken, PipeToken:
		return &SyntaxError{Token: first}
	}
	return nil
}

// ParseLine reads one raw line of input into segments.
//
// An empty or whitespace-only line returns an empty Line and no error. A
// *SyntaxError is returned for a leading "&" or "|", and an error wrapping
// ErrTooManyTokens if the line holds more than limits.MaxSegments commands.
func ParseLine(raw string, limits Limits) (*Line, error) {
	text := TrimString(Truncate(raw, limits.MaxLineLength))
	line := &Line{
		Text:       text,
		Background: HasBackgroundFlag(text),
	}

	if line.Empty() {
		return line, nil
	}

	if err := Validate(text); err != nil {
		return nil, err
	}

	segments, err := Tokenize(text, SegmentDelimiters, limits.MaxSegments)
	if err != nil {
		return nil, fmt.Errorf("commands: %w", err)
	}
	line.Segments = segments

	return line, nil
}
