// Package shell tokenizes interpreter input.
//
// A line is split on the background token into command segments, and each
// segment is split on whitespace into an argument vector:
//
//	line     = segment { "&" segment } [ "&" ]
//	segment  = word { blank word }
//
// There is no quoting, escaping, redirection or variable expansion. The pipe
// token is only recognized at the start of a line so it can be rejected.
//
// The same "&" acts both as a segment separator and as the background marker,
// and the marker is read from the last byte of the whole line, so every
// segment on a line shares one background flag.
package shell

const (
	// BackgroundToken separates segments and, at the end of a line, requests
	// background execution.
	BackgroundToken = '&'

	// PipeToken is recognized only to be rejected at the start of a line.
	PipeToken = '|'

	// SegmentDelimiters splits a line into command segments.
	SegmentDelimiters = "&"

	// ArgumentDelimiters splits a command segment into an argument vector.
	ArgumentDelimiters = " \t"

	// ExitKeyword terminates the interpreter when it is an entire segment.
	ExitKeyword = "exit"

	// ChangeDirectoryKeyword names the directory change builtin.
	ChangeDirectoryKeyword = "cd"
)

// Default limits, matching the interpreter's historic fixed buffers.
const (
	DefaultMaxLineLength = 256
	DefaultMaxSegments   = 16
	DefaultMaxArguments  = 64
)

// Limits bounds the size of a parsed line.
type Limits struct {
	// MaxLineLength is the size of the read buffer, a line keeps at most
	// MaxLineLength-1 bytes.
	MaxLineLength int
	// MaxSegments is the maximum number of command segments in a line.
	MaxSegments int
	// MaxArguments is the maximum number of words in a single segment.
	MaxArguments int
}

// DefaultLimits returns the historic limits.
func DefaultLimits() Limits {
	return Limits{
		MaxLineLength: DefaultMaxLineLength,
		MaxSegments:   DefaultMaxSegments,
		MaxArguments:  DefaultMaxArguments,
	}
}
