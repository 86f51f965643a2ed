package shell

import "strings"

// Kind says how the interpreter dispatches a command segment.
type Kind int

const (
	// KindExternal segments are run as programs.
	KindExternal Kind = iota
	// KindExit segments stop the interpreter.
	KindExit
	// KindChangeDirectory segments change the working directory.
	KindChangeDirectory
)

func (k Kind) String() string {
	switch k {
	case KindExit:
		return "exit"
	case KindChangeDirectory:
		return "cd"
	default:
		return "external"
	}
}

// firstWordEnd returns the index just past the first word of segment.
func firstWordEnd(segment string) int {
	start := 0
	for start < len(segment) && isSpace(segment[start]) {
		start++
	}
	end := start
	for end < len(segment) && !isSpace(segment[end]) {
		end++
	}
	return end
}

// CommandName returns the first whitespace delimited word of segment.
func CommandName(segment string) string {
	return strings.TrimLeft(segment[:firstWordEnd(segment)], " \t\n\v\f\r")
}

// CommandArguments returns everything after the first word of segment with
// the leading whitespace removed. The result shares storage with segment.
func CommandArguments(segment string) string {
	rest := segment[firstWordEnd(segment):]
	i := 0
	for i < len(rest) && isSpace(rest[i]) {
		i++
	}
	return rest[i:]
}

// IsExit reports whether segment is exactly the exit keyword.
func IsExit(segment string) bool {
	return segment == ExitKeyword
}

// IsChangeDirectory reports whether segment invokes the cd builtin.
func IsChangeDirectory(segment string) bool {
	return CommandName(segment) == ChangeDirectoryKeyword
}

// Classify determines how segment is dispatched. Exit takes priority, so a
// segment of "exit" is never treated as a program lookup.
func Classify(segment string) Kind {
	switch {
	case IsExit(segment):
		return KindExit
	case IsChangeDirectory(segment):
		return KindChangeDirectory
	default:
		return KindExternal
	}
}
