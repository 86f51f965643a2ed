package shell

// isSpace reports whether b is ASCII whitespace in the C locale sense.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// Trim strips leading and trailing whitespace from buf in place. The
// surviving bytes are moved to the front of buf and the new length is
// returned, callers should use buf[:n] afterwards.
//
// An empty or all-whitespace buffer yields 0.
func Trim(buf []byte) int {
	start := 0
	for start < len(buf) && isSpace(buf[start]) {
		start++
	}
	if start == len(buf) {
		return 0
	}

	end := len(buf)
	for end > start && isSpace(buf[end-1]) {
		end--
	}

	return copy(buf, buf[start:end])
}

// TrimString returns s without leading and trailing whitespace.
func TrimString(s string) string {
	buf := []byte(s)
	return string(buf[:Trim(buf)])
}
