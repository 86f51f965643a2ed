package ttylog

// FD identifies the stream an IO event happened on.
type FD int

const (
	FDStdin  FD = 0
	FDStdout FD = 1
	FDStderr FD = 2
)

// TTYLogEntry is a single recorded terminal event, exactly one of IO and
// Close is set.
type TTYLogEntry struct {
	TimestampMicros int64
	IO              *IO
	Close           *Close
}

// IO is data read from or written to a stream.
type IO struct {
	Fd   FD
	Data []byte
}

// Close marks the end of a session.
type Close struct{}
