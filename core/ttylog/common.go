package ttylog

import (
	"io"
	"log"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/josephlewis42/ampsh/core/vos"
)

var (
	crlf = regexp.MustCompile(`\r?\n`)
)

// LogSink receives log events.
type LogSink func(t *TTYLogEntry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It reutrns io.EOF if the source
	// has no more log entries.
	Next() (*TTYLogEntry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(logEntry *TTYLogEntry) error {
		once.Do(func() {
			prevTimeMicros = logEntry.TimestampMicros
		})

		delta := logEntry.TimestampMicros - prevTimeMicros
		prevTimeMicros = logEntry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(logEntry)
	}
}

// NewCRLFAdapter rewrites bare newlines as CRLF. Output written by programs
// to a terminal in cooked mode relies on the tty to do this, so playback in a
// raw terminal would otherwise creep across the screen.
func NewCRLFAdapter(next LogSink) LogSink {
	return func(logEntry *TTYLogEntry) error {
		if logEntry.IO != nil {
			logEntry.IO.Data = crlf.ReplaceAll(logEntry.IO.Data, []byte("\r\n"))
		}

		return next(logEntry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(logEntry *TTYLogEntry) error {
		if event := logEntry.IO; event != nil && event.Fd != FDStdin {
			if _, err := w.Write(event.Data); err != nil {
				return err
			}
		}
		return nil
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) (err error) {
	for {
		logEntry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(logEntry); err != nil {
			return err
		}
	}
}

// Recorder tees a session's streams into a LogSink.
type Recorder struct {
	*vos.VIOAdapter
	mutex  sync.Mutex
	output LogSink
	now    func() time.Time
}

func (r *Recorder) emit(entry *TTYLogEntry) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.output(entry); err != nil {
		log.Print(err)
	}
}

func (r *Recorder) recordIO(mockFd FD, data []byte, dest func([]byte) (int, error)) (int, error) {
	eventTime := r.now()
	amount, err := dest(data)
	if amount > 0 {
		// Copy, callers are free to reuse the buffer.
		recorded := make([]byte, amount)
		copy(recorded, data[:amount])
		r.emit(&TTYLogEntry{
			TimestampMicros: eventTime.UnixMicro(),
			IO: &IO{
				Fd:   mockFd,
				Data: recorded,
			},
		})
	}
	return amount, err
}

// Close records the end of the session, the wrapped streams are left open.
func (r *Recorder) Close() error {
	r.emit(&TTYLogEntry{
		TimestampMicros: r.now().UnixMicro(),
		Close:           &Close{},
	})
	return nil
}

var _ vos.VIO = (*Recorder)(nil)

type recorderReadCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.ReadCloser
}

var _ io.ReadCloser = (*recorderReadCloser)(nil)
var _ vos.Filer = (*recorderReadCloser)(nil)

func (rc *recorderReadCloser) Read(p []byte) (int, error) {
	return rc.r.recordIO(rc.mockFd, p, rc.wrapped.Read)
}

func (rc *recorderReadCloser) Close() error {
	return rc.wrapped.Close()
}

// File exposes the underlying file so child processes can read it directly,
// their input isn't recorded.
func (rc *recorderReadCloser) File() *os.File {
	return vos.File(rc.wrapped)
}

type recorderWriteCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.WriteCloser
}

var _ io.WriteCloser = (*recorderWriteCloser)(nil)

func (rc *recorderWriteCloser) Write(p []byte) (int, error) {
	return rc.r.recordIO(rc.mockFd, p, rc.wrapped.Write)
}

func (rc *recorderWriteCloser) Close() error {
	return rc.wrapped.Close()
}

// NewRecorder creates a logger that forwards all events to output.
func NewRecorder(toWrap vos.VIO, output LogSink) *Recorder {
	recorder := &Recorder{
		output: output,
		now:    time.Now,
	}

	recorder.VIOAdapter = vos.NewVIOAdapter(
		&recorderReadCloser{mockFd: FDStdin, r: recorder, wrapped: toWrap.Stdin()},
		&recorderWriteCloser{mockFd: FDStdout, r: recorder, wrapped: toWrap.Stdout()},
		&recorderWriteCloser{mockFd: FDStderr, r: recorder, wrapped: toWrap.Stderr()},
	)

	return recorder
}
