package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interpreter events.
type Logger struct {
	Record LogRecorder

	now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops every event.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error { return nil },
	}
}

func (l *Logger) timestamp() time.Time {
	if l.now != nil {
		return l.now()
	}
	return time.Now()
}

func (l *Logger) record(sessionID string, eventType EventType, event map[string]interface{}) error {
	return l.Record(&LogEntry{
		TimestampMicros: l.timestamp().UnixMicro(),
		SessionID:       sessionID,
		Type:            eventType,
		Event:           event,
	})
}

// NewSession creates a logger with a freshly generated session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: uuid.NewString()}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID shared by all events of the session.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record stores an event of the given type.
func (l *SessionLogger) Record(eventType EventType, event map[string]interface{}) error {
	return l.record(l.sessionID, eventType, event)
}

func (l *SessionLogger) SessionStart(term string, isPTY bool) error {
	return l.Record(EventSessionStart, map[string]interface{}{
		"term":   term,
		"is_pty": isPTY,
	})
}

func (l *SessionLogger) SessionEnd(reason string) error {
	return l.Record(EventSessionEnd, map[string]interface{}{
		"reason": reason,
	})
}

func (l *SessionLogger) SyntaxError(line string, token byte) error {
	return l.Record(EventSyntaxError, map[string]interface{}{
		"line":  line,
		"token": string(token),
	})
}

func (l *SessionLogger) CapacityError(line string, err error) error {
	return l.Record(EventCapacityError, map[string]interface{}{
		"line":  line,
		"error": err,
	})
}

func (l *SessionLogger) Builtin(name string, args []string, status int) error {
	return l.Record(EventBuiltin, map[string]interface{}{
		"name":   name,
		"args":   args,
		"status": status,
	})
}

func (l *SessionLogger) RunCommand(argv []string, path string, pid int, background bool) error {
	return l.Record(EventRunCommand, map[string]interface{}{
		"command":    argv,
		"path":       path,
		"pid":        pid,
		"background": background,
	})
}

func (l *SessionLogger) UnknownCommand(argv []string, err error) error {
	return l.Record(EventUnknownCommand, map[string]interface{}{
		"command": argv,
		"error":   err,
	})
}

func (l *SessionLogger) CommandExit(argv []string, pid int, status int) error {
	return l.Record(EventCommandExit, map[string]interface{}{
		"command": argv,
		"pid":     pid,
		"status":  status,
	})
}
