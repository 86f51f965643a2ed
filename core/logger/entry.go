package logger

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// EventType names the kind of a LogEntry.
type EventType string

const (
	EventSessionStart   EventType = "session_start"
	EventSessionEnd     EventType = "session_end"
	EventSyntaxError    EventType = "syntax_error"
	EventCapacityError  EventType = "capacity_error"
	EventBuiltin        EventType = "builtin"
	EventRunCommand     EventType = "run_command"
	EventUnknownCommand EventType = "unknown_command"
	EventCommandExit    EventType = "command_exit"
)

const (
	keyTimestamp = "timestamp"
	keySession   = "session_id"
	keyType      = "type"
	keyEvent     = "event"
)

// LogEntry is a single event.
type LogEntry struct {
	TimestampMicros int64
	SessionID       string
	Type            EventType
	Event           map[string]interface{}
}

// Time returns the timestamp of the entry.
func (le *LogEntry) Time() time.Time {
	return time.UnixMicro(le.TimestampMicros)
}

// GetString returns a string field of the event, or "" if it's missing.
func (le *LogEntry) GetString(key string) string {
	s, _ := le.Event[key].(string)
	return s
}

// GetInt returns a numeric field of the event, or 0 if it's missing.
func (le *LogEntry) GetInt(key string) int {
	f, _ := le.Event[key].(float64)
	return int(f)
}

// GetBool returns a boolean field of the event.
func (le *LogEntry) GetBool(key string) bool {
	b, _ := le.Event[key].(bool)
	return b
}

// GetStrings returns a list field of the event.
func (le *LogEntry) GetStrings(key string) []string {
	if list, ok := le.Event[key].([]string); ok {
		return list
	}

	list, _ := le.Event[key].([]interface{})
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// MarshalJSON encodes the entry as the protojson form of a Struct.
func (le *LogEntry) MarshalJSON() ([]byte, error) {
	st, err := structpb.NewStruct(map[string]interface{}{
		keyTimestamp: le.Time().UTC().Format(time.RFC3339Nano),
		keySession:   le.SessionID,
		keyType:      string(le.Type),
		keyEvent:     normalize(le.Event),
	})
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(st)
}

// UnmarshalJSON decodes an entry written by MarshalJSON.
func (le *LogEntry) UnmarshalJSON(data []byte) error {
	var st structpb.Struct
	if err := protojson.Unmarshal(data, &st); err != nil {
		return err
	}
	fields := st.AsMap()

	eventType, ok := fields[keyType].(string)
	if !ok {
		return fmt.Errorf("log entry is missing %q", keyType)
	}
	le.Type = EventType(eventType)
	le.SessionID, _ = fields[keySession].(string)
	if ts, ok := fields[keyTimestamp].(string); ok {
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return fmt.Errorf("log entry %q: %w", keyTimestamp, err)
		}
		le.TimestampMicros = parsed.UnixMicro()
	}
	le.Event, _ = fields[keyEvent].(map[string]interface{})
	if le.Event == nil {
		le.Event = make(map[string]interface{})
	}
	return nil
}

// normalize converts values structpb can't represent directly.
func normalize(event map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(event))
	for k, v := range event {
		switch v := v.(type) {
		case []string:
			list := make([]interface{}, len(v))
			for i, s := range v {
				list[i] = s
			}
			out[k] = list
		case fmt.Stringer:
			out[k] = v.String()
		case error:
			out[k] = v.Error()
		default:
			out[k] = v
		}
	}
	return out
}
