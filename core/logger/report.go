package logger

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	SyntaxError    SyntaxErrorReport    `json:"syntax_error_report"`
	CapacityError  CapacityErrorReport  `json:"capacity_error_report"`
	Builtin        BuiltinReport        `json:"builtin_report"`
	CommandExit    CommandExitReport    `json:"command_exit_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch le.Type {
	case EventRunCommand:
		r.RunCommand.update(le)
	case EventUnknownCommand:
		r.UnknownCommand.update(le)
	case EventSyntaxError:
		r.SyntaxError.update(le)
	case EventCapacityError:
		r.CapacityError.update(le)
	case EventBuiltin:
		r.Builtin.update(le)
	case EventCommandExit:
		r.CommandExit.update(le)
	case EventSessionStart, EventSessionEnd:
		// Ignore
	default:
		r.InvalidEntries.Increment(string(le.Type))
	}
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Number of commands run as background jobs.
	BackgroundJobs int `json:"background_jobs"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	if argv := le.GetStrings("command"); len(argv) > 0 {
		r.CommandNames.Increment(argv[0])
	}
	r.ResolvedCommandPaths.Increment(le.GetString("path"))
	if le.GetBool("background") {
		r.BackgroundJobs++
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(le *LogEntry) {
	if argv := le.GetStrings("command"); len(argv) > 0 {
		r.CommandNames.Increment(argv[0])
	}
}

type SyntaxErrorReport struct {
	Tokens StrCounter `json:"tokens"`
}

func (r *SyntaxErrorReport) update(le *LogEntry) {
	r.Tokens.Increment(le.GetString("token"))
}

type CapacityErrorReport struct {
	Count int `json:"count"`
}

func (r *CapacityErrorReport) update(le *LogEntry) {
	r.Count++
}

type BuiltinReport struct {
	Names StrCounter `json:"names"`
}

func (r *BuiltinReport) update(le *LogEntry) {
	r.Names.Increment(le.GetString("name"))
}

type CommandExitReport struct {
	// Exit statuses keyed by command name and status.
	Statuses *PathCounter `json:"statuses"`
}

func (r *CommandExitReport) update(le *LogEntry) {
	if r.Statuses == nil {
		r.Statuses = NewPathCounter("command", "status")
	}
	name := ""
	if argv := le.GetStrings("command"); len(argv) > 0 {
		name = argv[0]
	}
	r.Statuses.Increment(name, strconv.Itoa(le.GetInt("status")))
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of strings seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
