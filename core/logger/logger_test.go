package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.UnixMicro(1634567890123456)
	}
}

func TestJsonLinesRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewJsonLinesLogRecorder(buf)
	l.now = fixedClock()
	session := l.NewSession()

	require.NoError(t, session.SessionStart("xterm", true))
	require.NoError(t, session.RunCommand([]string{"ls", "-la"}, "/bin/ls", 42, true))
	require.NoError(t, session.UnknownCommand([]string{"exitnow"}, errors.New("not found")))
	require.NoError(t, session.CommandExit([]string{"ls", "-la"}, 42, 3))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)), line)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &raw))
		assert.Equal(t, "2021-10-18T14:38:10.123456Z", raw["timestamp"])
	}

	var entries []*LogEntry
	require.NoError(t, ReadJSONLinesLog(buf, func(le *LogEntry) {
		entries = append(entries, le)
	}))
	require.Len(t, entries, 4)

	for _, le := range entries {
		assert.Equal(t, session.SessionID(), le.SessionID)
		assert.Equal(t, int64(1634567890123456), le.TimestampMicros)
	}

	assert.Equal(t, EventSessionStart, entries[0].Type)
	assert.Equal(t, "xterm", entries[0].GetString("term"))
	assert.True(t, entries[0].GetBool("is_pty"))

	assert.Equal(t, EventRunCommand, entries[1].Type)
	assert.Equal(t, []string{"ls", "-la"}, entries[1].GetStrings("command"))
	assert.Equal(t, "/bin/ls", entries[1].GetString("path"))
	assert.Equal(t, 42, entries[1].GetInt("pid"))
	assert.True(t, entries[1].GetBool("background"))

	assert.Equal(t, "not found", entries[2].GetString("error"))
	assert.Equal(t, 3, entries[3].GetInt("status"))
}

func TestNewSession_uniqueIDs(t *testing.T) {
	l := NewNopLogger()

	a, b := l.NewSession(), l.NewSession()

	assert.NotEmpty(t, a.SessionID())
	assert.NotEqual(t, a.SessionID(), b.SessionID())
	assert.NoError(t, a.SessionEnd("exit"))
}

func TestLogEntry_UnmarshalJSON_missingType(t *testing.T) {
	var le LogEntry
	err := json.Unmarshal([]byte(`{"session_id": "x"}`), &le)

	assert.Error(t, err)
}

func TestLogEntry_UnmarshalJSON_badTimestamp(t *testing.T) {
	var le LogEntry
	err := json.Unmarshal([]byte(`{"type": "builtin", "timestamp": "yesterday"}`), &le)

	assert.Error(t, err)
}

func TestReport(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJsonLinesLogRecorder(buf).NewSession()

	session.SessionStart("dumb", false)
	session.SyntaxError("& ls", '&')
	session.SyntaxError("| ls", '|')
	session.SyntaxError("&", '&')
	session.Builtin("cd", []string{"/tmp"}, 0)
	session.RunCommand([]string{"ls"}, "/bin/ls", 10, false)
	session.CommandExit([]string{"ls"}, 10, 0)
	session.RunCommand([]string{"sleep", "1"}, "/bin/sleep", 11, true)
	session.CommandExit([]string{"sleep", "1"}, 11, 0)
	session.UnknownCommand([]string{"exitnow"}, nil)
	session.CapacityError("a&b&c", errors.New("too many tokens"))
	session.Record("mystery", nil)
	session.SessionEnd("exit")

	var report Report
	require.NoError(t, ReadJSONLinesLog(buf, report.Update))

	assert.Equal(t, 13, report.LogEntries)
	assert.Equal(t, 2, report.SyntaxError.Tokens.internal["&"])
	assert.Equal(t, 1, report.SyntaxError.Tokens.internal["|"])
	assert.Equal(t, 1, report.Builtin.Names.internal["cd"])
	assert.Equal(t, 1, report.RunCommand.BackgroundJobs)
	assert.Equal(t, 1, report.RunCommand.CommandNames.internal["sleep"])
	assert.Equal(t, 1, report.UnknownCommand.CommandNames.internal["exitnow"])
	assert.Equal(t, 1, report.CapacityError.Count)
	assert.Equal(t, 1, report.InvalidEntries.internal["mystery"])
	assert.Equal(t, 13, report.Sessions.internal[session.SessionID()])

	out, err := json.Marshal(&report)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"background_jobs":1`)
}

func TestPathCounter(t *testing.T) {
	ctr := NewPathCounter("command", "status")
	ctr.Increment("ls", "0")
	ctr.Increment("ls", "0")
	ctr.Increment("false", "1")

	out, err := json.Marshal(ctr)
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"count": 2, "event": {"command": "ls", "status": "0"}},
		{"count": 1, "event": {"command": "false", "status": "1"}}
	]`, string(out))
}
