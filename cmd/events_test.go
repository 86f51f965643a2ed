package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/josephlewis42/ampsh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEventLog(t *testing.T) (log *bytes.Buffer, first, second *logger.SessionLogger) {
	t.Helper()

	log = &bytes.Buffer{}
	recorder := logger.NewJsonLinesLogRecorder(log)
	first, second = recorder.NewSession(), recorder.NewSession()

	require.NoError(t, first.SessionStart("xterm", true))
	require.NoError(t, first.RunCommand([]string{"ls"}, "/bin/ls", 10, false))
	require.NoError(t, second.SyntaxError("& ls", '&'))
	require.NoError(t, first.CommandExit([]string{"ls"}, 10, 0))
	require.NoError(t, second.UnknownCommand([]string{"exitnow"}, nil))
	return log, first, second
}

func TestWriteEventList(t *testing.T) {
	cases := map[string]struct {
		session func(first, second *logger.SessionLogger) string
		types   []string
		want    []string
	}{
		"all": {
			func(_, _ *logger.SessionLogger) string { return "" },
			nil,
			[]string{"session_start", "run_command", "syntax_error", "command_exit", "unknown_command"},
		},
		"session": {
			func(_, second *logger.SessionLogger) string { return second.SessionID()[:8] },
			nil,
			[]string{"syntax_error", "unknown_command"},
		},
		"types": {
			func(_, _ *logger.SessionLogger) string { return "" },
			[]string{"run_command", "command_exit"},
			[]string{"run_command", "command_exit"},
		},
		"session-and-type": {
			func(first, _ *logger.SessionLogger) string { return first.SessionID() },
			[]string{"syntax_error"},
			nil,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			log, first, second := testEventLog(t)

			out := &bytes.Buffer{}
			keep := eventFilter(tc.session(first, second), tc.types)
			require.NoError(t, writeEventList(log, out, keep))

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
				if fields := strings.Fields(line); len(fields) >= 3 {
					got = append(got, fields[2])
				}
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWriteReport(t *testing.T) {
	log, first, _ := testEventLog(t)

	out := &bytes.Buffer{}
	require.NoError(t, writeReport(log, out, eventFilter(first.SessionID(), nil)))

	assert.Contains(t, out.String(), "log_entries: 3\n")
	assert.Contains(t, out.String(), first.SessionID())
	assert.NotContains(t, out.String(), "exitnow")
}
