package ttylog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/josephlewis42/ampsh/core/vos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeConversions(t *testing.T) {
	cases := map[string]struct {
		microseconds int64
		seconds      float64
	}{
		"precision": {
			microseconds: 1,
			seconds:      1e-6,
		},
		"negative": {
			microseconds: -631119539e6,
			seconds:      -631119539,
		},
		"positive": {
			microseconds: 631119539e6,
			seconds:      631119539,
		},
		"bigprecise": {
			microseconds: 123456789987654,
			seconds:      123456789.987654,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s2m := secondsToMicroseconds(tc.seconds)
			m2s := microsecondsToSeconds(tc.microseconds)

			// Only allow delta to be to the NS
			assert.InDelta(t, m2s, tc.seconds, float64(time.Nanosecond)/float64(time.Second))
			assert.Equal(t, s2m, tc.microseconds)
		})
	}
}

func TestAsciicastRoundTrip(t *testing.T) {
	cast := &bytes.Buffer{}
	sink := NewAsciicastLogSink(cast, vos.PTY{Width: 100, Height: 30})

	entries := []*TTYLogEntry{
		{TimestampMicros: 1000000, IO: &IO{Fd: FDStdout, Data: []byte("$ ")}},
		{TimestampMicros: 1500000, IO: &IO{Fd: FDStdin, Data: []byte("ls\n")}},
		{TimestampMicros: 2000000, IO: &IO{Fd: FDStderr, Data: []byte("oops\n")}},
		{TimestampMicros: 2500000, Close: &Close{}},
	}
	for _, entry := range entries {
		require.NoError(t, sink(entry))
	}

	lines := strings.Split(strings.TrimSpace(cast.String()), "\n")
	require.Len(t, lines, 4)

	var header map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &header))
	assert.Equal(t, float64(2), header["version"])
	assert.Equal(t, float64(100), header["width"])
	assert.Equal(t, float64(30), header["height"])
	assert.Equal(t, `[0,"o","$ "]`, lines[1])

	var replayed []*TTYLogEntry
	err := Replay(NewAsciicastLogSource(cast), func(entry *TTYLogEntry) error {
		replayed = append(replayed, entry)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, replayed, 3)

	assert.Equal(t, int64(0), replayed[0].TimestampMicros)
	assert.Equal(t, FDStdin, replayed[1].IO.Fd)
	assert.Equal(t, int64(500000), replayed[1].TimestampMicros)
	// stderr is folded into stdout
	assert.Equal(t, FDStdout, replayed[2].IO.Fd)
	assert.Equal(t, "oops\n", string(replayed[2].IO.Data))
}

func TestAsciicastLogSink_emptyEntry(t *testing.T) {
	sink := NewAsciicastLogSink(&bytes.Buffer{}, vos.PTY{Width: 80, Height: 24})

	assert.Error(t, sink(&TTYLogEntry{}))
}
