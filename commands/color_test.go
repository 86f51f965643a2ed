package commands

import (
	"testing"

	"github.com/josephlewis42/ampsh/core/config"
	"github.com/josephlewis42/ampsh/core/vos"
	"github.com/stretchr/testify/assert"
)

func TestColorPrinter_ShouldColor(t *testing.T) {
	cases := map[string]struct {
		mode  string
		isPTY bool
		want  bool
	}{
		"always":       {config.ColorAlways, false, true},
		"never-on-pty": {config.ColorNever, true, false},
		"auto-pty":     {config.ColorAuto, true, true},
		"auto-pipe":    {config.ColorAuto, false, false},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			c := NewColorPrinter(tc.mode, vos.PTY{IsPTY: tc.isPTY})
			assert.Equal(t, tc.want, c.ShouldColor())
		})
	}
}

func TestColorPrinter_Prompt(t *testing.T) {
	plain := NewColorPrinter(config.ColorNever, vos.PTY{})
	assert.Equal(t, "/tmp", plain.Prompt("/tmp"))

	colored := NewColorPrinter(config.ColorAlways, vos.PTY{})
	assert.Equal(t, "\x1b[34;1m/tmp\x1b[0m", colored.Prompt("/tmp"))
}
