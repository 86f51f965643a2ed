package commands

import (
	"github.com/abiosoft/readline"
	"github.com/josephlewis42/ampsh/core/vos"
)

// LineReader acquires one line of input at a time. *readline.Instance
// satisfies it.
//
// Readline returns io.EOF when input is closed and readline.ErrInterrupt
// when the user pressed Ctrl-C.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// NewReadline creates a line editor on the given streams. An empty
// historyFile disables history.
func NewReadline(vio vos.VIO, pty vos.PTY, historyFile string) (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(vio.Stdin()),
		Stdout:      vio.Stdout(),
		Stderr:      vio.Stderr(),
		HistoryFile: historyFile,
		FuncGetWidth: func() int {
			return pty.Width
		},
		FuncIsTerminal: func() bool {
			return pty.IsPTY
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(cfg)
}
