// Package vos describes the streams and terminal an interpreter session is
// attached to.
package vos

import (
	"io"
	"os"

	"golang.org/x/term"
)

// VIO is the set of standard streams handed to the shell and to every child
// process it starts.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// PTY describes the terminal behind a session.
type PTY struct {
	Width  int
	Height int
	Term   string
	IsPTY  bool
}

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// DetectPTY inspects f and reports whether it's a terminal and its size.
// Non-terminals get an 80x24 default.
func DetectPTY(f *os.File) PTY {
	pty := PTY{
		Width:  defaultWidth,
		Height: defaultHeight,
		Term:   os.Getenv("TERM"),
	}
	if f == nil {
		return pty
	}

	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return pty
	}
	pty.IsPTY = true

	if w, h, err := term.GetSize(fd); err == nil {
		pty.Width, pty.Height = w, h
	}
	return pty
}
