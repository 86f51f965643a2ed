package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/josephlewis42/ampsh/core/config"
	"github.com/josephlewis42/ampsh/core/vos"
)

// ColorPrinter decides whether the interpreter's own output is colorized.
type ColorPrinter struct {
	mode string
	pty  vos.PTY

	prompt *color.Color
	err    *color.Color
}

// NewColorPrinter creates a printer for one of the config.Color* modes.
func NewColorPrinter(mode string, pty vos.PTY) *ColorPrinter {
	c := &ColorPrinter{
		mode:   mode,
		pty:    pty,
		prompt: color.New(color.FgBlue, color.Bold),
		err:    color.New(color.FgRed, color.Bold),
	}

	// fatih/color disables itself globally when os.Stdout isn't a terminal,
	// the per-color override follows the mode instead.
	if c.ShouldColor() {
		c.prompt.EnableColor()
		c.err.EnableColor()
	} else {
		c.prompt.DisableColor()
		c.err.DisableColor()
	}
	return c
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return c.pty.IsPTY
	}
}

func (c *ColorPrinter) Sprintf(color *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		return color.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}

// Prompt formats the working directory part of the prompt.
func (c *ColorPrinter) Prompt(dir string) string {
	return c.Sprintf(c.prompt, "%s", dir)
}

// Error formats a diagnostic printed by the interpreter.
func (c *ColorPrinter) Error(format string, a ...interface{}) string {
	return c.Sprintf(c.err, format, a...)
}
