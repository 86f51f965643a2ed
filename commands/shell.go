package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/ampsh/core/config"
	"github.com/josephlewis42/ampsh/core/logger"
	"github.com/josephlewis42/ampsh/core/process"
	"github.com/josephlewis42/ampsh/core/shell"
	"github.com/josephlewis42/ampsh/core/vos"
)

// Reasons recorded when a session ends.
const (
	EndExit  = "exit"
	EndEOF   = "eof"
	EndError = "error"
)

// Shell is the interactive interpreter. It reads a line, splits it into
// &-separated commands and runs them in order.
type Shell struct {
	IO       vos.VIO
	PTY      vos.PTY
	Config   *config.Configuration
	Executor *process.Executor
	Events   *logger.SessionLogger
	Color    *ColorPrinter
	// Env is handed to every child, cd keeps PWD and OLDPWD current.
	Env *vos.Env

	// Reader supplies lines in interactive mode, it's created on first use if
	// nil.
	Reader LineReader
	// Logger receives operator diagnostics, nil discards them.
	Logger *log.Logger

	lastRet int

	// Set to true to quit the shell
	Quit bool
}

// NewShell creates an interpreter on the given streams. A nil events logger
// discards events.
func NewShell(cfg *config.Configuration, vio vos.VIO, pty vos.PTY, events *logger.SessionLogger) *Shell {
	if events == nil {
		events = logger.NewNopLogger().NewSession()
	}

	s := &Shell{
		IO:     vio,
		PTY:    pty,
		Config: cfg,
		Events: events,
		Color:  NewColorPrinter(cfg.Color, pty),
		Env:    vos.NewEnv(os.Environ()),
	}
	if wd, err := os.Getwd(); err == nil {
		s.Env.Setenv(vos.EnvPWD, wd)
	}

	executor := process.New(vio)
	executor.Mode = cfg.Mode()
	executor.MaxArguments = cfg.MaxArguments
	executor.Hooks = process.Hooks{
		Started: func(r *process.Result) {
			s.Events.RunCommand([]string(r.Argv), r.Path, r.Pid, r.Background)
		},
		NotFound: func(argv shell.Argv, err error) {
			s.Events.UnknownCommand([]string(argv), err)
		},
	}
	s.Executor = executor

	return s
}

// LastStatus is the status of the most recently run command.
func (s *Shell) LastStatus() int {
	return s.lastRet
}

func (s *Shell) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}

func (s *Shell) prompt() string {
	dir, err := os.Getwd()
	if err != nil {
		dir = "?"
	}
	return s.Color.Prompt(dir) + s.Config.Prompt
}

// RunInteractive prompts for lines until exit or end of input and prints
// the farewell message once.
func (s *Shell) RunInteractive(ctx context.Context) int {
	if s.Reader == nil {
		rl, err := NewReadline(s.IO, s.PTY, s.Config.HistoryPath())
		if err != nil {
			fmt.Fprintf(s.IO.Stderr(), "%s: %s\n", s.Config.ProgramName, err)
			return process.ExitFailure
		}
		s.Reader = rl
	}
	defer s.Reader.Close()

	s.Events.SessionStart(s.PTY.Term, s.PTY.IsPTY)

	reason := EndExit
	for !s.Quit {
		if ctx.Err() != nil {
			reason = EndError
			break
		}

		s.Reader.SetPrompt(s.prompt())
		line, err := s.Reader.Readline()

		switch {
		case err == io.EOF:
			// Input closed, same as exit.
			reason = EndEOF
			s.Quit = true

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			s.logf("Error readline: %v", err)
			reason = EndError
			s.Quit = true

		default:
			s.RunCommand(ctx, line)
		}
	}

	fmt.Fprint(s.IO.Stdout(), s.Config.Farewell)
	s.Events.SessionEnd(reason)
	return process.ExitSuccess
}

// RunCommand runs a single line of input and returns the status of its
// last command.
func (s *Shell) RunCommand(ctx context.Context, raw string) int {
	line, err := shell.ParseLine(raw, s.Config.Limits())

	var syntaxErr *shell.SyntaxError
	switch {
	case errors.As(err, &syntaxErr):
		fmt.Fprintf(s.IO.Stdout(), "%s: %s\n", s.Config.ProgramName, s.Color.Error("%s", syntaxErr))
		s.Events.SyntaxError(shell.TrimString(raw), syntaxErr.Token)
		return s.lastRet

	case errors.Is(err, shell.ErrTooManyTokens):
		s.capacityError(raw, "commands", s.Config.MaxSegments, err)
		return s.lastRet

	case err != nil:
		fmt.Fprintf(s.IO.Stderr(), "%s: %s\n", s.Config.ProgramName, s.Color.Error("%s", err))
		return s.lastRet

	case line.Empty():
		return s.lastRet
	}

	for _, segment := range line.Segments {
		switch shell.Classify(segment) {
		case shell.KindExit, shell.KindChangeDirectory:
			s.lastRet = s.runBuiltin(segment)
		default:
			s.lastRet = s.execute(ctx, segment, line.Background)
		}

		if s.Quit {
			// exit abandons the rest of the line.
			break
		}
	}

	return s.lastRet
}

func (s *Shell) capacityError(raw, what string, max int, err error) {
	fmt.Fprintf(s.IO.Stderr(), "%s: %s\n", s.Config.ProgramName,
		s.Color.Error("too many %s (max %d)", what, max))
	s.Events.CapacityError(shell.TrimString(raw), err)
}

func (s *Shell) runBuiltin(segment string) int {
	args := builtinArgs(segment)
	builtin, ok := AllBuiltins[args[0]]
	if !ok {
		s.logf("no builtin registered for %q", args[0])
		return process.ExitFailure
	}

	ret := builtin.Main(s, args)
	s.Events.Builtin(args[0], args[1:], ret)
	return ret
}

func (s *Shell) execute(ctx context.Context, segment string, background bool) int {
	s.Executor.Env = s.Env.Environ()
	result, err := s.Executor.Execute(ctx, segment, background)
	switch {
	case errors.Is(err, shell.ErrTooManyTokens):
		s.capacityError(segment, "arguments", s.Executor.MaxArguments, err)
		return process.ExitFailure
	case err != nil:
		fmt.Fprintf(s.IO.Stderr(), "%s: %s\n", s.Config.ProgramName, s.Color.Error("%s", err))
		return process.ExitFailure
	}

	if result.Pid != 0 {
		s.Events.CommandExit([]string(result.Argv), result.Pid, result.Status)
	}
	return result.Status
}

func (s *Shell) chdir(dir string) error {
	if err := os.Chdir(dir); err != nil {
		s.logf("cd %q: %v", dir, err)
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	s.Env.Chdir(wd)
	return nil
}
