// Package process runs external programs for the interpreter.
package process

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/josephlewis42/ampsh/core/shell"
	"github.com/josephlewis42/ampsh/core/vos"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = exec.ErrNotFound

// Exit codes reported by the executor itself.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// JobID is the job slot announced for every background command. Only one
// job is tracked at a time.
const JobID = 1

// Mode selects how foreground commands are run.
type Mode string

const (
	// ModeSpawn runs foreground commands as a child and waits for them.
	ModeSpawn Mode = "spawn"
	// ModeReplace replaces the interpreter's process image with the command.
	// It's only available on unix systems and never returns on success.
	ModeReplace Mode = "replace"
)

// Result describes a finished command.
type Result struct {
	// Argv is the vector the program was started with.
	Argv shell.Argv
	// Path is the resolved location of the program, empty if it wasn't found.
	Path string
	// Pid is the id of the child, zero if no child was created.
	Pid int
	// Background is true if the command was announced as a job.
	Background bool
	// Status is the exit status in [0,255].
	Status int
}

// Hooks observe the executor, any of them may be nil.
type Hooks struct {
	// Started is called once the child is running.
	Started func(r *Result)
	// NotFound is called when the program can't be resolved or started.
	NotFound func(argv shell.Argv, err error)
}

// Executor starts programs on behalf of the interpreter.
type Executor struct {
	// IO is inherited by every child.
	IO vos.VIO
	// Mode is used for foreground commands, the zero value is ModeSpawn.
	Mode Mode
	// Env is the child environment, nil inherits the interpreter's.
	Env []string
	// MaxArguments bounds the argument vector, zero or less is unbounded.
	MaxArguments int
	// Logger receives diagnostics, nil discards them.
	Logger *log.Logger

	Hooks Hooks
}

// New creates an executor attached to the given streams.
func New(vio vos.VIO) *Executor {
	return &Executor{
		IO:           vio,
		Mode:         ModeSpawn,
		MaxArguments: shell.DefaultMaxArguments,
	}
}

func (e *Executor) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

// Execute runs a single command segment.
//
// In the background the child is announced as "[1] <pid>" and then waited
// on. In the foreground the child is waited on silently, or, in
// ModeReplace, the interpreter is replaced by it.
//
// A program that can't be found or started is reported on stderr as
// "ERROR: cannot start program <name>" and yields ExitFailure with a nil
// error; the interpreter carries on. A non-nil error means the segment was
// rejected before anything ran.
func (e *Executor) Execute(ctx context.Context, segment string, background bool) (*Result, error) {
	name := shell.CommandName(segment)
	argv, err := shell.SplitArguments(segment, e.MaxArguments)
	if err != nil {
		return nil, fmt.Errorf("arguments: %w", err)
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	result := &Result{
		Argv:       argv,
		Background: background,
	}

	path, err := exec.LookPath(name)
	if errors.Is(err, exec.ErrDot) {
		// PATH names the current directory, execvp would run it.
		err = nil
	}
	if err != nil {
		return e.cannotStart(result, err), nil
	}
	result.Path = path

	if !background && e.Mode == ModeReplace {
		err := replaceProcess(path, argv, e.environ())
		// Only reachable if the image couldn't be replaced.
		return e.cannotStart(result, err), nil
	}

	stdout, err := newRelay(e.IO.Stdout())
	if err != nil {
		return nil, fmt.Errorf("stdout: %w", err)
	}
	stderr, err := newRelay(e.IO.Stderr())
	if err != nil {
		stdout.abort()
		return nil, fmt.Errorf("stderr: %w", err)
	}

	cmd := exec.CommandContext(ctx, path)
	if errors.Is(cmd.Err, exec.ErrDot) {
		cmd.Err = nil
	}
	cmd.Args = argv
	cmd.Env = e.Env
	if stdin := vos.File(e.IO.Stdin()); stdin != nil {
		cmd.Stdin = stdin
	}
	cmd.Stdout = stdout.child
	cmd.Stderr = stderr.child

	if err := cmd.Start(); err != nil {
		stdout.abort()
		stderr.abort()
		return e.cannotStart(result, err), nil
	}
	result.Pid = cmd.Process.Pid

	if background {
		fmt.Fprintf(e.IO.Stdout(), "[%d] %d\n", JobID, result.Pid)
	}
	stdout.start()
	stderr.start()

	if e.Hooks.Started != nil {
		e.Hooks.Started(result)
	}

	waitErr := cmd.Wait()
	stdout.wait()
	stderr.wait()
	result.Status = ExitStatus(waitErr)
	e.logf("pid %d (%s) exited with status %d", result.Pid, name, result.Status)

	return result, nil
}

func (e *Executor) cannotStart(result *Result, err error) *Result {
	name := result.Argv[0]
	e.logf("cannot start %q: %v", name, err)
	fmt.Fprintf(e.IO.Stderr(), "ERROR: cannot start program %s\n", name)
	if e.Hooks.NotFound != nil {
		e.Hooks.NotFound(result.Argv, err)
	}

	result.Status = ExitFailure
	return result
}

func (e *Executor) environ() []string {
	if e.Env != nil {
		return e.Env
	}
	return os.Environ()
}

// ExitStatus converts the error returned by exec.Cmd.Wait into a status in
// [0,255].
func ExitStatus(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return ExitFailure
	}

	if code := exitErr.ExitCode(); code >= 0 {
		return code & 0xff
	}
	return signalStatus(exitErr.ProcessState)
}
