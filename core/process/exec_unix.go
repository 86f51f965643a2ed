//go:build unix

package process

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// replaceProcess swaps the current process image for path. It only returns
// if that failed.
func replaceProcess(path string, argv []string, env []string) error {
	return unix.Exec(path, argv, env)
}

// signalStatus follows the shell convention of 128+N for a child killed by
// signal N.
func signalStatus(state *os.ProcessState) int {
	if state == nil {
		return ExitFailure
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return (128 + int(ws.Signal())) & 0xff
	}
	return ExitFailure
}
