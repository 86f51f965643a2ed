//go:build !unix

package process

import (
	"errors"
	"os"
)

func replaceProcess(path string, argv []string, env []string) error {
	return errors.New("replacing the process image is not supported on this platform")
}

func signalStatus(state *os.ProcessState) int {
	return ExitFailure
}
