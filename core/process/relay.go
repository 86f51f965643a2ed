package process

import (
	"io"
	"os"

	"github.com/josephlewis42/ampsh/core/vos"
)

// relay connects a child's output stream to a writer.
//
// Files are handed to the child directly. Any other writer is fed through a
// pipe that is only drained after start, so nothing the child prints can
// overtake the job announcement.
type relay struct {
	child *os.File

	w    io.Writer
	r    *os.File
	done chan struct{}
}

func newRelay(w io.Writer) (*relay, error) {
	if f := vos.File(w); f != nil {
		return &relay{child: f}, nil
	}

	r, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &relay{child: pw, w: w, r: r}, nil
}

// start closes the parent's copy of the write end and begins copying.
func (rl *relay) start() {
	if rl.r == nil {
		return
	}
	rl.child.Close()

	rl.done = make(chan struct{})
	go func() {
		defer close(rl.done)
		defer rl.r.Close()
		io.Copy(rl.w, rl.r)
	}()
}

// wait blocks until everything the child wrote has been copied.
func (rl *relay) wait() {
	if rl.done != nil {
		<-rl.done
	}
}

// abort releases the pipe of a child that never started.
func (rl *relay) abort() {
	if rl.r == nil {
		return
	}
	rl.child.Close()
	rl.r.Close()
}
