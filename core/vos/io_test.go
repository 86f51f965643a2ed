package vos

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVIOAdapter(t *testing.T) {
	out := &bytes.Buffer{}
	vio := NewVIOAdapter(strings.NewReader("in"), out, nil)

	buf := make([]byte, 2)
	n, err := vio.Stdin().Read(buf)
	assert.Nil(t, err)
	assert.Equal(t, "in", string(buf[:n]))

	vio.Stdout().Write([]byte("out"))
	assert.Equal(t, "out", out.String())

	// nil streams are discarded
	n, err = vio.Stderr().Write([]byte("dropped"))
	assert.Nil(t, err)
	assert.Equal(t, 7, n)
}

func TestNewNullIO(t *testing.T) {
	vio := NewNullIO()

	_, err := vio.Stdin().Read(make([]byte, 1))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Nil(t, vio.Stdout().Close())
}

func TestFile(t *testing.T) {
	osio := NewOSIO()

	assert.Equal(t, os.Stdin, File(osio.Stdin()))
	assert.Equal(t, os.Stdout, File(osio.Stdout()))
	assert.Equal(t, os.Stderr, File(osio.Stderr()))

	assert.Nil(t, File(NewVIOAdapter(strings.NewReader(""), nil, nil).Stdin()))
	assert.Nil(t, File(&bytes.Buffer{}))
}
