package commands

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleBuiltinNames() {
	fmt.Println(BuiltinNames())

	// Output: [cd exit]
}

func TestAllBuiltins(t *testing.T) {
	for name, builtin := range AllBuiltins {
		t.Run(name, func(t *testing.T) {
			if builtin == nil {
				t.Fatal("nil builtin", name)
			}
		})
	}
}

func TestBuiltinArgs(t *testing.T) {
	cases := map[string]struct {
		segment string
		want    []string
	}{
		"bare":        {"cd", []string{"cd"}},
		"argument":    {"cd /tmp", []string{"cd", "/tmp"}},
		"extra-space": {"cd  \t /tmp", []string{"cd", "/tmp"}},
		"rest-intact": {"cd a b", []string{"cd", "a b"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, builtinArgs(tc.segment))
		})
	}
}

func TestExit(t *testing.T) {
	s := &Shell{}

	assert.Equal(t, 0, Exit(s, []string{"exit"}))
	assert.True(t, s.Quit)
}
