package shell

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleTrim() {
	buf := []byte("  ls -la \n")
	n := Trim(buf)

	fmt.Printf("%q %d\n", buf[:n], n)

	// Output: "ls -la" 6
}

func TestTrim(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"empty":           {"", ""},
		"only-spaces":     {"     ", ""},
		"only-newline":    {"\n", ""},
		"mixed-blank":     {" \t\r\n\v\f", ""},
		"no-whitespace":   {"pwd", "pwd"},
		"leading":         {"   pwd", "pwd"},
		"trailing":        {"pwd\n", "pwd"},
		"both":            {"\t ls -la  \n", "ls -la"},
		"interior-kept":   {" a  b ", "a  b"},
		"single-char":     {" & ", "&"},
		"trailing-amp-nl": {"sleep 1 &\n", "sleep 1 &"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			buf := []byte(tc.in)
			n := Trim(buf)

			assert.Equal(t, len(tc.want), n)
			assert.Equal(t, tc.want, string(buf[:n]))
			assert.Equal(t, tc.want, TrimString(tc.in))
		})
	}
}
