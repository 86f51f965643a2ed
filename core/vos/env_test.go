package vos

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleNewEnv() {
	env := NewEnv([]string{"C=D", "A=B", "E", "F=G=H", "A=Z"})

	fmt.Printf("Environ(): %q\n", env.Environ())
	fmt.Printf("Getenv(\"F\"): %q\n", env.Getenv("F"))

	// Output: Environ(): ["A=Z" "C=D" "E=" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleEnv_LookupEnv() {
	env := NewEnv([]string{"A=B"})

	val, ok := env.LookupEnv("A")
	fmt.Println("Existing", "val:", val, "ok:", ok)
	val, ok = env.LookupEnv("B")
	fmt.Println("Missing", "val:", val, "ok:", ok)

	// Output: Existing val: B ok: true
	// Missing val:  ok: false
}

func TestEnv_Chdir(t *testing.T) {
	cases := map[string]struct {
		initial []string
		want    []string
	}{
		"first-cd":    {nil, []string{"PWD=/tmp"}},
		"previous":    {[]string{"PWD=/home"}, []string{"OLDPWD=/home", "PWD=/tmp"}},
		"old-replace": {[]string{"PWD=/a", "OLDPWD=/b"}, []string{"OLDPWD=/a", "PWD=/tmp"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			env := NewEnv(tc.initial)
			env.Chdir("/tmp")

			assert.Equal(t, tc.want, env.Environ())
		})
	}
}

func TestEnv_zeroValue(t *testing.T) {
	var env Env
	env.Setenv("A", "B")
	env.Chdir("/")

	assert.Equal(t, []string{"A=B", "PWD=/"}, env.Environ())
}
