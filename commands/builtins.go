package commands

import (
	"sort"

	"github.com/josephlewis42/ampsh/core/shell"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin is a command the shell runs itself rather than starting a
// program. args[0] is the builtin's name and, if the command had any, args[1]
// is everything after the name.
type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinNames lists the registered builtins in sorted order.
func BuiltinNames() []string {
	var names []string
	for k := range AllBuiltins {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// builtinArgs splits a segment into the form builtins receive.
func builtinArgs(segment string) []string {
	args := []string{shell.CommandName(segment)}
	if rest := shell.CommandArguments(segment); rest != "" {
		args = append(args, rest)
	}
	return args
}

// Cd is the cd shell builtin. Without an argument it does nothing, there is
// no fallback to the home directory. Failures aren't reported to the user.
func Cd(s *Shell, args []string) int {
	if len(args) < 2 {
		return 0
	}

	if err := s.chdir(args[1]); err != nil {
		return 1
	}
	return 0
}

// Exit quits the shell
func Exit(s *Shell, args []string) int {
	s.Quit = true
	return 0
}

func init() {
	AllBuiltins[shell.ChangeDirectoryKeyword] = ShellBuiltinFunc(Cd)
	AllBuiltins[shell.ExitKeyword] = ShellBuiltinFunc(Exit)
}

