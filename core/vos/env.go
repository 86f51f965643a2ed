package vos

import (
	"sort"
	"strings"
	"sync"
)

// Well known environment variables maintained by the interpreter.
const (
	EnvPWD    = "PWD"
	EnvOldPWD = "OLDPWD"
)

// Env is an in-memory environment handed to child processes.
type Env struct {
	rw  sync.RWMutex
	env map[string]string
}

// NewEnv creates an environment from KEY=VALUE pairs such as os.Environ().
// Entries without "=" get an empty value, later duplicates win.
func NewEnv(environ []string) *Env {
	out := &Env{env: make(map[string]string)}

	for _, e := range environ {
		key, value := splitEnv(e)
		out.env[key] = value
	}

	return out
}

func splitEnv(e string) (key, value string) {
	split := strings.SplitN(e, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return key, value
}

func (m *Env) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
}

func (m *Env) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

func (m *Env) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ returns the KEY=VALUE pairs sorted by key.
func (m *Env) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	env := make([]string, 0, len(m.env))
	for k, v := range m.env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)

	return env
}

// Chdir records a change of working directory the way shells do, the
// previous PWD becomes OLDPWD.
func (m *Env) Chdir(dir string) {
	if old, ok := m.LookupEnv(EnvPWD); ok {
		m.Setenv(EnvOldPWD, old)
	}
	m.Setenv(EnvPWD, dir)
}
