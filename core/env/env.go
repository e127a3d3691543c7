// Package env holds the shell's environment variables.
package env

import (
	"fmt"
	"os"
	"strings"
)

// EnvironFetcher is anything that can produce a "key=value" list.
type EnvironFetcher interface {
	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// EnvList adapts a plain []string to EnvironFetcher.
type EnvList []string

// Environ implements EnvironFetcher.
func (e EnvList) Environ() []string {
	return append([]string(nil), e...)
}

// SplitEntry splits a "key=value" entry. Entries without an = have an empty
// value.
func SplitEntry(e string) (key, value string) {
	split := strings.SplitN(e, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return key, value
}

// Store is an ordered set of environment variables. Keys are unique and
// iteration follows insertion order so Environ() is deterministic.
//
// A Store is owned by a single shell session and is not safe for concurrent
// use.
type Store struct {
	keys   []string
	values map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// NewStoreFrom creates a Store seeded with a copy of src's entries.
func NewStoreFrom(src EnvironFetcher) *Store {
	out := NewStore()
	CopyEnv(out, src)
	return out
}

// NewStoreFromOS seeds a Store from the process environment.
func NewStoreFromOS() *Store {
	return NewStoreFrom(EnvList(os.Environ()))
}

// CopyEnv copies all the environment variables from src to dst.
func CopyEnv(dst *Store, src EnvironFetcher) {
	for _, e := range src.Environ() {
		key, value := SplitEntry(e)
		if key == "" {
			continue
		}
		dst.Setenv(key, value)
	}
}

// Setenv sets key to value, keeping the original position of existing keys.
func (s *Store) Setenv(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Unsetenv removes key, it reports whether the key was present.
func (s *Store) Unsetenv(key string) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// LookupEnv retrieves the value of the variable named by the key. If the
// variable is present the value (which may be empty) is returned and the
// boolean is true.
func (s *Store) LookupEnv(key string) (string, bool) {
	val, ok := s.values[key]
	return val, ok
}

// Getenv retrieves the value of the variable named by the key, or the empty
// string if it is not present.
func (s *Store) Getenv(key string) string {
	return s.values[key]
}

// Len returns the number of variables.
func (s *Store) Len() int {
	return len(s.keys)
}

// Environ materializes the store in the "key=value" form exec expects.
func (s *Store) Environ() []string {
	env := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		env = append(env, fmt.Sprintf("%s=%s", k, s.values[k]))
	}
	return env
}

var _ EnvironFetcher = (*Store)(nil)
