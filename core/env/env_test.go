package env

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleCopyEnv() {
	env := NewStore()
	CopyEnv(env, EnvList{"A=B", "C=D", "E", "F=G=H"})

	fmt.Printf("Environ(): %q\n", env.Environ())
	fmt.Printf("Getenv(\"F\"): %q\n", env.Getenv("F"))

	// Output: Environ(): ["A=B" "C=D" "E=" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleNewStoreFrom() {
	env := NewStoreFrom(EnvList{"Z=1", "A=2", "Z=3"})

	fmt.Printf("Environ(): %q\n", env.Environ())

	// Output: Environ(): ["Z=3" "A=2"]
}

func ExampleStore_Unsetenv() {
	env := NewStore()
	env.Setenv("A", "B")
	env.Setenv("C", "D")

	fmt.Println("Before:", env.Environ())
	env.Unsetenv("A")
	fmt.Println("After:", env.Environ())

	// Output: Before: [A=B C=D]
	// After: [C=D]
}

func ExampleStore_LookupEnv() {
	env := NewStore()
	env.Setenv("A", "B")

	val, ok := env.LookupEnv("A")
	fmt.Println("Existing", "val:", val, "ok:", ok)
	val, ok = env.LookupEnv("B")
	fmt.Println("Missing", "val:", val, "ok:", ok)

	// Output: Existing val: B ok: true
	// Missing val:  ok: false
}

func TestStore_order(t *testing.T) {
	env := NewStore()
	env.Setenv("PATH", "/bin")
	env.Setenv("HOME", "/root")
	env.Setenv("PWD", "/")

	// Overwriting keeps the original slot.
	env.Setenv("PATH", "/usr/bin")
	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/root", "PWD=/"}, env.Environ())

	// Re-adding after removal appends.
	assert.True(t, env.Unsetenv("PATH"))
	assert.False(t, env.Unsetenv("PATH"))
	env.Setenv("PATH", "/sbin")
	assert.Equal(t, []string{"HOME=/root", "PWD=/", "PATH=/sbin"}, env.Environ())
	assert.Equal(t, 3, env.Len())
}

func TestSplitEntry(t *testing.T) {
	cases := []struct {
		entry string
		key   string
		value string
	}{
		{"A=B", "A", "B"},
		{"A=", "A", ""},
		{"A", "A", ""},
		{"A=B=C", "A", "B=C"},
		{"=x", "", "x"},
	}

	for _, tc := range cases {
		t.Run(tc.entry, func(t *testing.T) {
			key, value := SplitEntry(tc.entry)
			assert.Equal(t, tc.key, key)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestCopyEnv_skipsEmptyKeys(t *testing.T) {
	env := NewStoreFrom(EnvList{"=C:=C:\\", "A=1"})
	assert.Equal(t, []string{"A=1"}, env.Environ())
}
