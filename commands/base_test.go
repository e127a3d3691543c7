package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/hsh/core/config"
	"github.com/josephlewis42/hsh/core/env"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

const testPid = 4242

type scriptResult struct {
	Stdout string
	Stderr string
	Status int
}

// runScript runs script non-interactively in a fresh shell whose environment
// holds only PATH and HOME.
func runScript(t *testing.T, script string, opts ...func(*Options)) scriptResult {
	t.Helper()

	store := env.NewStore()
	store.Setenv(EnvPath, os.Getenv(EnvPath))
	store.Setenv(EnvHome, "/home/tester")

	var stdout, stderr bytes.Buffer
	o := Options{
		Name:   "hsh",
		Input:  NewStringReader(script),
		Env:    store,
		Config: config.Default(),
		Stdout: &stdout,
		Stderr: &stderr,
		Pid:    testPid,
	}
	for _, opt := range opts {
		opt(&o)
	}

	status := NewShell(o).Run()
	return scriptResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Status: status,
	}
}

func (r scriptResult) transcript() []byte {
	var out bytes.Buffer
	out.WriteString(r.Stdout)
	out.WriteString("--- stderr\n")
	out.WriteString(r.Stderr)
	fmt.Fprintf(&out, "--- status %d\n", r.Status)
	return out.Bytes()
}

func TestAllBuiltins(t *testing.T) {
	want := []string{"exit", "env", "help", "history", "setenv", "unsetenv", "cd", "alias"}
	assert.Equal(t, want, BuiltinNames())

	for name, b := range AllBuiltins {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, name, b.Name)
			assert.NotNil(t, b.Main)
			assert.NotEmpty(t, b.Use)
			assert.NotEmpty(t, b.Short)
		})
	}
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Script string
}

func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			result := runScript(t, tc.Script)
			g.Assert(t, tn, result.transcript())
		})
	}
}
