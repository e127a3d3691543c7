package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	return executeIn(t, t.TempDir(), args...)
}

// executeIn runs the root command with HOME set to home.
func executeIn(t *testing.T, home string, args ...string) (string, string, int) {
	t.Helper()

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgPath, logLevel, commandString, exitCode = "", "", "", 0
		clearHistory = false
		rootCmd.Flags().Lookup("command").Changed = false
	})

	require.NoError(t, rootCmd.Execute())
	return stdout.String(), stderr.String(), exitCode
}

func TestRoot_command(t *testing.T) {
	_, _, code := execute(t, "-c", "setenv A 1 && exit 3")
	assert.Equal(t, 3, code)

	saved, err := os.ReadFile(filepath.Join(os.Getenv("HOME"), ".hsh_history"))
	require.NoError(t, err)
	assert.Equal(t, "setenv A 1 && exit 3\n", string(saved))
}

func TestRoot_script(t *testing.T) {
	script := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(script, []byte("setenv A\nexit\n"), 0600))

	_, stderr, code := execute(t, script)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, ": 1: setenv: Incorrect number of arguments\n")
}

func TestRoot_missingScript(t *testing.T) {
	_, stderr, code := execute(t, "/nonexistent/script.sh")
	assert.Equal(t, 127, code)
	assert.Contains(t, stderr, ": 0: Can't open /nonexistent/script.sh\n")
}

func TestBuiltinsCommand(t *testing.T) {
	stdout, _, _ := execute(t, "builtins")
	assert.Contains(t, stdout, "alias ")
	assert.Contains(t, stdout, "unsetenv ")
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hsh")
	_, stderr, _ := execute(t, "init", "--config", dir)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.Contains(t, stderr, "Writing")
}

func TestHistoryCommand(t *testing.T) {
	home := t.TempDir()
	histFile := filepath.Join(home, ".hsh_history")
	require.NoError(t, os.WriteFile(histFile, []byte("setenv A 1\ncd /tmp\n"), 0600))

	stdout, _, _ := executeIn(t, home, "history")
	assert.Equal(t, "    0  setenv A 1\n    1  cd /tmp\n", stdout)

	t.Run("clear", func(t *testing.T) {
		executeIn(t, home, "history", "--clear")

		saved, err := os.ReadFile(histFile)
		require.NoError(t, err)
		assert.Empty(t, saved)
	})

	t.Run("disabled", func(t *testing.T) {
		configDir := filepath.Join(home, "cfg")
		require.NoError(t, os.MkdirAll(configDir, 0700))
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("history_file: ''\n"), 0600))

		t.Setenv("HOME", home)
		rootCmd.SetArgs([]string{"history", "--config", configDir})
		rootCmd.SetOut(io.Discard)
		rootCmd.SetErr(io.Discard)
		t.Cleanup(func() {
			rootCmd.SetArgs(nil)
			rootCmd.SetOut(nil)
			rootCmd.SetErr(nil)
			cfgPath = ""
		})
		assert.Error(t, rootCmd.Execute())
	})
}
