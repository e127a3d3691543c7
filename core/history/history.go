// Package history keeps the list of lines entered into the shell and
// persists it between sessions.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// DefaultMax is the number of lines retained when no limit is configured.
const DefaultMax = 4096

// Log is an append-only list of input lines capped at Max entries.
type Log struct {
	fs    afero.Fs
	path  string
	max   int
	lines []string
}

// New creates an empty log backed by path on fs. A max of zero or less uses
// DefaultMax. An empty path gives a log that is never persisted.
func New(fs afero.Fs, path string, max int) *Log {
	if max <= 0 {
		max = DefaultMax
	}
	return &Log{fs: fs, path: path, max: max}
}

// Path returns the backing file path.
func (l *Log) Path() string {
	return l.path
}

// Load replaces the in-memory log with the contents of the backing file. A
// missing file is not an error.
func (l *Log) Load() error {
	if l.path == "" {
		return nil
	}

	fd, err := l.fs.Open(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("open history: %w", err)
	}
	defer fd.Close()

	lines, err := ReadLines(fd)
	if err != nil {
		return fmt.Errorf("read history %q: %w", l.path, err)
	}
	l.lines = nil
	for _, line := range lines {
		l.Add(line)
	}
	return nil
}

// ReadLines reads newline separated, non-empty lines from r.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}

// Add appends a line, dropping the oldest entries past the cap. Trailing
// newlines are removed and blank lines are ignored.
func (l *Log) Add(line string) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return
	}
	l.lines = append(l.lines, line)
	if over := len(l.lines) - l.max; over > 0 {
		l.lines = append([]string(nil), l.lines[over:]...)
	}
}

// Lines returns a copy of the retained lines, oldest first.
func (l *Log) Lines() []string {
	return append([]string(nil), l.lines...)
}

// Len returns the number of retained lines.
func (l *Log) Len() int {
	return len(l.lines)
}

// Clear drops all retained lines.
func (l *Log) Clear() {
	l.lines = nil
}

// Save rewrites the backing file with the retained lines.
func (l *Log) Save() error {
	if l.path == "" {
		return nil
	}

	fd, err := l.fs.OpenFile(l.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	w := bufio.NewWriter(fd)
	for _, line := range l.lines {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		fd.Close()
		return fmt.Errorf("write history %q: %w", l.path, err)
	}
	return fd.Close()
}
