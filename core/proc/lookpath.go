package proc

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is the error resulting if a path search failed to find an
	// executable file.
	ErrNotFound = exec.ErrNotFound

	// ErrPermission is returned when a file exists but isn't an executable
	// regular file.
	ErrPermission = fs.ErrPermission
)

func findExecutable(file string) error {
	d, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}
	if m := d.Mode(); m.IsRegular() && m&0111 != 0 {
		return nil
	}
	return ErrPermission
}

// HasSeparator reports whether a command word names a path rather than
// something to search for.
func HasSeparator(file string) bool {
	return strings.Contains(file, "/")
}

// LookPath searches for an executable named file in the colon separated
// directories of path. If file contains a slash, it is tried directly and
// path is not consulted. The result may be an absolute path or a path
// relative to the current directory, relative results always contain a slash.
func LookPath(file, path string) (string, error) {
	if HasSeparator(file) {
		if err := findExecutable(file); err != nil {
			return "", err
		}
		return file, nil
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if !HasSeparator(candidate) {
			candidate = "./" + candidate
		}
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}
