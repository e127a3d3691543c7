package commands

import (
	"errors"

	"github.com/josephlewis42/hsh/core/proc"
)

// resolve finds the executable for argv[0], reporting the status to use if it
// can't be run.
func (s *Shell) resolve() (string, int, bool) {
	name := s.argv[0]
	searchPath := s.Env.Getenv(EnvPath)

	path, err := proc.LookPath(name, searchPath)
	switch {
	case err == nil:
		return path, 0, true

	case errors.Is(err, proc.ErrPermission) && proc.HasSeparator(name):
		// Literal paths are attempted anyway when there's a person at the
		// keyboard or nothing to search.
		if s.interactive || searchPath == "" {
			return name, 0, true
		}
	}

	s.log.Debug("resolve failed", "command", name, "path", searchPath, "error", err)
	return "", StatusNotFound, false
}

func (s *Shell) runExternal() Result {
	path, status, ok := s.resolve()
	if !ok {
		s.printErr("not found")
		s.status = status
		return Failed
	}
	s.path = path

	result, err := proc.Launch(s.path, s.argv, &proc.Attr{
		Env:            s.Env.Environ(),
		Stdin:          s.Stdin,
		Stdout:         s.Stdout,
		Stderr:         s.Stderr,
		CatchInterrupt: s.interactive,
	})

	var execErr *proc.ExecError
	switch {
	case errors.Is(err, proc.ErrStart):
		s.log.Warn("launch failed", "path", s.path, "error", err)
		s.printErr("can't fork")
		return Failed

	case errors.As(err, &execErr):
		s.status = execErr.Status()
		if errors.Is(execErr, proc.ErrPermission) {
			s.printErr("Permission denied")
		} else {
			s.printErr(execErr.Err.Error())
		}
		return Failed

	case err != nil:
		s.log.Warn("wait failed", "path", s.path, "error", err)
	}

	s.status = result.Status()
	s.log.Debug("child finished", "path", s.path, "result", result.String())
	if s.status != 0 {
		return Failed
	}
	return Continue
}
