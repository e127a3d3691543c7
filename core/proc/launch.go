// Package proc resolves command words to executables and runs them as child
// processes.
package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// ErrStart is wrapped by errors from Launch when the child process could not
// be created at all (out of processes or memory). No program ran and the
// caller should leave its exit status alone.
var ErrStart = errors.New("cannot create process")

// ExecError is returned when the child was created but the program could not
// be executed.
type ExecError struct {
	Path string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// Status is the exit status a shell reports for the failure: 126 when
// permission was denied, 1 otherwise.
func (e *ExecError) Status() int {
	if errors.Is(e.Err, syscall.EACCES) || errors.Is(e.Err, syscall.EPERM) {
		return 126
	}
	return 1
}

// Result describes how a child process terminated.
type Result struct {
	// Exited is true if the process called exit, Code holds its value.
	Exited bool
	Code   int
	// Signal is set when the process was killed by a signal.
	Signal syscall.Signal
}

// Status converts the result to a shell exit status, signals are reported as
// 128 plus the signal number.
func (r Result) Status() int {
	if r.Exited {
		return r.Code
	}
	return 128 + int(r.Signal)
}

func (r Result) String() string {
	if r.Exited {
		return fmt.Sprintf("exited %d", r.Code)
	}
	return fmt.Sprintf("killed by %v", r.Signal)
}

// Attr holds the attributes of a launched process.
type Attr struct {
	// Env is the environment of the child, in key=value form.
	Env []string
	// Dir is the working directory, empty for the caller's.
	Dir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// CatchInterrupt stops SIGINT from terminating the caller while it waits.
	// The child keeps the default disposition.
	CatchInterrupt bool
}

// Launch runs the executable at path with argv and blocks until it
// terminates.
func Launch(path string, argv []string, attr *Attr) (Result, error) {
	if attr == nil {
		attr = &Attr{}
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    attr.Env,
		Dir:    attr.Dir,
		Stdin:  attr.Stdin,
		Stdout: attr.Stdout,
		Stderr: attr.Stderr,
	}
	if cmd.Env == nil {
		cmd.Env = []string{}
	}

	if attr.CatchInterrupt {
		interrupts := make(chan os.Signal, 1)
		signal.Notify(interrupts, os.Interrupt)
		defer signal.Stop(interrupts)
	}

	if err := cmd.Start(); err != nil {
		return Result{}, classifyStartError(path, err)
	}

	waitErr := cmd.Wait()
	result := resultFromState(cmd.ProcessState)

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return result, fmt.Errorf("wait %s: %w", path, waitErr)
	}
	return result, nil
}

func resultFromState(state *os.ProcessState) Result {
	if state == nil {
		return Result{Exited: true, Code: 1}
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Result{Signal: ws.Signal()}
	}
	return Result{Exited: true, Code: state.ExitCode()}
}

func classifyStartError(path string, err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) && (errno == syscall.EAGAIN || errno == syscall.ENOMEM) {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}

	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return &ExecError{Path: path, Err: err}
}
