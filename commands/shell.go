package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/hsh/core/alias"
	"github.com/josephlewis42/hsh/core/config"
	"github.com/josephlewis42/hsh/core/env"
	"github.com/josephlewis42/hsh/core/history"
	"github.com/josephlewis42/hsh/core/logger"
	"github.com/josephlewis42/hsh/core/shell"
)

const (
	EnvHome   = "HOME"
	EnvPWD    = "PWD"
	EnvOldPWD = "OLDPWD"
	EnvPath   = "PATH"
	EnvPrompt = "PS1"
	EnvUser   = "USER"

	DefaultName   = "hsh"
	DefaultPrompt = "$ "

	// StatusNotFound is reported when a command can't be resolved.
	StatusNotFound = 127
	// StatusUsage is reported for malformed builtin arguments.
	StatusUsage = 2
)

// Result is the outcome of dispatching one segment.
type Result int

const (
	// NotFound means no builtin matched and the command must be resolved
	// externally.
	NotFound Result = iota
	// Continue means the command ran successfully.
	Continue
	// Failed means the command ran and set a nonzero status.
	Failed
	// Terminate means the session must end.
	Terminate
)

func (r Result) String() string {
	switch r {
	case NotFound:
		return "not-found"
	case Continue:
		return "continue"
	case Failed:
		return "failed"
	case Terminate:
		return "terminate"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Options configure a new Shell.
type Options struct {
	// Name is the program name used to prefix error messages.
	Name string
	// Input supplies command lines.
	Input LineReader
	// Interactive enables the prompt and direct execution of non-executable
	// literal paths.
	Interactive bool

	// Env seeds the environment, the process environment is used if nil.
	Env *env.Store
	// Config supplies the prompt, aliases and limits. Defaults if nil.
	Config *config.Configuration
	// History records entered lines, an unpersisted log is used if nil.
	History *history.Log

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *slog.Logger
	// Pid is expanded for $$, defaults to the current process ID.
	Pid int
}

// Shell is a single interpreter session. All of its state is owned by the
// goroutine calling Run.
type Shell struct {
	Name string

	Env     *env.Store
	Aliases *alias.Table
	History *history.Log

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	input       LineReader
	interactive bool
	log         *slog.Logger
	pid         int

	prompt        string
	colorPrompt   bool
	aliasMaxDepth int

	// Per-segment state, reset before every dispatch. line is the segment
	// text before substitution.
	line string
	argv []string
	path string

	lineCount uint
	countLine bool
	status    int

	// Set by the exit builtin.
	terminate bool
	exitCode  int

	// Unconsumed segments of the last line read.
	pending []shell.Segment

	closed bool
}

// NewShell creates a session from opts.
func NewShell(opts Options) *Shell {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Shell{
		Name:          opts.Name,
		Env:           opts.Env,
		Aliases:       alias.NewTable(),
		History:       opts.History,
		Stdin:         opts.Stdin,
		Stdout:        opts.Stdout,
		Stderr:        opts.Stderr,
		input:         opts.Input,
		interactive:   opts.Interactive,
		log:           opts.Logger,
		pid:           opts.Pid,
		prompt:        cfg.Prompt,
		colorPrompt:   cfg.ColorPrompt,
		aliasMaxDepth: cfg.AliasMaxDepth,
	}

	if s.Name == "" {
		s.Name = DefaultName
	}
	if s.Env == nil {
		s.Env = env.NewStoreFromOS()
	}
	if s.History == nil {
		s.History = history.New(nil, "", cfg.HistoryMax)
	}
	if s.input == nil {
		s.input = NewStringReader("")
	}
	if s.Stdout == nil {
		s.Stdout = io.Discard
	}
	if s.Stderr == nil {
		s.Stderr = io.Discard
	}
	if s.log == nil {
		s.log = logger.NewNop()
	}
	if s.pid == 0 {
		s.pid = os.Getpid()
	}
	if s.prompt == "" {
		s.prompt = DefaultPrompt
	}

	for _, a := range cfg.Aliases {
		s.Aliases.Set(a.Name, a.Value)
	}
	s.log.Debug("session ready", "interactive", s.interactive, "aliases", s.Aliases.Len(), "env", s.Env.Len())

	return s
}

// LastStatus implements shell.Vars.
func (s *Shell) LastStatus() int {
	return s.status
}

// Pid implements shell.Vars.
func (s *Shell) Pid() int {
	return s.pid
}

// Getenv implements shell.Vars.
func (s *Shell) Getenv(name string) string {
	return s.Env.Getenv(name)
}

var _ shell.Vars = (*Shell)(nil)

// Run reads and executes commands until the input ends or exit is called. It
// returns the status the shell should exit with.
func (s *Shell) Run() int {
	defer s.Close()

	for {
		s.reset()

		segment, err := s.next()
		switch {
		case err == io.EOF:
			if s.interactive {
				fmt.Fprintln(s.Stdout)
			}
			return s.status
		case err != nil:
			s.log.Error("reading input", "error", err)
			return s.status
		}

		if s.execute(segment) == Terminate {
			return s.exitCode
		}
	}
}

// Close persists history and releases the input. It is safe to call more
// than once.
func (s *Shell) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var lastErr error
	s.log.Debug("saving history", "path", s.History.Path(), "lines", s.History.Len())
	if err := s.History.Save(); err != nil {
		s.log.Warn("saving history", "path", s.History.Path(), "error", err)
		lastErr = err
	}
	if s.input != nil {
		if err := s.input.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (s *Shell) reset() {
	s.line = ""
	s.argv = nil
	s.path = ""
}

// next returns the next buffered segment, reading a new line when the buffer
// is empty.
func (s *Shell) next() (shell.Segment, error) {
	for len(s.pending) == 0 {
		if s.interactive {
			s.input.SetPrompt(s.Prompt())
		}
		flush(s.Stdout)
		flush(s.Stderr)

		line, err := s.input.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			// Interrupt discards the partial line.
			continue
		case err != nil:
			return shell.Segment{}, err
		}

		s.History.Add(line)
		s.countLine = true
		s.pending = shell.SplitChain(shell.StripComments(line))
	}

	segment := s.pending[0]
	s.pending = s.pending[1:]
	return segment, nil
}

func flush(w io.Writer) {
	if f, ok := w.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}
}

// execute applies the chain policy to segment then dispatches it.
func (s *Shell) execute(segment shell.Segment) Result {
	if !shell.ShouldRun(segment.Op, s.status) {
		s.log.Debug("skipping segment", "op", segment.Op.String(), "status", s.status)
		return Continue
	}
	if shell.IsBlank(segment.Text) {
		return Continue
	}

	s.argv = s.tokenize(segment.Text)
	if len(s.argv) == 0 {
		return Continue
	}
	if s.countLine {
		s.lineCount++
		s.countLine = false
	}

	s.log.Debug("dispatch", "argv", s.argv, "op", segment.Op.String())
	result := s.runBuiltin()
	if result == NotFound {
		result = s.runExternal()
	}
	s.log.Debug("dispatched", "argv0", s.argv[0], "result", result, "status", s.status)
	return result
}

// tokenize substitutes variables, expands aliases in the leading word and
// splits the result into words.
func (s *Shell) tokenize(text string) []string {
	s.line = text

	text = shell.Substitute(text, s)
	text, outcome := s.Aliases.Expand(text, s.aliasMaxDepth, func(value string) string {
		return shell.Substitute(value, s)
	})
	if outcome == alias.Cycle || outcome == alias.DepthLimit {
		s.log.Debug("alias expansion stopped", "reason", outcome.String(), "line", text)
	}

	return shell.Fields(text)
}

func (s *Shell) runBuiltin() Result {
	builtin, ok := AllBuiltins[s.argv[0]]
	if !ok {
		return NotFound
	}

	s.status = builtin.Main(s, s.argv)
	switch {
	case s.terminate:
		return Terminate
	case s.status != 0:
		return Failed
	default:
		return Continue
	}
}

// requestExit ends the session after the current builtin returns.
func (s *Shell) requestExit(code int) {
	s.terminate = true
	s.exitCode = code
}

// printErr writes an error about the current command in the form
// "name: line: command: message".
func (s *Shell) printErr(msg string) {
	command := ""
	if len(s.argv) > 0 {
		command = s.argv[0]
	}
	fmt.Fprintf(s.Stderr, "%s: %d: %s: %s\n", s.Name, s.lineCount, command, msg)
}
