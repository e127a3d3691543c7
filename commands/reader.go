package commands

import (
	"bufio"
	"io"
	"strings"

	"github.com/abiosoft/readline"
)

// LineReader supplies the shell with one line of input at a time.
//
// Readline returns io.EOF once input is exhausted and readline.ErrInterrupt
// if the line was abandoned with Ctrl-C.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// TerminalOptions configure NewTerminalReader.
type TerminalOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// HistoryLimit is the number of lines kept for recall with the arrow keys.
	HistoryLimit int
	// Recall seeds the in-memory recall buffer, oldest first. Persistence is
	// handled by the history log.
	Recall []string

	IsTerminal func() bool
	GetWidth   func() int
}

// NewTerminalReader creates a line editor for interactive sessions.
func NewTerminalReader(opts TerminalOptions) (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdout:          opts.Stdout,
		Stderr:          opts.Stderr,
		HistoryLimit:    opts.HistoryLimit,
		InterruptPrompt: "^C",
		FuncIsTerminal:  opts.IsTerminal,
		FuncGetWidth:    opts.GetWidth,
	}

	if opts.Stdin != nil {
		cfg.Stdin = readline.NewCancelableStdin(opts.Stdin)
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	for _, line := range opts.Recall {
		if err := rl.SaveHistory(line); err != nil {
			rl.Close()
			return nil, err
		}
	}

	return rl, nil
}

// scriptReader reads lines from a non-interactive source such as a file or
// pipe. It never prompts.
type scriptReader struct {
	r      *bufio.Reader
	closer io.Closer
}

var _ LineReader = (*scriptReader)(nil)

// NewScriptReader reads commands from r. If r is an io.Closer it's closed
// with the reader.
func NewScriptReader(r io.Reader) LineReader {
	sr := &scriptReader{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		sr.closer = c
	}
	return sr
}

// NewStringReader reads commands from a string, as given to -c.
func NewStringReader(commands string) LineReader {
	return NewScriptReader(strings.NewReader(commands))
}

func (*scriptReader) SetPrompt(string) {}

func (s *scriptReader) Readline() (string, error) {
	line, err := s.r.ReadString('\n')
	switch {
	case err == io.EOF && line == "":
		return "", io.EOF
	case err != nil && err != io.EOF:
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (s *scriptReader) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
