// Package shell turns raw input lines into the segments and words the
// interpreter dispatches.
//
// Processing happens in stages, each a pure function of its input:
//
//  1. StripComments removes text from a word-initial '#' to the end of line.
//
//  2. SplitChain breaks the line into segments at the ';', '&&' and '||'
//     operators, recording which operator joined each segment to the one
//     before it. The split is not quote aware.
//
//  3. Before a segment runs, ShouldRun decides from the previous exit status
//     whether it runs at all.
//
//  4. Substitute expands $?, $$ and $NAME references.
//
//  5. Fields splits the result into argv on whitespace.
package shell

import (
	"strconv"
	"strings"
	"unicode"
)

// Op is the operator joining a segment to the previous one.
type Op int

const (
	// OpNone marks the first segment of a line.
	OpNone Op = iota
	// OpSequential is ';', the segment always runs.
	OpSequential
	// OpAnd is '&&', the segment runs if the previous one succeeded.
	OpAnd
	// OpOr is '||', the segment runs if the previous one failed.
	OpOr
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return ""
	case OpSequential:
		return ";"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	default:
		return "Op(" + strconv.Itoa(int(o)) + ")"
	}
}

// Segment is one command of a chained line.
type Segment struct {
	Text string
	Op   Op
}

// StripComments truncates line at the first '#' that starts a word.
func StripComments(line string) string {
	for i, r := range line {
		if r != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i]
		}
	}
	return line
}

// SplitChain splits line into segments at each ';', '&&' and '||'. A single
// '&' or '|' is ordinary text. The first segment has OpNone.
func SplitChain(line string) []Segment {
	var out []Segment
	op := OpNone
	start := 0
	for i := 0; i < len(line); i++ {
		var next Op
		width := 1
		switch {
		case line[i] == ';':
			next = OpSequential
		case strings.HasPrefix(line[i:], "&&"):
			next, width = OpAnd, 2
		case strings.HasPrefix(line[i:], "||"):
			next, width = OpOr, 2
		default:
			continue
		}

		out = append(out, Segment{Text: line[start:i], Op: op})
		op = next
		i += width - 1
		start = i + 1
	}
	return append(out, Segment{Text: line[start:], Op: op})
}

// ShouldRun reports whether a segment joined by op runs after a command that
// exited with lastStatus.
func ShouldRun(op Op, lastStatus int) bool {
	switch op {
	case OpAnd:
		return lastStatus == 0
	case OpOr:
		return lastStatus != 0
	default:
		return true
	}
}

// Vars supplies the values Substitute expands.
type Vars interface {
	// LastStatus is the exit status of the previous command, used for $?.
	LastStatus() int
	// Pid is the shell's process ID, used for $$.
	Pid() int
	// Getenv returns the value for $NAME, empty if unset.
	Getenv(name string) string
}

// Substitute expands $?, $$ and $NAME in text. A '$' that doesn't start one
// of those forms is kept as is.
func Substitute(text string, vars Vars) string {
	if !strings.Contains(text, "$") {
		return text
	}

	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] != '$' || i+1 >= len(text) {
			sb.WriteByte(text[i])
			continue
		}

		switch next := text[i+1]; {
		case next == '?':
			sb.WriteString(strconv.Itoa(vars.LastStatus()))
			i++
		case next == '$':
			sb.WriteString(strconv.Itoa(vars.Pid()))
			i++
		case isNameByte(next):
			end := i + 1
			for end < len(text) && isNameByte(text[end]) {
				end++
			}
			sb.WriteString(vars.Getenv(text[i+1 : end]))
			i = end - 1
		default:
			sb.WriteByte('$')
		}
	}
	return sb.String()
}

func isNameByte(b byte) bool {
	return b == '_' ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}

// Fields splits text into words on runs of whitespace.
func Fields(text string) []string {
	return strings.FieldsFunc(text, unicode.IsSpace)
}

// IsBlank reports whether text contains only whitespace.
func IsBlank(text string) bool {
	return strings.TrimFunc(text, unicode.IsSpace) == ""
}
