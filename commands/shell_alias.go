package commands

import (
	"fmt"
	"strings"

	"github.com/anmitsu/go-shlex"
	"github.com/josephlewis42/hsh/core/alias"
)

// Alias lists, prints or defines aliases.
//
// Arguments are split again from the segment text with shell quoting so
// values may contain spaces: alias ll='ls -l'
func Alias(s *Shell, argv []string) int {
	words, err := shlex.Split(s.line, true)
	if err != nil {
		s.printErr(err.Error())
		return StatusUsage
	}
	var args []string
	if len(words) > 1 {
		args = words[1:]
	}

	if len(args) == 0 {
		for _, entry := range s.Aliases.Entries() {
			fmt.Fprintln(s.Stdout, entry)
		}
		return 0
	}

	status := 0
	for _, arg := range args {
		name, value, define := strings.Cut(arg, "=")
		switch {
		case name == "":
			s.printErr(fmt.Sprintf("%s not found", arg))
			status = 1

		case define:
			s.Aliases.Set(name, value)

		default:
			value, ok := s.Aliases.Lookup(name)
			if !ok {
				s.printErr(fmt.Sprintf("%s not found", name))
				status = 1
				continue
			}
			fmt.Fprintln(s.Stdout, alias.Entry{Name: name, Value: value})
		}
	}
	return status
}

func init() {
	addBuiltin(&Builtin{
		Name:  "alias",
		Use:   "alias [name[=value] ...]",
		Short: "Define or display aliases.",
		Main:  Alias,
	})
}
