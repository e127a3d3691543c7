package commands

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var exitCodePattern = regexp.MustCompile(`^\+?[0-9]+$`)

// parseExitCode accepts an optionally signed decimal that fits in 32 bits.
func parseExitCode(arg string) (int, bool) {
	if !exitCodePattern.MatchString(arg) {
		return 0, false
	}
	code, err := strconv.ParseInt(strings.TrimPrefix(arg, "+"), 10, 32)
	if err != nil {
		return 0, false
	}
	return int(code), true
}

// Exit ends the session with the given status, or the last status if none is
// given.
func Exit(s *Shell, argv []string) int {
	if len(argv) < 2 {
		s.requestExit(s.status)
		return s.status
	}

	code, ok := parseExitCode(argv[1])
	if !ok {
		s.printErr("Illegal number: " + argv[1])
		return StatusUsage
	}

	s.requestExit(code)
	return code
}

// Cd changes the working directory of the shell.
func Cd(s *Shell, argv []string) int {
	if len(argv) > 2 {
		s.printErr("too many arguments")
		return 1
	}

	prev, err := os.Getwd()
	if err != nil {
		prev = s.Env.Getenv(EnvPWD)
	}

	var target string
	printTarget := false
	switch {
	case len(argv) == 1:
		target = s.Env.Getenv(EnvHome)
		if target == "" {
			target = "/"
		}

	case argv[1] == "-":
		oldpwd, ok := s.Env.LookupEnv(EnvOldPWD)
		if !ok || oldpwd == "" {
			fmt.Fprintln(s.Stdout, prev)
			return 0
		}
		target = oldpwd
		printTarget = true

	default:
		target = argv[1]
	}

	if err := os.Chdir(target); err != nil {
		s.log.Debug("chdir failed", "dir", target, "error", err)
		s.printErr("can't cd to " + target)
		return StatusUsage
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = target
	}
	if printTarget {
		fmt.Fprintln(s.Stdout, wd)
	}

	s.Env.Setenv(EnvOldPWD, prev)
	s.Env.Setenv(EnvPWD, wd)
	return 0
}

// History prints or clears the history log.
func History(s *Shell, argv []string) int {
	cmd := &SimpleCommand{
		Use:   "history [-c]",
		Short: "Display or clear the command history.",
	}
	clearAll := cmd.Flags().Bool('c', "clear the history")

	return cmd.Run(s, argv, func() int {
		if *clearAll {
			s.History.Clear()
			return 0
		}

		for i, line := range s.History.Lines() {
			fmt.Fprintf(s.Stdout, "%5d  %s\n", i, line)
		}
		return 0
	})
}

// Help describes the builtins.
func Help(s *Shell, argv []string) int {
	if len(argv) < 2 {
		fmt.Fprintf(s.Stdout, "%s shell builtins:\n\n", s.Name)
		for _, name := range BuiltinNames() {
			b := AllBuiltins[name]
			fmt.Fprintf(s.Stdout, "  %-32s %s\n", b.Use, b.Short)
		}
		return 0
	}

	status := 0
	for _, topic := range argv[1:] {
		b, ok := AllBuiltins[topic]
		if !ok {
			s.printErr(fmt.Sprintf("no help topics match '%s'", topic))
			status = 1
			continue
		}
		fmt.Fprintf(s.Stdout, "%s: %s\n    %s\n", b.Name, b.Use, b.Short)
	}
	return status
}

func init() {
	addBuiltin(&Builtin{
		Name:  "exit",
		Use:   "exit [n]",
		Short: "Exit the shell with status n, or the last status.",
		Main:  Exit,
	})
	addBuiltin(&Builtin{
		Name:  "cd",
		Use:   "cd [dir|-]",
		Short: "Change the working directory.",
		Main:  Cd,
	})
	addBuiltin(&Builtin{
		Name:  "history",
		Use:   "history [-c]",
		Short: "Display or clear the command history.",
		Main:  History,
	})
	addBuiltin(&Builtin{
		Name:  "help",
		Use:   "help [topic ...]",
		Short: "Display information about builtin commands.",
		Main:  Help,
	})
}
