package commands

import (
	"fmt"
	"strings"
)

// Env prints the environment in the order it was defined.
func Env(s *Shell, argv []string) int {
	cmd := &SimpleCommand{
		Use:   "env",
		Short: "Print the environment.",
	}

	return cmd.Run(s, argv, func() int {
		for _, entry := range s.Env.Environ() {
			fmt.Fprintln(s.Stdout, entry)
		}
		return 0
	})
}

// Setenv defines or replaces an environment variable.
func Setenv(s *Shell, argv []string) int {
	if len(argv) != 3 {
		s.printErr("Incorrect number of arguments")
		return 1
	}

	name, value := argv[1], argv[2]
	if name == "" || strings.Contains(name, "=") {
		s.printErr("Invalid variable name: " + name)
		return 1
	}

	s.Env.Setenv(name, value)
	return 0
}

// Unsetenv removes environment variables, names that aren't set are ignored.
func Unsetenv(s *Shell, argv []string) int {
	if len(argv) < 2 {
		s.printErr("Too few arguments.")
		return 1
	}

	for _, name := range argv[1:] {
		s.Env.Unsetenv(name)
	}
	return 0
}

func init() {
	addBuiltin(&Builtin{
		Name:  "env",
		Use:   "env",
		Short: "Print the environment.",
		Main:  Env,
	})
	addBuiltin(&Builtin{
		Name:  "setenv",
		Use:   "setenv NAME VALUE",
		Short: "Set an environment variable.",
		Main:  Setenv,
	})
	addBuiltin(&Builtin{
		Name:  "unsetenv",
		Use:   "unsetenv NAME ...",
		Short: "Remove environment variables.",
		Main:  Unsetenv,
	})
}
