package commands

import (
	"fmt"
	"io"
	"sort"

	getopt "github.com/pborman/getopt/v2"
)

// BuiltinFunc runs a builtin in the current session and returns its exit
// status. argv[0] is the builtin's name.
type BuiltinFunc = func(s *Shell, argv []string) int

// Builtin is a command implemented inside the shell.
type Builtin struct {
	Name string
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string
	Main  BuiltinFunc
}

// AllBuiltins holds all registered builtins by name.
var AllBuiltins = make(map[string]*Builtin)

func addBuiltin(b *Builtin) {
	AllBuiltins[b.Name] = b
}

// builtinOrder is the order builtins are listed in.
var builtinOrder = []string{"exit", "env", "help", "history", "setenv", "unsetenv", "cd", "alias"}

// BuiltinNames returns the names of all builtins in listing order. Builtins
// missing from the listing order come last, sorted.
func BuiltinNames() []string {
	var out, rest []string
	for _, name := range builtinOrder {
		if _, ok := AllBuiltins[name]; ok {
			out = append(out, name)
		}
	}
	for name := range AllBuiltins {
		if !contains(builtinOrder, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (c *SimpleCommand) Flags() *getopt.Set {
	if c.flags == nil {
		c.flags = getopt.New()
	}

	return c.flags
}

// PrintHelp writes help for the command to the given writer.
func (c *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, c.Use)
	fmt.Fprintln(w, c.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	c.Flags().PrintOptions(w)
}

// Run parses argv and calls the callback if flag parsing was successful.
// Malformed flags report StatusUsage.
func (c *SimpleCommand) Run(s *Shell, argv []string, callback func() int) int {
	opts := c.Flags()

	// Add help flag if not overridden.
	if c.ShowHelp == nil {
		c.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(argv, nil); err != nil {
		s.log.Debug("invalid invocation", "argv", argv, "error", err)
		s.printErr(err.Error())
		return StatusUsage
	}

	if *c.ShowHelp {
		c.PrintHelp(s.Stdout)
		return 0
	}

	return callback()
}
