// Package alias implements the shell alias table and leading-word expansion.
package alias

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultMaxDepth bounds alias expansion when no explicit limit is configured.
const DefaultMaxDepth = 10

// Entry is a single alias definition.
type Entry struct {
	Name  string
	Value string
}

// String formats the entry the way the alias builtin lists it.
func (e Entry) String() string {
	return fmt.Sprintf("%s='%s'", e.Name, e.Value)
}

// Table holds aliases in definition order.
type Table struct {
	entries []Entry
	index   map[string]int
}

// NewTable creates an empty alias table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Set defines or redefines an alias. Redefinitions keep their position.
func (t *Table) Set(name, value string) {
	if i, ok := t.index[name]; ok {
		t.entries[i].Value = value
		return
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Value: value})
}

// Lookup returns the value of the named alias.
func (t *Table) Lookup(name string) (string, bool) {
	i, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.entries[i].Value, true
}

// Entries returns a copy of the aliases in definition order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of defined aliases.
func (t *Table) Len() int {
	return len(t.entries)
}

// Outcome describes why Expand stopped.
type Outcome int

const (
	// Unchanged means the leading word was not an alias.
	Unchanged Outcome = iota
	// Expanded means expansion ran until the leading word was not an alias.
	Expanded
	// Cycle means an alias name came up a second time.
	Cycle
	// DepthLimit means the maximum number of expansions was reached.
	DepthLimit
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Expanded:
		return "expanded"
	case Cycle:
		return "cycle"
	case DepthLimit:
		return "depth-limit"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Expand replaces the leading word of line with its alias value until the
// leading word is no longer an alias, a name repeats or maxDepth expansions
// have happened. substitute, if non-nil, is applied to each inserted value.
//
// None of the stopping conditions are errors; the line is returned in the
// last form reached.
func (t *Table) Expand(line string, maxDepth int, substitute func(string) string) (string, Outcome) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	outcome := Unchanged
	seen := make(map[string]bool)
	for depth := 0; ; depth++ {
		word, rest := SplitLeadingWord(line)
		if word == "" {
			return line, outcome
		}

		value, ok := t.Lookup(word)
		switch {
		case !ok:
			return line, outcome
		case seen[word]:
			return line, Cycle
		case depth >= maxDepth:
			return line, DepthLimit
		}

		seen[word] = true
		if substitute != nil {
			value = substitute(value)
		}
		line = value + rest
		outcome = Expanded
	}
}

// SplitLeadingWord returns the first whitespace-delimited word of line and
// everything after it, including the separating whitespace.
func SplitLeadingWord(line string) (word, rest string) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, unicode.IsSpace)
	if end < 0 {
		return trimmed, ""
	}
	return trimmed[:end], trimmed[end:]
}
