// Copyright © 2025 The lispindent authors

// Package classify maps symbol names to display categories for syntax
// highlighting.  Classification is independent of the indentation engine:
// the highlighter consumes it, the engine does not.  The symbol table is an
// injected capability rather than live introspection of a runtime, and
// alias chains resolve through an explicit, cycle-guarded indirection walk.
package classify

// Kind is the closed set of display categories.
type Kind int

const (
	Unbound Kind = iota
	SpecialVariable
	SpecialForm
	Macro
	FunctionPrimitive
	FunctionLibrary
)

func (k Kind) String() string {
	switch k {
	case SpecialVariable:
		return "special-variable"
	case SpecialForm:
		return "special-form"
	case Macro:
		return "macro"
	case FunctionPrimitive:
		return "primitive"
	case FunctionLibrary:
		return "function"
	default:
		return "unbound"
	}
}

// Entry describes one symbol table binding.  A non-empty AliasFor redirects
// classification to another name; Kind is ignored for aliases.
type Entry struct {
	Kind     Kind
	AliasFor string
}

// SymbolTable is the injected lookup capability.
type SymbolTable interface {
	Lookup(name string) (Entry, bool)
}

// MapTable is a SymbolTable backed by a plain map.
type MapTable map[string]Entry

// Lookup implements SymbolTable.
func (t MapTable) Lookup(name string) (Entry, bool) {
	e, ok := t[name]
	return e, ok
}

// Classifier resolves names against a symbol table.
type Classifier struct {
	table SymbolTable
}

// New returns a classifier over table.  A nil table classifies everything
// as Unbound.
func New(table SymbolTable) *Classifier {
	return &Classifier{table: table}
}

// Classify returns the display category for name.  Alias redirections are
// followed through a visited set; a chain that revisits a name, or ends at
// a name the table does not know, yields Unbound.
func (c *Classifier) Classify(name string) Kind {
	if c == nil || c.table == nil {
		return Unbound
	}
	seen := map[string]bool{}
	for !seen[name] {
		seen[name] = true
		e, ok := c.table.Lookup(name)
		if !ok {
			return Unbound
		}
		if e.AliasFor == "" {
			return e.Kind
		}
		name = e.AliasFor
	}
	return Unbound
}
