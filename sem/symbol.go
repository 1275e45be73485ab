package sem

import (
	"rolec/logging"
	"rolec/typing"
)

// Symbol represents a named type-level symbol: a type constructor, a family
// or a class
type Symbol struct {
	// Name is the name of the symbol (as it is referenced in source code)
	Name string

	// Kind is the kind of declaration that produced this symbol
	Kind typing.DeclKind

	// Arity is the number of parameters the symbol was declared with
	Arity int

	// Module is the name of the module that declares this symbol
	Module string

	// Position is the text position where this symbol is defined.  It is nil
	// for builtins.
	Position *logging.TextPosition

	// Context is the log context of the file defining this symbol
	Context *logging.LogContext
}

// IsType reports whether the symbol may appear as the head of a type
func (sym *Symbol) IsType() bool {
	return sym.Kind != typing.DeclClass
}
