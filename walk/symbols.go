package walk

import (
	"fmt"
	"rolec/logging"
	"rolec/sem"
	"rolec/syntax"
	"rolec/typing"
)

// declKinds maps the kinds of type definitions to declaration kinds
var declKinds = map[int]typing.DeclKind{
	syntax.DefData:    typing.DeclData,
	syntax.DefNewtype: typing.DeclNewtype,
	syntax.DefFamily:  typing.DeclFamily,
	syntax.DefClass:   typing.DeclClass,
}

// DeclareSymbols defines every name declared in the file in its package's
// symbol table.  This must happen for all files of a package before any of
// them are walked since definitions may refer to each other in any order.
func (w *Walker) DeclareSymbols() bool {
	ok := true

	for _, td := range w.SrcFile.AST.TypeDefs {
		sym := &sem.Symbol{
			Name:     td.Name.Name,
			Kind:     declKinds[td.Kind],
			Arity:    len(td.Params),
			Position: td.Name.Pos,
			Context:  w.SrcFile.LogContext,
		}

		if !w.define(sym) {
			ok = false
		}
	}

	return ok
}

// define defines a symbol in the package's table if possible.  It returns
// false and logs an appropriate error if it can't.
func (w *Walker) define(sym *sem.Symbol) bool {
	if err := w.SrcFile.Parent.Symbols.Define(sym); err != nil {
		w.logError(err.Error(), logging.LMKName, sym.Position)
		return false
	}

	return true
}

// lookup looks up a symbol and returns it if it exists
func (w *Walker) lookup(name string) (*sem.Symbol, bool) {
	return w.SrcFile.Parent.Symbols.Lookup(name)
}

// lookupClass looks up a symbol that must be a class
func lookupClass(table *sem.SymbolTable, name *syntax.Ident) (*sem.Symbol, *TypeError) {
	sym, ok := table.Lookup(name.Name)
	if !ok {
		return nil, &TypeError{
			Message: fmt.Sprintf("undefined class `%s`", name.Name),
			Kind:    logging.LMKName,
			Pos:     name.Pos,
		}
	}

	if sym.Kind != typing.DeclClass {
		return nil, &TypeError{
			Message: fmt.Sprintf("`%s` is a %s, not a class", name.Name, sym.Kind.Repr()),
			Kind:    logging.LMKUsage,
			Pos:     name.Pos,
		}
	}

	return sym, nil
}
