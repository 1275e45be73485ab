package walk

import (
	"fmt"
	"rolec/logging"
	"rolec/sem"
	"rolec/syntax"
	"rolec/typing"
)

// typeLowerer converts type expressions into data types
type typeLowerer struct {
	table *sem.SymbolTable

	// bound holds the type variables in scope.  If it is nil, every variable
	// is accepted and stands for a rigid type.
	bound map[string]struct{}

	// report is called for every error encountered
	report func(te *TypeError)
}

// lowerType lowers a type expression.  All errors inside the expression are
// reported before it returns.
func (tl *typeLowerer) lowerType(texpr syntax.TypeExpr) (typing.DataType, bool) {
	switch v := texpr.(type) {
	case *syntax.ArrowType:
		arg, aok := tl.lowerType(v.Arg)
		result, rok := tl.lowerType(v.Result)
		if !aok || !rok {
			return nil, false
		}

		return &typing.FuncType{Arg: arg, Result: result}, true
	case *syntax.TypeApp:
		args, ok := tl.lowerTypes(v.Args)

		if v.IsVar {
			if !tl.checkVar(v.Head) || !ok {
				return nil, false
			}

			tv := &typing.TypeVar{Name: v.Head.Name}
			if len(args) == 0 {
				return tv, true
			}

			return &typing.VarApp{Head: tv, Args: args}, true
		}

		sym, sok := tl.lookupType(v.Head, len(v.Args))
		if !sok || !ok {
			return nil, false
		}

		if sym.Kind == typing.DeclFamily {
			return &typing.FamilyApp{Name: sym.Name, Args: args}, true
		}

		return &typing.ConType{Name: sym.Name, Args: args}, true
	}

	// unreachable: the parser produces no other type expressions
	return nil, false
}

// lowerTypes lowers a list of type expressions
func (tl *typeLowerer) lowerTypes(texprs []syntax.TypeExpr) ([]typing.DataType, bool) {
	if len(texprs) == 0 {
		return nil, true
	}

	ok := true
	dts := make([]typing.DataType, len(texprs))
	for i, texpr := range texprs {
		if dt, tok := tl.lowerType(texpr); tok {
			dts[i] = dt
		} else {
			ok = false
		}
	}

	return dts, ok
}

// checkVar checks that a type variable is in scope
func (tl *typeLowerer) checkVar(name *syntax.Ident) bool {
	if tl.bound == nil {
		return true
	}

	if _, ok := tl.bound[name.Name]; ok {
		return true
	}

	tl.report(&TypeError{
		Message: fmt.Sprintf("undefined type variable `%s`", name.Name),
		Kind:    logging.LMKName,
		Pos:     name.Pos,
	})

	return false
}

// lookupType resolves the head of a type application given its number of
// arguments
func (tl *typeLowerer) lookupType(name *syntax.Ident, given int) (*sem.Symbol, bool) {
	sym, ok := tl.table.Lookup(name.Name)
	if !ok {
		tl.report(&TypeError{
			Message: fmt.Sprintf("undefined type constructor `%s`", name.Name),
			Kind:    logging.LMKName,
			Pos:     name.Pos,
		})

		return nil, false
	}

	if !sym.IsType() {
		tl.report(&TypeError{
			Message: fmt.Sprintf("class `%s` cannot be used as a type", name.Name),
			Kind:    logging.LMKUsage,
			Pos:     name.Pos,
		})

		return nil, false
	}

	if given > sym.Arity {
		tl.report(&TypeError{
			Message: fmt.Sprintf("`%s` takes %d type arguments but was given %d", name.Name, sym.Arity, given),
			Kind:    logging.LMKUsage,
			Pos:     name.Pos,
		})

		return nil, false
	}

	return sym, true
}

// lowerConstraint lowers a constraint in a constructor context
func (tl *typeLowerer) lowerConstraint(ce *syntax.ConstraintExpr) (*typing.Constraint, bool) {
	args, ok := tl.lowerTypes(ce.Args)

	if ce.Equality {
		if !ok {
			return nil, false
		}

		return &typing.Constraint{Equality: true, Args: args}, true
	}

	sym, te := lookupClass(tl.table, ce.Class)
	if te != nil {
		tl.report(te)
		return nil, false
	}

	if len(ce.Args) != sym.Arity {
		tl.report(&TypeError{
			Message: fmt.Sprintf("class `%s` takes %d type arguments but was given %d", sym.Name, sym.Arity, len(ce.Args)),
			Kind:    logging.LMKUsage,
			Pos:     ce.Pos,
		})

		return nil, false
	}

	if !ok {
		return nil, false
	}

	return &typing.Constraint{Class: sym.Name, Args: args}, true
}

// -----------------------------------------------------------------------------

// LowerType lowers a standalone type expression such as the side of a
// coercion query.  Type variables are accepted and treated as rigid.  The
// first error encountered is returned.
func LowerType(texpr syntax.TypeExpr, table *sem.SymbolTable) (typing.DataType, error) {
	var first *TypeError
	tl := &typeLowerer{
		table: table,
		report: func(te *TypeError) {
			if first == nil {
				first = te
			}
		},
	}

	dt, ok := tl.lowerType(texpr)
	if !ok {
		return nil, first
	}

	return dt, nil
}

// ParseAndLowerType parses and lowers a type written as a string
func ParseAndLowerType(src string, table *sem.SymbolTable) (typing.DataType, error) {
	texpr, err := syntax.ParseType(src)
	if err != nil {
		return nil, err
	}

	return LowerType(texpr, table)
}
