package typing

import (
	"errors"
	"fmt"
	"rolec/logging"
)

// TypeConstructor is one node of the type graph: a constructor together with
// the usage sites of each of its parameters
type TypeConstructor struct {
	Name   string
	Params []string

	// Usages has one entry per parameter
	Usages [][]*Usage

	// Decl is the declaration the constructor was built from.  It is nil for
	// constructors registered directly with usage sites.
	Decl *Decl
}

// Arity is the number of parameters of the constructor
func (tc *TypeConstructor) Arity() int {
	return len(tc.Params)
}

func (tc *TypeConstructor) Repr() string {
	s := tc.Name
	for i, p := range tc.Params {
		s += fmt.Sprintf(" %s:%s", p, reprUsages(tc.Usages[i]))
	}

	return s
}

func (tc *TypeConstructor) pos() *logging.TextPosition {
	if tc.Decl != nil {
		return tc.Decl.Pos
	}

	return nil
}

// paramRef identifies one parameter of one constructor
type paramRef struct {
	con string
	pos int
}

// TypeGraph is the set of constructors of one module.  Constructors declared
// by other modules are visible through the frozen assignments it imports.
// The graph is built up by Register and Declare, then sealed by Finalize which
// checks every reference and computes the dependency edges used by inference.
type TypeGraph struct {
	constructors map[string]*TypeConstructor
	order        []string

	imports []*RoleAssignment

	// dependents maps a parameter to the parameters whose role depends on it
	dependents map[paramRef][]paramRef

	finalized bool
}

// NewTypeGraph creates an empty graph that can see the constructors of the
// given assignments
func NewTypeGraph(imports ...*RoleAssignment) *TypeGraph {
	return &TypeGraph{
		constructors: make(map[string]*TypeConstructor),
		imports:      imports,
		dependents:   make(map[paramRef][]paramRef),
	}
}

// Register records the shape of a constructor from its parameters and their
// usage sites.  `usages` may be shorter than `params`: the missing parameters
// have no usages at all.
func (tg *TypeGraph) Register(name string, params []string, usages [][]*Usage) error {
	if len(usages) > len(params) {
		return &ArityError{Constructor: name, Reference: name, Arity: len(params), Given: len(usages)}
	}

	padded := make([][]*Usage, len(params))
	copy(padded, usages)

	return tg.add(&TypeConstructor{Name: name, Params: params, Usages: padded})
}

// Declare registers a declaration, computing its usage sites from its body
func (tg *TypeGraph) Declare(decl *Decl) error {
	return tg.add(&TypeConstructor{
		Name:   decl.Name,
		Params: decl.Params,
		Usages: CollectUsages(decl),
		Decl:   decl,
	})
}

func (tg *TypeGraph) add(tc *TypeConstructor) error {
	if tg.finalized {
		panic("typing: attempt to add a constructor to a finalized type graph")
	}

	if _, exists := tg.constructors[tc.Name]; exists {
		return &DuplicateConstructorError{Constructor: tc.Name, Pos: tc.pos()}
	}

	for _, imp := range tg.imports {
		if imp.Has(tc.Name) {
			return &DuplicateConstructorError{Constructor: tc.Name, Pos: tc.pos()}
		}
	}

	tg.constructors[tc.Name] = tc
	tg.order = append(tg.order, tc.Name)
	return nil
}

// Lookup finds a local constructor by name
func (tg *TypeGraph) Lookup(name string) (*TypeConstructor, bool) {
	tc, ok := tg.constructors[name]
	return tc, ok
}

// Constructors returns the local constructors in registration order
func (tg *TypeGraph) Constructors() []*TypeConstructor {
	tcs := make([]*TypeConstructor, len(tg.order))
	for i, name := range tg.order {
		tcs[i] = tg.constructors[name]
	}

	return tcs
}

// Finalized reports whether Finalize has succeeded
func (tg *TypeGraph) Finalized() bool {
	return tg.finalized
}

// arity looks up the number of parameters of a local or imported constructor
func (tg *TypeGraph) arity(name string) (int, bool) {
	if tc, ok := tg.constructors[name]; ok {
		return len(tc.Params), true
	}

	for _, imp := range tg.imports {
		if params, ok := imp.ParamsOf(name); ok {
			return len(params), true
		}
	}

	return 0, false
}

// Finalize checks that every usage and every constructor mentioned in a
// declaration body exists, and builds the dependency edges.  All problems are
// reported together.
func (tg *TypeGraph) Finalize() error {
	if tg.finalized {
		return nil
	}

	var errs []error
	for _, name := range tg.order {
		errs = append(errs, tg.checkConstructor(tg.constructors[name])...)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, name := range tg.order {
		tc := tg.constructors[name]
		for i, usages := range tc.Usages {
			dependent := paramRef{con: tc.Name, pos: i}

			for _, u := range usages {
				u.references(func(con string, pos int) {
					// imported roles are frozen so they never change
					if _, local := tg.constructors[con]; local {
						ref := paramRef{con: con, pos: pos}
						tg.dependents[ref] = append(tg.dependents[ref], dependent)
					}
				})
			}
		}
	}

	tg.finalized = true
	return nil
}

func (tg *TypeGraph) checkConstructor(tc *TypeConstructor) []error {
	var errs []error
	unknown := make(map[string]struct{})

	reportUnknown := func(ref string) {
		if _, reported := unknown[ref]; !reported {
			unknown[ref] = struct{}{}
			errs = append(errs, &UnknownConstructorError{Constructor: tc.Name, Reference: ref, Pos: tc.pos()})
		}
	}

	for _, usages := range tc.Usages {
		for _, u := range usages {
			u.references(func(con string, pos int) {
				arity, ok := tg.arity(con)
				if !ok {
					reportUnknown(con)
				} else if pos < 0 || pos >= arity {
					errs = append(errs, &BadUsagePositionError{
						Constructor: tc.Name,
						Reference:   con,
						Position:    pos,
						Arity:       arity,
						Pos:         tc.pos(),
					})
				}
			})
		}
	}

	if tc.Decl == nil {
		return errs
	}

	// constructors applied to no parameter at all (eg. `Int` in `MkAge Int`)
	// only show up in the declaration body
	var visit func(DataType, *logging.TextPosition)
	visit = func(dt DataType, pos *logging.TextPosition) {
		switch v := dt.(type) {
		case *ConType:
			tg.checkApplication(tc.Name, v.Name, len(v.Args), pos, reportUnknown, &errs)
			for _, arg := range v.Args {
				visit(arg, pos)
			}
		case *FamilyApp:
			tg.checkApplication(tc.Name, v.Name, len(v.Args), pos, reportUnknown, &errs)
			for _, arg := range v.Args {
				visit(arg, pos)
			}
		case *FuncType:
			visit(v.Arg, pos)
			visit(v.Result, pos)
		case *VarApp:
			for _, arg := range v.Args {
				visit(arg, pos)
			}
		}
	}

	for _, dc := range tc.Decl.Constructors {
		pos := dc.Pos
		if pos == nil {
			pos = tc.pos()
		}

		for _, cons := range dc.Context {
			if !cons.Equality {
				tg.checkApplication(tc.Name, cons.Class, len(cons.Args), pos, reportUnknown, &errs)
			}

			for _, arg := range cons.Args {
				visit(arg, pos)
			}
		}

		for _, field := range dc.Fields {
			visit(field, pos)
		}
	}

	return errs
}

func (tg *TypeGraph) checkApplication(
	owner, name string,
	given int,
	pos *logging.TextPosition,
	reportUnknown func(string),
	errs *[]error,
) {
	arity, ok := tg.arity(name)
	if !ok {
		reportUnknown(name)
	} else if given > arity {
		*errs = append(*errs, &ArityError{Constructor: owner, Reference: name, Arity: arity, Given: given, Pos: pos})
	}
}

// -----------------------------------------------------------------------------

// BuildGraph creates and finalizes a graph from a list of declarations
func BuildGraph(decls []*Decl, imports ...*RoleAssignment) (*TypeGraph, error) {
	tg := NewTypeGraph(imports...)

	var errs []error
	for _, decl := range decls {
		if err := tg.Declare(decl); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if err := tg.Finalize(); err != nil {
		return nil, err
	}

	return tg, nil
}
