package typing

import (
	"fmt"
	"strings"
)

// UsageKind is the tag describing how a parameter occurs in the body of its
// declaration
type UsageKind int

// Enumeration of usage kinds
const (
	// StoredDirectly: the parameter is itself a field type
	StoredDirectly UsageKind = iota

	// AppliedToArrow: the parameter is an argument of `->`
	AppliedToArrow

	// AppliedToEquality: the parameter occurs inside an equality constraint, a
	// class constraint or a type family application
	AppliedToEquality

	// AppliedToConstructor: the parameter occurs as argument `Pos` of `Con`
	AppliedToConstructor

	// AppliedToVariable: the parameter occurs as an argument of a type
	// variable (`f a`), whose role cannot be known
	AppliedToVariable
)

// Usage is one usage site of a parameter.  Arrow and constructor usages keep
// the rest of the path to the parameter in Inner: `Maybe (List a)` gives `a`
// the usage Maybe#0 -> List#0.  A nil Inner means the argument is the
// parameter itself.
type Usage struct {
	Kind  UsageKind
	Con   string
	Pos   int
	Inner *Usage
}

// Convenience constructors for the flat usage tags

func UseStored() *Usage {
	return &Usage{Kind: StoredDirectly}
}

func UseArrow() *Usage {
	return &Usage{Kind: AppliedToArrow}
}

func UseEquality() *Usage {
	return &Usage{Kind: AppliedToEquality}
}

func UseConstructor(con string, pos int) *Usage {
	return &Usage{Kind: AppliedToConstructor, Con: con, Pos: pos}
}

func (u *Usage) Repr() string {
	var s string
	switch u.Kind {
	case StoredDirectly:
		return "stored"
	case AppliedToArrow:
		s = "arrow"
	case AppliedToEquality:
		return "equality"
	case AppliedToConstructor:
		s = fmt.Sprintf("%s#%d", u.Con, u.Pos)
	case AppliedToVariable:
		return "variable-head"
	}

	if u.Inner != nil {
		return s + " -> " + u.Inner.Repr()
	}

	return s
}

// demand is the role this usage forces on its parameter given the current
// roles of every constructor parameter.  A phantom position on the path
// absorbs everything below it; a nominal position makes everything below it
// nominal.
func (u *Usage) demand(roleOf func(con string, pos int) Role) Role {
	switch u.Kind {
	case StoredDirectly:
		return RoleRepresentational
	case AppliedToEquality, AppliedToVariable:
		return RoleNominal
	case AppliedToArrow:
		if u.Inner == nil {
			return RoleRepresentational
		}

		return u.Inner.demand(roleOf)
	case AppliedToConstructor:
		switch roleOf(u.Con, u.Pos) {
		case RolePhantom:
			return RolePhantom
		case RoleNominal:
			return RoleNominal
		}

		if u.Inner == nil {
			return RoleRepresentational
		}

		return u.Inner.demand(roleOf)
	}

	// unreachable for well-formed usages; err on the safe side
	return RoleNominal
}

// references calls fn for every constructor parameter on the usage's path
func (u *Usage) references(fn func(con string, pos int)) {
	for ; u != nil; u = u.Inner {
		if u.Kind == AppliedToConstructor {
			fn(u.Con, u.Pos)
		}
	}
}

// -----------------------------------------------------------------------------

// CollectUsages computes the usage sites of every parameter of a declaration
// from its body.  The result has one (possibly empty) slice per parameter.
func CollectUsages(decl *Decl) [][]*Usage {
	usages := make([][]*Usage, len(decl.Params))
	index := make(map[string]int, len(decl.Params))
	seen := make([]map[string]struct{}, len(decl.Params))
	for i, p := range decl.Params {
		index[p] = i
		seen[i] = make(map[string]struct{})
	}

	emit := func(name string, u *Usage) {
		i, ok := index[name]
		if !ok {
			// variables that are not parameters are rejected by the front end
			return
		}

		key := u.Repr()
		if _, dup := seen[i][key]; !dup {
			seen[i][key] = struct{}{}
			usages[i] = append(usages[i], u)
		}
	}

	// families and classes dispatch on every parameter
	if decl.Kind == DeclFamily || decl.Kind == DeclClass {
		for _, p := range decl.Params {
			emit(p, UseEquality())
		}

		return usages
	}

	top := func(inner *Usage) *Usage {
		if inner == nil {
			return UseStored()
		}

		return inner
	}

	for _, dc := range decl.Constructors {
		for _, cons := range dc.Context {
			for _, arg := range cons.Args {
				for _, name := range FreeVars(arg) {
					emit(name, UseEquality())
				}
			}
		}

		for _, field := range dc.Fields {
			collectField(field, top, emit)
		}
	}

	return usages
}

// collectField walks a field type.  wrap builds the usage path from the field
// down to the current position given the part of the path below it.
func collectField(dt DataType, wrap func(*Usage) *Usage, emit func(string, *Usage)) {
	switch v := dt.(type) {
	case *TypeVar:
		emit(v.Name, wrap(nil))
	case *ConType:
		for i, arg := range v.Args {
			con, pos := v.Name, i
			collectField(arg, func(inner *Usage) *Usage {
				return wrap(&Usage{Kind: AppliedToConstructor, Con: con, Pos: pos, Inner: inner})
			}, emit)
		}
	case *FuncType:
		arrow := func(inner *Usage) *Usage {
			return wrap(&Usage{Kind: AppliedToArrow, Inner: inner})
		}

		collectField(v.Arg, arrow, emit)
		collectField(v.Result, arrow, emit)
	case *FamilyApp:
		for _, name := range FreeVars(v) {
			emit(name, UseEquality())
		}
	case *VarApp:
		collectField(v.Head, wrap, emit)

		for _, arg := range v.Args {
			for _, name := range FreeVars(arg) {
				emit(name, &Usage{Kind: AppliedToVariable})
			}
		}
	}
}

// reprUsages renders a parameter's usages for diagnostics
func reprUsages(usages []*Usage) string {
	reprs := make([]string, len(usages))
	for i, u := range usages {
		reprs[i] = u.Repr()
	}

	return "[" + strings.Join(reprs, ", ") + "]"
}
