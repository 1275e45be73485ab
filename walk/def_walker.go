package walk

import (
	"fmt"
	"rolec/logging"
	"rolec/syntax"
	"rolec/typing"
)

// WalkTypeDef walks a type definition and lowers it into a declaration
func (w *Walker) WalkTypeDef(td *syntax.TypeDef) (*typing.Decl, bool) {
	decl := &typing.Decl{
		Name: td.Name.Name,
		Kind: declKinds[td.Kind],
		Pos:  td.Name.Pos,
	}

	ok := true
	bound := make(map[string]struct{})
	for _, param := range td.Params {
		if _, dup := bound[param.Name]; dup {
			w.logError(
				fmt.Sprintf("type parameter `%s` declared multiple times", param.Name),
				logging.LMKDef,
				param.Pos,
			)

			ok = false
			continue
		}

		bound[param.Name] = struct{}{}
		decl.Params = append(decl.Params, param.Name)
	}

	if td.Kind == syntax.DefNewtype && (len(td.Constructors) != 1 || len(td.Constructors[0].Fields) != 1) {
		w.logError(
			fmt.Sprintf("newtype `%s` must have exactly one constructor with exactly one field", td.Name.Name),
			logging.LMKDef,
			td.Pos,
		)

		ok = false
	}

	tl := &typeLowerer{
		table: w.SrcFile.Parent.Symbols,
		bound: bound,
		report: func(te *TypeError) {
			w.logError(te.Message, te.Kind, te.Pos)
		},
	}

	conNames := make(map[string]struct{})
	for _, cd := range td.Constructors {
		if _, dup := conNames[cd.Name.Name]; dup {
			w.logError(
				fmt.Sprintf("data constructor `%s` defined multiple times", cd.Name.Name),
				logging.LMKDef,
				cd.Name.Pos,
			)

			ok = false
			continue
		}
		conNames[cd.Name.Name] = struct{}{}

		if dc, cok := w.walkConDef(cd, tl); cok {
			decl.Constructors = append(decl.Constructors, dc)
		} else {
			ok = false
		}
	}

	return decl, ok
}

// walkConDef walks a data constructor
func (w *Walker) walkConDef(cd *syntax.ConDef, tl *typeLowerer) (*typing.DataCons, bool) {
	dc := &typing.DataCons{
		Name: cd.Name.Name,
		Pos:  cd.Pos,
	}

	ok := true
	for _, ce := range cd.Context {
		if cons, cok := tl.lowerConstraint(ce); cok {
			dc.Context = append(dc.Context, cons)
		} else {
			ok = false
		}
	}

	if fields, fok := tl.lowerTypes(cd.Fields); fok {
		dc.Fields = fields
	} else {
		ok = false
	}

	return dc, ok
}

// -----------------------------------------------------------------------------

// WalkRoleDef walks a role annotation and converts it into a role signature.
// Whether the signature fits its constructor is decided once roles have been
// inferred.
func (w *Walker) WalkRoleDef(rd *syntax.RoleDef) (*typing.RoleSignature, bool) {
	if _, ok := w.lookup(rd.Name.Name); !ok {
		w.logError(
			fmt.Sprintf("role annotation for undefined type constructor `%s`", rd.Name.Name),
			logging.LMKName,
			rd.Name.Pos,
		)

		return nil, false
	}

	sig := &typing.RoleSignature{
		Constructor: rd.Name.Name,
		Pos:         rd.Pos,
	}

	ok := true
	anyExplicit := false
	for _, name := range rd.Roles {
		role, rok := typing.ParseRole(name.Name)
		if !rok {
			w.logError(
				fmt.Sprintf("unknown role `%s`: expected `phantom`, `representational`, `nominal` or `_`", name.Name),
				logging.LMKRole,
				name.Pos,
			)

			ok = false
			continue
		}

		if role != typing.RoleInferred {
			anyExplicit = true
		}

		sig.Roles = append(sig.Roles, role)
	}

	if ok && !anyExplicit && len(sig.Roles) > 0 {
		w.logWarning(
			fmt.Sprintf("role annotation for `%s` has no effect", rd.Name.Name),
			logging.LMKRole,
			rd.Pos,
		)
	}

	return sig, ok
}
