package build

import (
	"rolec/deps"
	"rolec/typing"
)

// RoleTable renders the roles of every constructor declared by a resolved
// package as rows: constructor, parameter, role and where the role came from.
// Constructors without parameters are listed with an empty parameter.
func RoleTable(pkg *deps.RolecPackage) [][]string {
	rows := [][]string{{"Constructor", "Kind", "Parameter", "Role", "Origin"}}

	for _, sym := range pkg.Symbols.Symbols() {
		params, ok := pkg.Roles.ParamsOf(sym.Name)
		if !ok {
			continue
		}

		kind := sym.Kind.Repr()
		if pkg.Roles.IsOpaque(sym.Name) {
			kind += " (opaque)"
		}

		if len(params) == 0 {
			rows = append(rows, []string{sym.Name, kind, "", "", ""})
			continue
		}

		for i, param := range params {
			rows = append(rows, []string{
				sym.Name,
				kind,
				param,
				pkg.Roles.RoleOf(sym.Name, i).Repr(),
				pkg.Roles.OriginOf(sym.Name, i).Repr(),
			})
		}
	}

	return rows
}

// SignatureOf renders the roles of a constructor as a role annotation
func SignatureOf(pkg *deps.RolecPackage, name string) (string, bool) {
	roles, ok := pkg.Roles.RolesOf(name)
	if !ok {
		return "", false
	}

	sig := &typing.RoleSignature{Constructor: name, Roles: roles}
	return sig.Repr(), true
}

// Signatures renders a role annotation for every parameterized type
// constructor declared by a resolved package
func Signatures(pkg *deps.RolecPackage) []string {
	var sigs []string
	for _, sym := range pkg.Symbols.Symbols() {
		if !sym.IsType() || sym.Arity == 0 {
			continue
		}

		if sig, ok := SignatureOf(pkg, sym.Name); ok {
			sigs = append(sigs, sig)
		}
	}

	return sigs
}
