package resolve

import (
	"fmt"
	"rolec/deps"
	"rolec/logging"
	"rolec/typing"
)

// attachImports makes the symbols of every imported package visible in the
// package being resolved and collects their role assignments for the type
// graph.  Imported packages must already be resolved.
func (r *Resolver) attachImports() []*typing.RoleAssignment {
	var assignments []*typing.RoleAssignment

	for _, imp := range r.imports {
		if !imp.Resolved() {
			logging.LogFatal(fmt.Sprintf("package `%s` imported by `%s` before it was resolved", imp.Name, r.pkg.Name))
		}

		r.pkg.Symbols.AddImport(imp.Symbols)
		assignments = append(assignments, imp.Roles)
	}

	return assignments
}

// importedFrom returns the name of the imported package declaring a name
func importedFrom(imports []*deps.RolecPackage, name string) (string, bool) {
	for _, imp := range imports {
		if imp.Roles != nil && imp.Roles.IsLocal(name) {
			return imp.Name, true
		}
	}

	return "", false
}
