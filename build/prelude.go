package build

import (
	"rolec/deps"
	"rolec/sem"
	"rolec/typing"
)

// PreludeName is the name of the package holding the builtin types
const PreludeName = "prelude"

// preludeTypes are the builtin primitive types visible in every module
var preludeTypes = []string{
	"Int", "Integer", "Bool", "Char", "Double", "Float", "Word", "String", "Unit",
}

// newPrelude creates the resolved package of builtin types that every package
// imports implicitly
func newPrelude() *deps.RolecPackage {
	pkg := deps.NewPackage(PreludeName, "<"+PreludeName+">")

	decls := make([]*typing.Decl, len(preludeTypes))
	for i, name := range preludeTypes {
		decls[i] = typing.NewBuiltin(name)

		// the prelude is always consistent
		_ = pkg.Symbols.Define(&sem.Symbol{Name: name, Kind: typing.DeclBuiltin})
	}

	roles, err := typing.Check(decls, nil)
	if err != nil {
		panic(err)
	}

	pkg.Roles = roles
	return pkg
}
