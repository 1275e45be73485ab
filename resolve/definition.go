package resolve

import (
	"rolec/deps"
	"rolec/logging"
	"rolec/typing"
	"rolec/walk"
)

// Definition represents a top level definition after it has been walked:
// either a type declaration or a role signature together with the file it was
// written in
type Definition struct {
	// SrcFile is the file this definition is defined in
	SrcFile *deps.RolecFile

	// Exactly one of the following is set
	Decl *typing.Decl
	Sig  *typing.RoleSignature
}

// Position returns the position of the definition
func (def *Definition) Position() *logging.TextPosition {
	if def.Decl != nil {
		return def.Decl.Pos
	}

	return def.Sig.Pos
}

// extractDefinitions walks every file of the package and collects the lowered
// definitions.  Every file is walked even after a failure so that all errors
// are reported.
func (r *Resolver) extractDefinitions() bool {
	ok := true

	for _, file := range r.pkg.Files {
		decls, sigs, wok := r.walkers[file].WalkFile()
		if !wok {
			ok = false
		}

		for _, decl := range decls {
			def := &Definition{SrcFile: file, Decl: decl}
			r.decls = append(r.decls, def)

			if _, dup := r.declsByName[decl.Name]; !dup {
				r.declsByName[decl.Name] = def
			}
		}

		for _, sig := range sigs {
			def := &Definition{SrcFile: file, Sig: sig}
			r.sigs = append(r.sigs, def)
			r.sigsByPos[sig.Pos] = def
		}
	}

	return ok
}

// declareSymbols defines the symbols of every file in the package table
func (r *Resolver) declareSymbols() bool {
	ok := true

	for _, file := range r.pkg.Files {
		w := walk.NewWalker(file)
		r.walkers[file] = w

		if !w.DeclareSymbols() {
			ok = false
		}
	}

	return ok
}
