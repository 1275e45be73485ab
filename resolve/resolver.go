package resolve

import (
	"errors"
	"fmt"
	"rolec/deps"
	"rolec/logging"
	"rolec/mods"
	"rolec/typing"
	"rolec/walk"
)

// Resolver is main data structure used to check the declarations of a single
// module: it walks the files of the module's package, infers roles and
// validates the role annotations
type Resolver struct {
	// mod is the module this resolver is working on
	mod *mods.RolecModule

	// pkg is the package holding the module's declarations
	pkg *deps.RolecPackage

	// imports are the resolved packages this package depends on
	imports []*deps.RolecPackage

	// decls and sigs are the walked definitions in source order
	decls []*Definition
	sigs  []*Definition

	// declsByName and sigsByPos locate the file an error belongs to
	declsByName map[string]*Definition
	sigsByPos   map[*logging.TextPosition]*Definition

	// walkers is the list of walkers for each file
	walkers map[*deps.RolecFile]*walk.Walker

	// inferred is the assignment before any signature was applied
	inferred *typing.RoleAssignment
}

// NewResolver creates a new resolver for a package.  `imports` must all be
// resolved before ResolveAll is called.
func NewResolver(mod *mods.RolecModule, pkg *deps.RolecPackage, imports ...*deps.RolecPackage) *Resolver {
	return &Resolver{
		mod:         mod,
		pkg:         pkg,
		imports:     imports,
		declsByName: make(map[string]*Definition),
		sigsByPos:   make(map[*logging.TextPosition]*Definition),
		walkers:     make(map[*deps.RolecFile]*walk.Walker),
	}
}

// ResolveAll attempts to resolve all definitions within a single module and
// computes its final role assignment which is stored on the package.  It
// returns a boolean indicating whether or not resolution succeeded.
func (r *Resolver) ResolveAll() bool {
	importedRoles := r.attachImports()

	// all names must be declared before any definition is walked
	if !r.declareSymbols() {
		return false
	}

	if !r.extractDefinitions() {
		return false
	}

	decls := make([]*typing.Decl, len(r.decls))
	for i, def := range r.decls {
		decls[i] = def.Decl
	}

	tg, err := typing.BuildGraph(decls, importedRoles...)
	if err != nil {
		r.reportErrors(err, logging.LMKGraph)
		return false
	}

	r.inferred = typing.Infer(tg)

	sigs := make([]*typing.RoleSignature, len(r.sigs))
	for i, def := range r.sigs {
		sigs[i] = def.Sig
	}

	validated, verr := typing.Validate(r.inferred, sigs)
	if verr != nil {
		r.reportErrors(verr, logging.LMKSignature)
	}

	final := typing.Propagate(tg, validated)
	if err := typing.CheckSignatures(final); err != nil {
		r.reportErrors(err, logging.LMKSignature)
		verr = errors.Join(verr, err)
	}

	if verr != nil {
		return false
	}

	if r.mod != nil && r.mod.WarnRedundantSignatures {
		r.warnRedundant(sigs)
	}

	r.pkg.Roles = final
	return true
}

// Inferred returns the roles inferred before any annotation was applied.  It
// is nil if the type graph could not be built.
func (r *Resolver) Inferred() *typing.RoleAssignment {
	return r.inferred
}

// warnRedundant warns about signatures that request exactly the inferred
// roles
func (r *Resolver) warnRedundant(sigs []*typing.RoleSignature) {
	for _, sig := range sigs {
		if !sig.Redundant(r.inferred) {
			continue
		}

		def := r.sigsByPos[sig.Pos]
		logging.LogCompileWarning(
			def.SrcFile.LogContext,
			fmt.Sprintf("role annotation for `%s` is redundant: it matches the inferred roles", sig.Constructor),
			logging.LMKSignature,
			sig.Pos,
		)
	}
}

// reportErrors logs every error joined in err at the position and in the
// file it refers to
func (r *Resolver) reportErrors(err error, kind int) {
	for _, e := range typing.Flatten(err) {
		pos := typing.ErrorPosition(e)
		msg := e.Error()

		var usig *typing.UnknownSignatureError
		if errors.As(e, &usig) && usig.Imported {
			if modName, ok := importedFrom(r.imports, usig.Constructor); ok {
				msg = fmt.Sprintf("cannot give a role signature to `%s`: it is declared in module `%s`", usig.Constructor, modName)
			}
		}

		logging.LogCompileError(r.contextOf(e, pos), msg, kind, pos)
	}
}

// contextOf finds the log context of the file an error occurred in
func (r *Resolver) contextOf(err error, pos *logging.TextPosition) *logging.LogContext {
	if def, ok := r.sigsByPos[pos]; ok {
		return def.SrcFile.LogContext
	}

	if def, ok := r.declsByName[typing.ErrorConstructor(err)]; ok {
		return def.SrcFile.LogContext
	}

	// errors without a file are reported against the module itself
	return r.pkg.LogContextFor("")
}
