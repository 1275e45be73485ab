package walk

import (
	"rolec/deps"
	"rolec/typing"
)

// Walker is the construct responsible for performing semantic analysis on a
// declaration file: it checks names and shapes and lowers the AST into the
// declarations and signatures the type graph is built from
type Walker struct {
	// SrcFile is the file this walker is walking
	SrcFile *deps.RolecFile
}

// NewWalker creates a new walker for a given file
func NewWalker(f *deps.RolecFile) *Walker {
	return &Walker{
		SrcFile: f,
	}
}

// WalkFile lowers every definition in the file.  Walking continues past bad
// definitions so that all errors are reported together; the flag indicates
// whether the whole file was accepted.
func (w *Walker) WalkFile() ([]*typing.Decl, []*typing.RoleSignature, bool) {
	ok := true

	var decls []*typing.Decl
	for _, td := range w.SrcFile.AST.TypeDefs {
		if decl, dok := w.WalkTypeDef(td); dok {
			decls = append(decls, decl)
		} else {
			ok = false
		}
	}

	var sigs []*typing.RoleSignature
	for _, rd := range w.SrcFile.AST.RoleDefs {
		if sig, sok := w.WalkRoleDef(rd); sok {
			sigs = append(sigs, sig)
		} else {
			ok = false
		}
	}

	return decls, sigs, ok
}
