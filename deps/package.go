package deps

import (
	"path/filepath"
	"rolec/common"
	"rolec/logging"
	"rolec/sem"
	"rolec/syntax"
	"rolec/typing"
)

// RolecPackage represents the declarations of one module: all of the `.roles`
// files found in its source directories
type RolecPackage struct {
	// ID is a unique identifier for a package that is based on the package path
	// -- this is used for package look ups and to name the generated shim
	// module
	ID uint

	// Name is the short name of the package
	Name string

	// RootPath is the absolute path to the root directory of the package
	RootPath string

	// Files contains all the individual files in this package
	Files []*RolecFile

	// Symbols is the table of type-level names declared by this package.  Its
	// imports are the tables of the packages this package depends on.
	Symbols *sem.SymbolTable

	// Roles is the frozen role assignment of this package.  It is nil until
	// the package has been resolved successfully.
	Roles *typing.RoleAssignment
}

// NewPackage creates a new package based on the given absolute, root path
// (does NOT perform file initialization)
func NewPackage(name, rootPath string) *RolecPackage {
	if name == "" {
		name = filepath.Base(rootPath)
	}

	return &RolecPackage{
		ID:       common.GenerateIDFromPath(rootPath),
		Name:     name,
		RootPath: rootPath,
		Symbols:  sem.NewSymbolTable(name),
	}
}

// AddFile creates a new file belonging to this package
func (pkg *RolecPackage) AddFile(filePath string, ast *syntax.File) *RolecFile {
	f := &RolecFile{
		Parent:     pkg,
		FilePath:   filePath,
		LogContext: pkg.LogContextFor(filePath),
		AST:        ast,
	}

	pkg.Files = append(pkg.Files, f)
	return f
}

// LogContextFor creates the log context of a file in this package.  An empty
// path gives the context of the package itself.
func (pkg *RolecPackage) LogContextFor(filePath string) *logging.LogContext {
	return &logging.LogContext{
		ModuleName: pkg.Name,
		ModuleRoot: pkg.RootPath,
		FilePath:   filePath,
	}
}

// Resolved reports whether this package has a role assignment
func (pkg *RolecPackage) Resolved() bool {
	return pkg.Roles != nil
}

// RolecFile represents a single declaration file
type RolecFile struct {
	// Parent is a reference to this file's parent package
	Parent *RolecPackage

	// FilePath is the absolute path to the file
	FilePath string

	// LogContext is the log context for this file
	LogContext *logging.LogContext

	// AST is the abstract syntax tree representing the contents of this file
	AST *syntax.File
}
