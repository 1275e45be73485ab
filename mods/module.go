package mods

// RolecModule represents a module -- specifically, the module configuration
type RolecModule struct {
	// ID is a unique identifier for the module based on the path to its root
	ID uint

	// Name is the name of the module
	Name string

	// ModuleRoot is the path to the root directory of the current module
	ModuleRoot string

	// SourceDirs are the absolute paths of the directories searched for
	// declaration files.  It defaults to the module root.
	SourceDirs []string

	// CoercionDepth is the recursion budget of coercion queries
	CoercionDepth int

	// WarnRedundantSignatures enables warnings for role annotations that
	// request exactly the inferred roles
	WarnRedundantSignatures bool

	// EmitLLVM is the absolute path of the LLVM module containing coercion
	// shims for the configured coercions.  No module is emitted if it is empty.
	EmitLLVM string

	// LocalImportDirs is a list of directories in which to check for imports
	// (outside of the current module and global import directories)
	LocalImportDirs []string

	// Dependencies are the modules this module imports declarations from
	Dependencies []*Dependency

	// Coercions are the coercion checks run on every build
	Coercions []*CoercionCheck
}

// Dependency is an imported module.  If Path is empty, the module is found by
// name.
type Dependency struct {
	Name string

	// Path is an absolute path to the module root
	Path string
}

// CoercionCheck is a configured coercion query together with its expected
// answer
type CoercionCheck struct {
	From, To string
	Expect   bool
}
