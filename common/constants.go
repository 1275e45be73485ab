package common

const (
	SrcFileExtension = ".roles"
	ModuleFileName   = "rolec-mod.toml"
	RolecVersion     = "0.1.0"

	// DefaultCoercionDepth is the recursion budget for a single coercion
	// query when the module file doesn't specify one
	DefaultCoercionDepth = 64
)

// RolecPath is the path to the rolec installation directory.  It may be empty
// in which case only sibling modules can be imported.
var RolecPath = ""
