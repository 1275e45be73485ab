package common

import (
	"hash/fnv"
	"path/filepath"
)

// GenerateIDFromPath takes an absolute path and converts it into a numeric ID;
// modules and packages are keyed by this ID in the dependency graph
func GenerateIDFromPath(abspath string) uint {
	h := fnv.New32a()
	h.Write([]byte(filepath.Clean(abspath)))
	return uint(h.Sum32())
}

// ReprPath returns the path used to display a file in diagnostics: relative to
// the module root when possible, absolute otherwise
func ReprPath(moduleRoot, abspath string) string {
	if moduleRoot == "" {
		return abspath
	}

	if rel, err := filepath.Rel(moduleRoot, abspath); err == nil {
		return rel
	}

	return abspath
}

// IsValidIdentifier returns whether or not a given string would be a valid
// identifier (module name, constructor name, etc.)
func IsValidIdentifier(idstr string) bool {
	if idstr == "" {
		return false
	}

	if idstr[0] == '_' || ('a' <= idstr[0] && idstr[0] <= 'z') || ('A' <= idstr[0] && idstr[0] <= 'Z') {
		for _, c := range idstr[1:] {
			if c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
				continue
			}

			return false
		}

		return true
	}

	return false
}
