package build

import (
	"fmt"
	"rolec/logging"
	"rolec/mods"
	"strings"
)

// initModule initializes the package of a module and recursively initializes
// all of its dependencies.  `importStack` holds the names of the modules
// currently being initialized and is used to detect import cycles.  It
// returns a boolean indicating whether or not it was successful.
func (c *Compiler) initModule(mod *mods.RolecModule, importStack []string) bool {
	pkg, ok := c.initPackage(mod)
	if !ok {
		return false
	}

	c.depGraph[mod.ID] = mod
	c.packages[mod.ID] = pkg
	c.initializing[mod.ID] = struct{}{}
	defer delete(c.initializing, mod.ID)

	importStack = append(importStack, mod.Name)
	for _, dep := range mod.Dependencies {
		depMod, err := c.findModule(dep)
		if err != nil {
			logging.LogConfigError("Import", err.Error())
			return false
		}

		if _, cyclic := c.initializing[depMod.ID]; cyclic {
			logging.LogConfigError(
				"Import",
				fmt.Sprintf("import cycle detected: %s -> %s", strings.Join(importStack, " -> "), depMod.Name),
			)

			return false
		}

		c.dependsOn[mod.ID] = append(c.dependsOn[mod.ID], depMod.ID)

		// modules imported by several others are only initialized once
		if _, loaded := c.packages[depMod.ID]; loaded {
			continue
		}

		if !c.initModule(depMod, importStack) {
			return false
		}
	}

	return true
}

// findModule attempts to locate and load (if not already loaded) the module
// of a dependency
func (c *Compiler) findModule(dep *mods.Dependency) (*mods.RolecModule, error) {
	// check first to see if we have already loaded the module
	for _, loadedMod := range c.depGraph {
		if loadedMod.ModuleRoot == dep.Path {
			return loadedMod, nil
		}
	}

	mod, err := mods.LoadModule(dep.Path)
	if err != nil {
		return nil, fmt.Errorf("error loading module `%s`: %s", dep.Name, err.Error())
	}

	if mod.Name != dep.Name {
		return nil, fmt.Errorf("module at %s is named `%s` not `%s`", dep.Path, mod.Name, dep.Name)
	}

	return mod, nil
}
