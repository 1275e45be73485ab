package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"rolec/common"
	"rolec/logging"

	"github.com/pelletier/go-toml"
)

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module       *tomlModule       `toml:"module"`
	Dependencies []*tomlDependency `toml:"dependencies,omitempty"`
	Coercions    []*tomlCoercion   `toml:"coercions,omitempty"`
}

// tomlModule represents a module as it is encoded in TOML
type tomlModule struct {
	Name                    string   `toml:"name"`
	Version                 string   `toml:"rolec-version"`
	SourceDirs              []string `toml:"source-dirs,omitempty"`
	LocalImportDirs         []string `toml:"local-import-dirs,omitempty"`
	CoercionDepth           int      `toml:"coercion-depth,omitempty"`
	WarnRedundantSignatures bool     `toml:"warn-redundant-signatures"`
	EmitLLVM                string   `toml:"emit-llvm,omitempty"`
}

// tomlDependency represents a dependency as it is encoded in TOML
type tomlDependency struct {
	Name string `toml:"name"`
	Path string `toml:"path,omitempty"`
}

// tomlCoercion represents a coercion check as it is encoded in TOML
type tomlCoercion struct {
	From   string `toml:"from"`
	To     string `toml:"to"`
	Expect bool   `toml:"expect"`
}

// LoadModule loads and validates a module.  `path` is the path to the module
// directory.  This function returns the deserialized module and an error
// value.
func LoadModule(path string) (*RolecModule, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	buff, err := os.ReadFile(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return nil, err
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, err
	}

	if tmf.Module == nil {
		return nil, fmt.Errorf("missing [module] table in module file at %s", path)
	}

	// rmod is the final, extracted module that is returned
	rmod := &RolecModule{
		// module root is the directory enclosing the module file
		ModuleRoot: path,
		ID:         common.GenerateIDFromPath(path),
	}

	// ensure that the base module is valid
	if err := validateModule(rmod, tmf.Module); err != nil {
		return nil, err
	}

	// move all the relevant TOML module attributes over to the module
	rmod.Name = tmf.Module.Name
	rmod.WarnRedundantSignatures = tmf.Module.WarnRedundantSignatures
	rmod.CoercionDepth = tmf.Module.CoercionDepth
	if rmod.CoercionDepth == 0 {
		rmod.CoercionDepth = common.DefaultCoercionDepth
	}

	if len(tmf.Module.SourceDirs) == 0 {
		rmod.SourceDirs = []string{path}
	} else {
		for _, dir := range tmf.Module.SourceDirs {
			rmod.SourceDirs = append(rmod.SourceDirs, rmod.absPath(dir))
		}
	}

	for _, dir := range tmf.Module.LocalImportDirs {
		rmod.LocalImportDirs = append(rmod.LocalImportDirs, rmod.absPath(dir))
	}

	if tmf.Module.EmitLLVM != "" {
		rmod.EmitLLVM = rmod.absPath(tmf.Module.EmitLLVM)
	}

	if err := loadDependencies(rmod, tmf.Dependencies); err != nil {
		return nil, err
	}

	if err := loadCoercions(rmod, tmf.Coercions); err != nil {
		return nil, err
	}

	return rmod, nil
}

// absPath converts a path relative to the module root into an absolute path
func (m *RolecModule) absPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(m.ModuleRoot, path)
}

// validateModule checks that the top level module contents are valid
func validateModule(rmod *RolecModule, mod *tomlModule) error {
	if mod.Name == "" {
		return fmt.Errorf("missing module name for module at %s", rmod.ModuleRoot)
	}

	if !common.IsValidIdentifier(mod.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if mod.CoercionDepth < 0 {
		return fmt.Errorf("coercion depth of module `%s` must be positive", mod.Name)
	}

	if mod.Version != common.RolecVersion {
		logging.LogBuildWarning(
			"module",
			fmt.Sprintf("version of module `%s` (v%s) does not match current rolec version (v%s)", mod.Name, mod.Version, common.RolecVersion),
		)
	}

	return nil
}

// loadDependencies converts and validates the dependencies of a module.
// Dependencies without a path are found by name.
func loadDependencies(rmod *RolecModule, tdeps []*tomlDependency) error {
	seen := make(map[string]struct{})

	for _, tdep := range tdeps {
		if !common.IsValidIdentifier(tdep.Name) {
			return fmt.Errorf("dependency of module `%s` must have a valid name", rmod.Name)
		}

		if _, ok := seen[tdep.Name]; ok {
			return fmt.Errorf("module `%s` depends on `%s` multiple times", rmod.Name, tdep.Name)
		}
		seen[tdep.Name] = struct{}{}

		dep := &Dependency{Name: tdep.Name}
		if tdep.Path != "" {
			dep.Path = rmod.absPath(tdep.Path)

			if !checkPath(dep.Path, dep.Name) {
				return fmt.Errorf("no module named `%s` at %s", dep.Name, dep.Path)
			}
		} else if path, ok := rmod.ResolveModulePath(dep.Name); ok {
			dep.Path = path
		} else {
			return fmt.Errorf("unable to find module `%s` imported by `%s`", dep.Name, rmod.Name)
		}

		rmod.Dependencies = append(rmod.Dependencies, dep)
	}

	return nil
}

// loadCoercions converts and validates the coercion checks of a module
func loadCoercions(rmod *RolecModule, tcoercions []*tomlCoercion) error {
	for i, tc := range tcoercions {
		if tc.From == "" || tc.To == "" {
			return fmt.Errorf("coercion check %d of module `%s` must specify both `from` and `to`", i+1, rmod.Name)
		}

		rmod.Coercions = append(rmod.Coercions, &CoercionCheck{
			From:   tc.From,
			To:     tc.To,
			Expect: tc.Expect,
		})
	}

	return nil
}
