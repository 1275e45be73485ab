package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"rolec/common"

	"github.com/pelletier/go-toml"
)

// InitModule creates a new module with the given name at the given path
func InitModule(name, path string) error {
	// convert the module directory to the path to module file
	modFilePath := filepath.Join(path, common.ModuleFileName)

	// check to see if a module already exists
	_, err := os.Stat(modFilePath)
	if err == nil {
		return errors.New("module file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("module file error: %s", err.Error())
	}

	// validate module name
	if !common.IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	mod := &tomlModule{
		Name:                    name,
		Version:                 common.RolecVersion,
		CoercionDepth:           common.DefaultCoercionDepth,
		WarnRedundantSignatures: true,
	}

	// encode and save module to file
	f, err := os.Create(modFilePath)
	if err != nil {
		return fmt.Errorf("error creating module file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlModuleFile{Module: mod}); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	return nil
}
