package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/LiterallyKirby/Magolor/common"
)

// InitModule creates a new module with the given name at the given path
func InitModule(name, path string, noProfiles bool) error {
	// convert the module directory to the path to the module file
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
	if !IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	mod := &tomlModule{
		Name:    name,
		Version: common.MagolorVersion,
	}

	if !noProfiles {
		mod.BuildProfiles = []*tomlProfile{newInitProfile(true), newInitProfile(false)}
	}

	// encode and save module to file
	f, err := os.Create(modFilePath)
	if err != nil {
		return fmt.Errorf("error creating module file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlModuleFile{Module: mod}); err != nil {
		return fmt.Errorf("error encoding TOML: %s", err.Error())
	}

	return nil
}

// newInitProfile creates one of the two initial profiles for a module
func newInitProfile(debug bool) *tomlProfile {
	prof := &tomlProfile{
		OutputDir:   "bin",
		Format:      "llvm",
		Debug:       debug,
		DefaultProf: debug, // the debug profile is the default
	}

	if debug {
		prof.Name = "debug"
	} else {
		prof.Name = "release"
	}

	return prof
}
