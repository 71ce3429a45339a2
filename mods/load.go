package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"github.com/LiterallyKirby/Magolor/common"
	"github.com/LiterallyKirby/Magolor/logging"
)

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents a Magolor module as it is encoded in TOML
type tomlModule struct {
	Name          string         `toml:"name"`
	Version       string         `toml:"magolor-version"`
	BuildProfiles []*tomlProfile `toml:"profiles"`
}

// tomlProfile represents a build profile as it is encoded in TOML
type tomlProfile struct {
	Name        string `toml:"name"`
	Debug       bool   `toml:"debug"`
	OutputDir   string `toml:"output"`
	Format      string `toml:"format"`
	DefaultProf bool   `toml:"default"` // in absence of a selection, choose this profile
}

// formatNames maps TOML format name strings to enumerated format values
var formatNames = map[string]int{
	"llvm": FormatLLVM,
	"asm":  FormatASM,
	"bin":  FormatBin,
}

// LoadModule loads and validates a module and determines the correct build
// profile.  `path` is the path to the module directory.  `selectedProfile`
// may be empty, in which case the module's default profile is used.
// `rootProfile` is populated with the selected profile's configuration.
func LoadModule(path, selectedProfile string, rootProfile *BuildProfile) (*MagModule, error) {
	f, err := os.Open(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, err
	}

	if tmf.Module == nil {
		return nil, fmt.Errorf("missing [module] table in %s", common.ModuleFileName)
	}

	magMod := &MagModule{
		// module root is the directory enclosing the module file
		ModuleRoot: path,
	}

	if err := validateModule(magMod, tmf.Module); err != nil {
		return nil, err
	}

	if err := selectProfile(tmf.Module, selectedProfile, rootProfile); err != nil {
		return nil, err
	}

	// output directories are resolved relative to the module root
	if !filepath.IsAbs(rootProfile.OutputDir) {
		rootProfile.OutputDir = filepath.Join(path, rootProfile.OutputDir)
	}

	magMod.Name = tmf.Module.Name
	return magMod, nil
}

// validateModule checks that the top level module contents are valid
func validateModule(magMod *MagModule, mod *tomlModule) error {
	if mod.Name == "" {
		return fmt.Errorf("missing module name for module at %s", magMod.ModuleRoot)
	}

	if !IsValidIdentifier(mod.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if mod.Version != common.MagolorVersion {
		logging.LogConfigWarning(
			"Module",
			fmt.Sprintf("version of module `%s` (v%s) does not match current magolor version (v%s)", mod.Name, mod.Version, common.MagolorVersion),
		)
	}

	return nil
}

// selectProfile picks the named profile, or the default profile when no name
// was given, and copies its configuration into the root profile
func selectProfile(mod *tomlModule, selectedProfile string, rootProfile *BuildProfile) error {
	if len(mod.BuildProfiles) == 0 {
		return fmt.Errorf("module `%s` must provide at least one build profile", mod.Name)
	}

	if selectedProfile != "" {
		for _, prof := range mod.BuildProfiles {
			if prof.Name == selectedProfile {
				convProf, err := convertProfile(prof)
				if err != nil {
					return fmt.Errorf("%s in module `%s`", err.Error(), mod.Name)
				}

				*rootProfile = *convProf
				return nil
			}
		}

		return fmt.Errorf("module `%s` has no profile `%s`", mod.Name, selectedProfile)
	}

	for _, prof := range mod.BuildProfiles {
		if prof.DefaultProf {
			convProf, err := convertProfile(prof)
			if err != nil {
				return fmt.Errorf("%s in module `%s`", err.Error(), mod.Name)
			}

			*rootProfile = *convProf
			return nil
		}
	}

	return fmt.Errorf("module `%s` does not specify a default profile; `--profile` argument is required", mod.Name)
}

// convertProfile converts a TOML build profile into a `*BuildProfile`
func convertProfile(tprof *tomlProfile) (*BuildProfile, error) {
	if tprof.Name == "" {
		return nil, errors.New("profile must specify a name")
	}

	if tprof.OutputDir == "" {
		return nil, errors.New("profile must specify an output directory")
	}

	if tprof.Format == "" {
		return nil, errors.New("profile must specify an output format")
	}

	newProfile := &BuildProfile{}

	if formatVal, ok := formatNames[tprof.Format]; ok {
		newProfile.OutputFormat = formatVal
	} else {
		return nil, fmt.Errorf("%s is not a valid output format", tprof.Format)
	}

	if newProfile.OutputFormat != FormatLLVM {
		return nil, fmt.Errorf("the `%s` output format requires a backend toolchain; only `llvm` is currently supported", tprof.Format)
	}

	newProfile.Debug = tprof.Debug
	newProfile.OutputDir = tprof.OutputDir
	return newProfile, nil
}
