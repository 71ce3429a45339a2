package build

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/LiterallyKirby/Magolor/common"
	"github.com/LiterallyKirby/Magolor/logging"
	"github.com/LiterallyKirby/Magolor/mods"
)

// Compiler is the data structure responsible for maintaining all high-level
// state of the Magolor compiler
type Compiler struct {
	// rootMod is the root module of the project being built
	rootMod *mods.MagModule

	// buildProfile is the profile that is being used to build the project
	buildProfile *mods.BuildProfile
}

// NewCompiler creates a new compiler for a given root module and build profile
func NewCompiler(rootMod *mods.MagModule, buildProfile *mods.BuildProfile) *Compiler {
	return &Compiler{
		rootMod:      rootMod,
		buildProfile: buildProfile,
	}
}

// Compile runs the full compilation algorithm on the root module and build
// profile and writes the lowered output of every source file.  It handles all
// compilation errors appropriately.
func (c *Compiler) Compile() {
	units, ok := c.Analyze()
	if !ok {
		logging.LogCompilationFinished(false)
		return
	}

	logging.LogBeginPhase("Emitting")
	if err := os.MkdirAll(c.buildProfile.OutputDir, 0755); err != nil {
		logging.LogEndPhase(false)
		logging.LogConfigError("Output", fmt.Sprintf("error creating output directory: %s", err.Error()))
		logging.LogCompilationFinished(false)
		return
	}

	for _, unit := range units {
		outPath := filepath.Join(c.buildProfile.OutputDir, unit.OutputName())
		if err := ioutil.WriteFile(outPath, []byte(unit.Mod.String()), 0644); err != nil {
			logging.LogEndPhase(false)
			logging.LogConfigError("Output", fmt.Sprintf("error writing %s: %s", outPath, err.Error()))
			logging.LogCompilationFinished(false)
			return
		}
	}
	logging.LogEndPhase(true)

	logging.LogCompilationFinished(true)
}

// Analyze runs just the analysis and lowering portion of the compilation
// algorithm without writing any output.  This is exported for usage in the
// CLI (the `check` command, editors/IDEs, etc.).  It returns the lowered
// units and a boolean indicating whether or not analysis was successful.
func (c *Compiler) Analyze() ([]*Unit, bool) {
	fpaths, ok := c.findSourceFiles()
	if !ok {
		return nil, false
	}

	logging.LogBeginPhase("Compiling")

	// source files share nothing -- each file is scanned, parsed, and lowered
	// against its own fresh tables -- so the units compile concurrently
	uchan := make(chan *Unit)
	for _, fpath := range fpaths {
		go func(fpath string) {
			uchan <- compileUnit(fpath)
		}(fpath)
	}

	var units []*Unit
	succeeded := true
	for range fpaths {
		unit := <-uchan
		if unit == nil {
			succeeded = false
		} else {
			units = append(units, unit)
		}
	}

	if !succeeded || !logging.ShouldProceed() {
		return nil, false
	}

	logging.LogEndPhase(true)
	return units, true
}

// findSourceFiles collects the Magolor source files in the module root
func (c *Compiler) findSourceFiles() ([]string, bool) {
	finfos, err := ioutil.ReadDir(c.rootMod.ModuleRoot)
	if err != nil {
		logging.LogConfigError("Module", fmt.Sprintf("error walking directory %s: %s", c.rootMod.ModuleRoot, err.Error()))
		return nil, false
	}

	var fpaths []string
	for _, finfo := range finfos {
		if !finfo.IsDir() && filepath.Ext(finfo.Name()) == common.SrcFileExtension {
			fpaths = append(fpaths, filepath.Join(c.rootMod.ModuleRoot, finfo.Name()))
		}
	}

	if len(fpaths) == 0 {
		logging.LogConfigError("Module", "unable to build a module that contains no Magolor source files")
		return nil, false
	}

	return fpaths, true
}
