package build

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/llir/llvm/ir"

	"github.com/LiterallyKirby/Magolor/common"
	"github.com/LiterallyKirby/Magolor/generate"
	"github.com/LiterallyKirby/Magolor/logging"
	"github.com/LiterallyKirby/Magolor/syntax"
)

// Unit is the result of fully compiling one source file: the file itself and
// its lowered LLVM module
type Unit struct {
	// FilePath is the path to the source file the unit was compiled from
	FilePath string

	// Mod is the lowered LLVM module
	Mod *ir.Module
}

// OutputName is the file name the unit's textual LLVM IR is written under
func (u *Unit) OutputName() string {
	base := filepath.Base(u.FilePath)
	return strings.TrimSuffix(base, common.SrcFileExtension) + ".ll"
}

// compileUnit runs the whole pipeline -- scan, parse, lower -- over one
// source file.  All errors are reported through the logger; a nil return
// indicates the unit failed to compile.
func compileUnit(fpath string) *Unit {
	lctx := &logging.LogContext{FilePath: fpath}

	sc, err := syntax.NewScanner(fpath, lctx)
	if err != nil {
		reportError(err)
		return nil
	}
	defer sc.Close()

	toks, err := sc.ScanAll()
	if err != nil {
		reportError(err)
		return nil
	}

	p := syntax.NewParser(lctx, toks)
	stmts, err := p.Parse()
	if err != nil {
		reportError(err)
		return nil
	}

	logging.LogInfo("AST", filepath.Base(fpath)+"\n"+syntax.DumpAST(stmts))

	g := generate.NewGenerator(lctx)
	mod, err := g.Generate(stmts)
	if err != nil {
		reportError(err)
		return nil
	}

	return &Unit{FilePath: fpath, Mod: mod}
}

// reportError routes a pipeline error to the appropriate logging channel
func reportError(err error) {
	switch v := err.(type) {
	case *logging.CompileMessage:
		logging.DisplayCompileError(v)
	case *logging.ConfigError:
		logging.LogConfigError(v.Kind, v.Message)
	default:
		logging.LogConfigError("File", err.Error())
	}
}

// -----------------------------------------------------------------------------

// BuildFile compiles a single source file outside of any module, writing its
// textual LLVM IR next to the source file
func BuildFile(fpath string) bool {
	unit := compileUnit(fpath)
	if unit == nil || !logging.ShouldProceed() {
		logging.LogCompilationFinished(false)
		return false
	}

	outPath := filepath.Join(filepath.Dir(fpath), unit.OutputName())
	if err := ioutil.WriteFile(outPath, []byte(unit.Mod.String()), 0644); err != nil {
		logging.LogConfigError("Output", fmt.Sprintf("error writing %s: %s", outPath, err.Error()))
		logging.LogCompilationFinished(false)
		return false
	}

	logging.LogCompilationFinished(true)
	return true
}

// CheckFile compiles a single source file without writing any output
func CheckFile(fpath string) bool {
	unit := compileUnit(fpath)
	ok := unit != nil && logging.ShouldProceed()
	logging.LogCompilationFinished(ok)
	return ok
}
