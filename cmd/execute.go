package cmd

import (
	"os"
	"path/filepath"

	"github.com/ComedicChimera/olive"

	"github.com/LiterallyKirby/Magolor/build"
	"github.com/LiterallyKirby/Magolor/common"
	"github.com/LiterallyKirby/Magolor/logging"
	"github.com/LiterallyKirby/Magolor/mods"
)

// TODO: add `run` (compile and execute a module) and `clean` (remove build
// outputs) subcommands

// Execute runs the main `magolor` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("magolor", "magolor is a tool for managing Magolor projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warning", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile source code", true)
	buildCmd.AddPrimaryArg("path", "the path to the module or source file to build", true)
	buildCmd.AddStringArg("profile", "p", "the name of the profile to build", false)

	checkCmd := cli.AddSubcommand("check", "analyze source code without producing output", true)
	checkCmd.AddPrimaryArg("path", "the path to the module or source file to check", true)
	checkCmd.AddStringArg("profile", "p", "the name of the profile to check against", false)

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddFlag("no-profiles", "np", "indicates whether magolor should generate default profiles for this module")
	modInitCmd.AddPrimaryArg("module-name", "the name of the module to create", true)

	cli.AddSubcommand("version", "print the Magolor version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string), false)
	case "check":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string), true)
	case "mod":
		execModCommand(subResult)
	case "version":
		logging.PrintInfoMessage("Magolor Version", common.MagolorVersion)
	}
}

// execBuildCommand executes the build and check subcommands and handles all
// errors.  The path argument may name either a module directory or a single
// source file.
func execBuildCommand(result *olive.ArgParseResult, loglevel string, checkOnly bool) {
	relPath, _ := result.PrimaryArg()

	path, err := filepath.Abs(relPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	// single source files build without any surrounding module
	if filepath.Ext(path) == common.SrcFileExtension {
		logging.Initialize(filepath.Dir(path), loglevel)
		logging.DisplayCompileHeader("llvm")

		if checkOnly {
			build.CheckFile(path)
		} else {
			build.BuildFile(path)
		}

		return
	}

	profArgVal, ok := result.Arguments["profile"]
	selectedProfile := ""
	if ok {
		selectedProfile = profArgVal.(string)
	}

	// attempt to load the module
	buildProfile := &mods.BuildProfile{}
	mod, err := mods.LoadModule(path, selectedProfile, buildProfile)
	if err != nil {
		logging.PrintErrorMessage("Module Load Error", err)
		return
	}

	// initialize the logger
	logging.Initialize(mod.ModuleRoot, loglevel)
	logging.DisplayCompileHeader("llvm")

	c := build.NewCompiler(mod, buildProfile)
	if checkOnly {
		_, ok := c.Analyze()
		logging.LogCompilationFinished(ok)
	} else {
		c.Compile()
	}
}

// execModCommand executes the `mod` subcommand and its subcommands.  It
// handles all errors related to this command.
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return
	}

	switch subcmdName {
	case "init":
		modNameValue, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modNameValue, workDir, subResult.HasFlag("no-profiles")); err != nil {
			logging.PrintErrorMessage("Module Init Error", err)
		}
	}
}
