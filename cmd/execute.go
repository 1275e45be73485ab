package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"rolec/build"
	"rolec/common"
	"rolec/generate"
	"rolec/logging"
	"rolec/mods"
	"strings"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `rolec` application.  It returns the process exit
// code.
func Execute() int {
	if !initRolecPath() {
		return 1
	}

	return run(os.Args)
}

// run parses a command line and executes the selected command
func run(args []string) int {
	result, err := olive.ParseArgs(newCLI(), args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		return 1
	}

	loglevel := result.Arguments["loglevel"].(string)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		return exitCode(execCheckCommand(subResult, loglevel))
	case "roles":
		return exitCode(execRolesCommand(subResult, loglevel))
	case "coerce":
		return exitCode(execCoerceCommand(subResult, loglevel))
	case "mod":
		return exitCode(execModCommand(subResult))
	case "version":
		logging.PrintInfoMessage("Rolec Version", common.RolecVersion)
	}

	return 0
}

// newCLI sets up the argument parser and all its extended commands and
// arguments
func newCLI() *olive.Command {
	cli := olive.NewCLI("rolec", "rolec infers type roles and checks coercion safety", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the checker log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "infer and validate the roles of a module", true)
	checkCmd.AddPrimaryArg("module-path", "the path to the module to check", true)

	rolesCmd := cli.AddSubcommand("roles", "check a module and print its roles", true)
	rolesCmd.AddPrimaryArg("module-path", "the path to the module to check", true)

	coerceCmd := cli.AddSubcommand("coerce", "answer whether one type can be coerced to another", true)
	coerceCmd.AddPrimaryArg("module-path", "the path to the module to query", true)
	coerceCmd.AddStringArg("from", "f", "the type being coerced", true)
	coerceCmd.AddStringArg("to", "t", "the type being coerced to", true)
	coerceCmd.AddStringArg("emit", "e", "the path to write the coercion shim to", false)

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the new module", true)

	cli.AddSubcommand("version", "print the rolec version", false)

	return cli
}

// exitCode converts a success flag into an exit code
func exitCode(ok bool) int {
	if ok {
		return 0
	}

	return 1
}

// loadAndCheck loads the module named by the primary argument and checks it.
// The compiler is returned only if the check succeeded.
func loadAndCheck(result *olive.ArgParseResult, loglevel string) *build.Compiler {
	moduleRelPath, _ := result.PrimaryArg()

	modulePath, err := filepath.Abs(moduleRelPath)
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return nil
	}

	// initialize the logger before loading so that module warnings are kept
	logging.Initialize(modulePath, loglevel)

	mod, err := mods.LoadModule(modulePath)
	if err != nil {
		logging.PrintErrorMessage("Module Load Error", err)
		return nil
	}

	logging.LogCheckHeader(mod.Name)

	c := build.NewCompiler(mod)
	ok := c.Compile()
	logging.LogFinished()

	if !ok {
		return nil
	}

	return c
}

// execCheckCommand executes the check subcommand and handles all errors
func execCheckCommand(result *olive.ArgParseResult, loglevel string) bool {
	return loadAndCheck(result, loglevel) != nil
}

// execRolesCommand executes the roles subcommand: it checks the module and
// prints the final role table followed by the matching role annotations
func execRolesCommand(result *olive.ArgParseResult, loglevel string) bool {
	c := loadAndCheck(result, loglevel)
	if c == nil {
		return false
	}

	logging.PrintRoleTable(build.RoleTable(c.RootPackage()))

	for _, sig := range build.Signatures(c.RootPackage()) {
		logging.PrintInfoMessage("Signature", sig)
	}

	return true
}

// execCoerceCommand executes the coerce subcommand: it checks the module,
// answers one coercion query and optionally emits its shim
func execCoerceCommand(result *olive.ArgParseResult, loglevel string) bool {
	c := loadAndCheck(result, loglevel)
	if c == nil {
		return false
	}

	from := result.Arguments["from"].(string)
	to := result.Arguments["to"].(string)

	cr, err := c.Query(from, to)
	if err != nil {
		logging.PrintErrorMessage("Query Error", err)
		return false
	}

	query := fmt.Sprintf("%s -> %s", cr.From.Repr(), cr.To.Repr())
	switch {
	case cr.Verdict.Exhausted:
		logging.PrintWarningMessage("Coercion", query+": "+cr.Verdict.Reason)
	case cr.Accepted():
		logging.PrintInfoMessage("Coercion", query+": yes")
	default:
		logging.PrintWarningMessage("Coercion", query+": "+cr.Verdict.Repr())
	}

	if emitArg, ok := result.Arguments["emit"]; ok {
		if !cr.Accepted() {
			logging.PrintErrorMessage("Emit Error", errors.New("only accepted coercions have shims"))
			return false
		}

		g := generate.NewGenerator(c.RootPackage().Name)
		g.AddCoercion(cr.From, cr.To)

		if err := g.WriteFile(emitArg.(string)); err != nil {
			logging.PrintErrorMessage("Emit Error", err)
			return false
		}
	}

	return cr.Accepted()
}

// execModCommand executes the `mod` subcommand and its subcommands.  It
// handles all errors related to this command
func execModCommand(result *olive.ArgParseResult) bool {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		logging.PrintErrorMessage("Path Error", err)
		return false
	}

	switch subcmdName {
	case "init":
		modName, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modName, workDir); err != nil {
			logging.PrintErrorMessage("Module Init Error", err)
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// initRolecPath checks for a valid rolec path and initializes its global
// value.  The path is optional: without it only sibling and local modules can
// be imported.
func initRolecPath() bool {
	rolecPath, ok := os.LookupEnv("ROLEC_PATH")
	if !ok || strings.TrimSpace(rolecPath) == "" {
		return true
	}

	finfo, err := os.Stat(rolecPath)
	if err != nil {
		logging.PrintErrorMessage("Config Error", fmt.Errorf("error loading ROLEC_PATH: %s", err.Error()))
		return false
	}

	if !finfo.IsDir() {
		logging.PrintErrorMessage("Config Error", errors.New("error loading ROLEC_PATH: must point to a directory"))
		return false
	}

	common.RolecPath = rolecPath
	return true
}
