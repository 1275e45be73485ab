package build

import (
	"fmt"
	"os"
	"path/filepath"
	"rolec/common"
	"rolec/deps"
	"rolec/logging"
	"rolec/mods"
	"rolec/syntax"

	"golang.org/x/exp/slices"
)

// initPackage initializes the package of a module.  It loads and parses all
// declaration files in the module's source directories but does not process
// dependencies.  The package is returned after it is initialized along with a
// boolean flag indicating success or failure.
func (c *Compiler) initPackage(mod *mods.RolecModule) (*deps.RolecPackage, bool) {
	var paths []string
	for _, dir := range mod.SourceDirs {
		dirPaths, ok := collectSourceFiles(dir)
		if !ok {
			return nil, false
		}

		paths = append(paths, dirPaths...)
	}

	if len(paths) == 0 {
		logging.LogConfigError("Package", fmt.Sprintf("module `%s` contains no declaration files", mod.Name))
		return nil, false
	}

	newpkg := deps.NewPackage(mod.Name, mod.ModuleRoot)

	// load and parse package files concurrently
	fchan := make(chan *parsedFile)
	for _, path := range paths {
		go initFile(fchan, newpkg.LogContextFor(path), path)
	}

	parsed := make(map[string]*syntax.File)
	ok := true
	for range paths {
		pf := <-fchan
		if pf.ast == nil {
			ok = false
		} else {
			parsed[pf.path] = pf.ast
		}
	}

	if !ok {
		return nil, false
	}

	// files are added in a fixed order so that diagnostics are reproducible
	for _, path := range paths {
		newpkg.AddFile(path, parsed[path])
	}

	return newpkg, true
}

// collectSourceFiles lists the declaration files in a source directory
func collectSourceFiles(dir string) ([]string, bool) {
	finfo, err := os.Stat(dir)
	if err != nil {
		logging.LogConfigError("Package", fmt.Sprintf("unable to load source directory %s: %s", dir, err.Error()))
		return nil, false
	}

	if !finfo.IsDir() {
		logging.LogConfigError("Package", fmt.Sprintf("source directory %s must be a directory not a file", dir))
		return nil, false
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.LogConfigError("Package", fmt.Sprintf("error walking directory %s: %s", dir, err.Error()))
		return nil, false
	}

	var paths []string
	for _, entry := range entries {
		// we only want to parse declaration files (not directories or other files)
		if !entry.IsDir() && filepath.Ext(entry.Name()) == common.SrcFileExtension {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	slices.Sort(paths)
	return paths, true
}

// parsedFile is the result of parsing one file.  `ast` is nil if parsing
// failed.
type parsedFile struct {
	path string
	ast  *syntax.File
}

// initFile attempts to load and parse a file concurrently.  Note that if the
// file fails to initialize, an appropriate error will be logged and a nil AST
// will be written to the channel.
func initFile(fchan chan *parsedFile, lctx *logging.LogContext, fabspath string) {
	f, err := os.Open(fabspath)
	if err != nil {
		logging.LogConfigError("File", fmt.Sprintf("unable to open file at %s: %s", fabspath, err.Error()))
		fchan <- &parsedFile{path: fabspath}
		return
	}
	defer f.Close()

	ast, err := syntax.ParseFile(f)
	if err != nil {
		if serr, ok := err.(*syntax.SyntaxError); ok {
			logging.LogCompileError(lctx, serr.Message, logging.LMKSyntax, serr.Pos)
		} else {
			logging.LogConfigError("File", fmt.Sprintf("error reading file at %s: %s", fabspath, err.Error()))
		}

		fchan <- &parsedFile{path: fabspath}
		return
	}

	fchan <- &parsedFile{path: fabspath, ast: ast}
}
