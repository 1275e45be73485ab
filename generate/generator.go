package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rolec/typing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// Generator builds an LLVM module of coercion shims.  Every accepted coercion
// `A -> B` becomes a function taking a pointer to `A` and returning its
// argument bitcast to a pointer to `B`: the coercion costs nothing at runtime.
// Every type is an opaque named struct since only its identity matters.
type Generator struct {
	// llModule is the LLVM module being built by this generator
	llModule *ir.Module

	// globalTypes is a map of all the named types defined so far
	globalTypes map[string]types.Type

	// shims is a map of all the shim functions defined so far
	shims map[string]*ir.Func
}

// NewGenerator creates a new generator for a module of the given name
func NewGenerator(moduleName string) *Generator {
	m := ir.NewModule()
	m.SourceFilename = moduleName

	return &Generator{
		llModule:    m,
		globalTypes: make(map[string]types.Type),
		shims:       make(map[string]*ir.Func),
	}
}

// AddCoercion emits the shim for a coercion from one type to another.  Adding
// the same coercion twice returns the existing shim.
func (g *Generator) AddCoercion(from, to typing.DataType) *ir.Func {
	name := ShimName(from, to)
	if fn, ok := g.shims[name]; ok {
		return fn
	}

	fromPtr := types.NewPointer(g.typeOf(from))
	toPtr := types.NewPointer(g.typeOf(to))

	param := ir.NewParam("x", fromPtr)
	fn := g.llModule.NewFunc(name, toPtr, param)

	entry := fn.NewBlock("entry")
	cast := entry.NewBitCast(param, toPtr)
	entry.NewRet(cast)

	g.shims[name] = fn
	return fn
}

// typeOf returns the named opaque struct standing for a data type
func (g *Generator) typeOf(dt typing.DataType) types.Type {
	name := mangle(dt)
	if t, ok := g.globalTypes[name]; ok {
		return t
	}

	t := g.llModule.NewTypeDef(name, &types.StructType{Opaque: true})
	g.globalTypes[name] = t
	return t
}

// String returns the LLVM IR source text of the module
func (g *Generator) String() string {
	return g.llModule.String()
}

// WriteFile writes the LLVM IR source text of the module to a file, creating
// its directory if necessary
func (g *Generator) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create LLVM output file: %w", err)
	}
	defer f.Close()

	if _, err := g.llModule.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write LLVM output file: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

// ShimName returns the name of the function witnessing a coercion
func ShimName(from, to typing.DataType) string {
	return "coerce." + mangle(from) + "." + mangle(to)
}

// manglePatterns rewrites the punctuation of a type into characters that are
// valid in unquoted LLVM identifiers
var manglePatterns = strings.NewReplacer(
	" -> ", "$fn$",
	" ", "_",
	"(", "$",
	")", "$",
)

// mangle converts a data type into an LLVM identifier
func mangle(dt typing.DataType) string {
	return manglePatterns.Replace(dt.Repr())
}
