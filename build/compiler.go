package build

import (
	"rolec/deps"
	"rolec/logging"
	"rolec/mods"
	"rolec/resolve"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Compiler is the data structure responsible for maintaining all high-level
// state of a check: the loaded modules, their packages and the results of the
// configured coercion checks
type Compiler struct {
	// rootMod is the root module of the project being checked
	rootMod *mods.RolecModule

	// depGraph is the graph of all the modules in the project organized by ID
	depGraph map[uint]*mods.RolecModule

	// packages holds the package of each module organized by module ID
	packages map[uint]*deps.RolecPackage

	// dependsOn lists the IDs of the direct dependencies of each module
	dependsOn map[uint][]uint

	// initializing is the set of modules whose dependencies are being loaded
	initializing map[uint]struct{}

	// prelude is the package of builtin types imported by every package
	prelude *deps.RolecPackage

	// results are the outcomes of the root module's coercion checks
	results []*CoercionResult
}

// NewCompiler creates a new compiler for a given root module
func NewCompiler(rootMod *mods.RolecModule) *Compiler {
	return &Compiler{
		rootMod:      rootMod,
		depGraph:     make(map[uint]*mods.RolecModule),
		packages:     make(map[uint]*deps.RolecPackage),
		dependsOn:    make(map[uint][]uint),
		initializing: make(map[uint]struct{}),
		prelude:      newPrelude(),
	}
}

// Compile runs the full algorithm on the root module: analysis, the
// configured coercion checks and the emission of coercion shims.  It handles
// all errors appropriately and returns whether the module was accepted.
func (c *Compiler) Compile() bool {
	if !c.Analyze() {
		return false
	}

	logging.LogBeginPhase("Checking coercions")
	c.runCoercionChecks()
	logging.LogEndPhase()

	if !logging.ShouldProceed() {
		return false
	}

	if c.rootMod.EmitLLVM != "" {
		logging.LogBeginPhase("Emitting coercion shims")
		c.emitShims(c.rootMod.EmitLLVM)
		logging.LogEndPhase()
	}

	return logging.ShouldProceed()
}

// Analyze loads the root module and its dependencies and resolves all of
// them.  It returns a boolean indicating whether or not analysis was
// successful.
func (c *Compiler) Analyze() bool {
	logging.LogBeginPhase("Loading modules")
	ok := c.initModule(c.rootMod, nil)
	logging.LogEndPhase()

	if !ok {
		return false
	}

	logging.LogBeginPhase("Inferring roles")
	defer logging.LogEndPhase()

	for _, batch := range c.createResolutionBatches() {
		// each batch is resolved concurrently: the modules of a batch only
		// depend on modules of earlier batches
		wg := &sync.WaitGroup{}
		var failed int32

		for _, id := range batch {
			wg.Add(1)
			go func(id uint) {
				defer wg.Done()

				if !c.resolverFor(id).ResolveAll() {
					atomic.StoreInt32(&failed, 1)
				}
			}(id)
		}

		wg.Wait()

		// we don't want to continue with resolution since other modules will
		// fail to load dependencies from the batch that failed to resolve
		if atomic.LoadInt32(&failed) != 0 {
			return false
		}
	}

	return logging.ShouldProceed()
}

// resolverFor creates the resolver of a loaded module
func (c *Compiler) resolverFor(id uint) *resolve.Resolver {
	imports := []*deps.RolecPackage{c.prelude}
	for _, depID := range c.dependsOn[id] {
		imports = append(imports, c.packages[depID])
	}

	return resolve.NewResolver(c.depGraph[id], c.packages[id], imports...)
}

// createResolutionBatches creates a list of batches of modules that can be
// resolved concurrently.  The batches at the front should be evaluated first:
// a module is placed one batch after the latest batch of its dependencies.
func (c *Compiler) createResolutionBatches() [][]uint {
	heights := make(map[uint]int)

	var heightOf func(id uint) int
	heightOf = func(id uint) int {
		if h, ok := heights[id]; ok {
			return h
		}

		h := 0
		for _, depID := range c.dependsOn[id] {
			if dh := heightOf(depID) + 1; dh > h {
				h = dh
			}
		}

		heights[id] = h
		return h
	}

	ids := maps.Keys(c.packages)
	slices.Sort(ids)

	var batches [][]uint
	for _, id := range ids {
		h := heightOf(id)
		for len(batches) <= h {
			batches = append(batches, nil)
		}

		batches[h] = append(batches[h], id)
	}

	return batches
}

// RootPackage returns the package of the root module.  Its roles are only
// set if analysis succeeded.
func (c *Compiler) RootPackage() *deps.RolecPackage {
	return c.packages[c.rootMod.ID]
}

// Results returns the outcomes of the configured coercion checks
func (c *Compiler) Results() []*CoercionResult {
	return c.results
}
