package sem

import (
	"fmt"
	"sync"
)

// SymbolTable holds the symbols declared by one module.  Lookups fall back to
// the tables it imports in the order they were added.  The table is safe for
// concurrent use: files of a module are walked concurrently.
type SymbolTable struct {
	// Module is the name of the module owning the table
	Module string

	symbols map[string]*Symbol
	order   []string
	imports []*SymbolTable

	m sync.RWMutex
}

// NewSymbolTable creates an empty table for a module
func NewSymbolTable(module string) *SymbolTable {
	return &SymbolTable{
		Module:  module,
		symbols: make(map[string]*Symbol),
	}
}

// DuplicateSymbolError is returned when a name is declared twice
type DuplicateSymbolError struct {
	Name string

	// Previous is the symbol that already holds the name
	Previous *Symbol
}

func (e *DuplicateSymbolError) Error() string {
	if e.Previous.Module != "" && e.Previous.Position == nil {
		return fmt.Sprintf("symbol named `%s` already defined by module `%s`", e.Name, e.Previous.Module)
	}

	return fmt.Sprintf("symbol named `%s` already defined", e.Name)
}

// Define adds a symbol to the table.  A name visible through an import can't
// be redeclared either.
func (st *SymbolTable) Define(sym *Symbol) error {
	if prev, ok := st.Lookup(sym.Name); ok {
		return &DuplicateSymbolError{Name: sym.Name, Previous: prev}
	}

	st.m.Lock()
	defer st.m.Unlock()

	// another file may have taken the name since the lookup
	if prev, ok := st.symbols[sym.Name]; ok {
		return &DuplicateSymbolError{Name: sym.Name, Previous: prev}
	}

	if sym.Module == "" {
		sym.Module = st.Module
	}

	st.symbols[sym.Name] = sym
	st.order = append(st.order, sym.Name)
	return nil
}

// AddImport makes the symbols of another table visible through this one
func (st *SymbolTable) AddImport(other *SymbolTable) {
	st.m.Lock()
	defer st.m.Unlock()

	st.imports = append(st.imports, other)
}

// Lookup finds a symbol declared locally or by an import
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	if sym, ok := st.LookupLocal(name); ok {
		return sym, true
	}

	st.m.RLock()
	imports := st.imports
	st.m.RUnlock()

	for _, imp := range imports {
		if sym, ok := imp.Lookup(name); ok {
			return sym, true
		}
	}

	return nil, false
}

// LookupLocal finds a symbol declared by this table's module only
func (st *SymbolTable) LookupLocal(name string) (*Symbol, bool) {
	st.m.RLock()
	defer st.m.RUnlock()

	sym, ok := st.symbols[name]
	return sym, ok
}

// Symbols returns the local symbols in declaration order
func (st *SymbolTable) Symbols() []*Symbol {
	st.m.RLock()
	defer st.m.RUnlock()

	syms := make([]*Symbol, len(st.order))
	for i, name := range st.order {
		syms[i] = st.symbols[name]
	}

	return syms
}
