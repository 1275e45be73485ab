package sem

import (
	"sync"
	"testing"

	"rolec/logging"
	"rolec/typing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTable(t *testing.T) {
	prelude := NewSymbolTable("prelude")
	require.NoError(t, prelude.Define(&Symbol{Name: "Int", Kind: typing.DeclBuiltin}))

	table := NewSymbolTable("main")
	table.AddImport(prelude)

	pos := &logging.TextPosition{StartLn: 1, EndLn: 1, EndCol: 4}
	require.NoError(t, table.Define(&Symbol{Name: "Maybe", Kind: typing.DeclData, Arity: 1, Position: pos}))

	t.Run("Lookup", func(t *testing.T) {
		sym, ok := table.Lookup("Maybe")
		require.True(t, ok)
		assert.Equal(t, "main", sym.Module)
		assert.Equal(t, 1, sym.Arity)

		sym, ok = table.Lookup("Int")
		require.True(t, ok)
		assert.Equal(t, "prelude", sym.Module)

		_, ok = table.LookupLocal("Int")
		assert.False(t, ok)

		_, ok = table.Lookup("List")
		assert.False(t, ok)
	})

	t.Run("Duplicates", func(t *testing.T) {
		err := table.Define(&Symbol{Name: "Maybe", Kind: typing.DeclNewtype})

		var dup *DuplicateSymbolError
		require.ErrorAs(t, err, &dup)
		assert.Same(t, pos, dup.Previous.Position)
		assert.Equal(t, "symbol named `Maybe` already defined", err.Error())
	})

	t.Run("Shadowing an import", func(t *testing.T) {
		err := table.Define(&Symbol{Name: "Int", Kind: typing.DeclData})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "module `prelude`")
	})

	t.Run("Classes are not types", func(t *testing.T) {
		assert.False(t, (&Symbol{Kind: typing.DeclClass}).IsType())
		assert.True(t, (&Symbol{Kind: typing.DeclFamily}).IsType())
	})
}

func TestSymbolTable_Concurrent(t *testing.T) {
	table := NewSymbolTable("main")

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- table.Define(&Symbol{Name: "T"})
		}()
	}

	wg.Wait()
	close(errs)

	failed := 0
	for err := range errs {
		if err != nil {
			failed++
		}
	}

	assert.Equal(t, 15, failed)
	assert.Len(t, table.Symbols(), 1)
}
