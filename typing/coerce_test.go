package typing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tInt  = NewCon("Int")
	tBool = NewCon("Bool")
	tAge  = NewCon("Age")
	tA    = NewCon("A")
	tB    = NewCon("B")
)

func TestIsCoercible_Scenarios(t *testing.T) {
	ra := mustCheck(t, preludeDecls())

	t.Run("Wrap", func(t *testing.T) {
		assert.True(t, IsCoercible(ra, NewCon("Wrap", tInt), NewCon("Wrap", tInt)))
		assert.False(t, IsCoercible(ra, NewCon("Wrap", tInt), NewCon("Wrap", tBool)))
		assert.True(t, IsCoercible(ra, NewCon("Wrap", tInt), NewCon("Wrap", tAge)))
	})

	t.Run("Tagged", func(t *testing.T) {
		assert.True(t, IsCoercible(ra, NewCon("Tagged", tA, tInt), NewCon("Tagged", tB, tInt)))
		assert.True(t, IsCoercible(ra, NewCon("Tagged", tA, tInt), NewCon("Tagged", tA, tAge)))
		assert.False(t, IsCoercible(ra, NewCon("Tagged", tA, tInt), NewCon("Tagged", tA, tBool)))
		assert.True(t, IsCoercible(ra, NewCon("Tagged", tA, tInt), NewCon("Tagged", tB, tAge)))
	})

	t.Run("OrderedMap", func(t *testing.T) {
		assert.False(t, IsCoercible(ra, NewCon("OrderedMap", tInt, tBool), NewCon("OrderedMap", tAge, tBool)))
		assert.True(t, IsCoercible(ra, NewCon("OrderedMap", tInt, tBool), NewCon("OrderedMap", tInt, tBool)))
		assert.True(t, IsCoercible(ra, NewCon("OrderedMap", tInt, tInt), NewCon("OrderedMap", tInt, tAge)))
	})

	t.Run("Newtypes", func(t *testing.T) {
		assert.True(t, IsCoercible(ra, tAge, tInt))
		assert.True(t, IsCoercible(ra, tInt, tAge))
		assert.True(t, IsCoercible(ra, NewCon("Id", tAge), tInt))
		assert.True(t, IsCoercible(ra, NewCon("Maybe", tInt), NewCon("Maybe", NewCon("Id", tAge))))
		assert.False(t, IsCoercible(ra, tAge, tBool))
		assert.False(t, IsCoercible(ra, NewCon("Id", tInt), NewCon("Maybe", tInt)))
	})

	t.Run("Functions", func(t *testing.T) {
		assert.True(t, IsCoercible(ra, NewFunc(tAge, tInt), NewFunc(tInt, tAge)))
		assert.False(t, IsCoercible(ra, NewFunc(tBool, tInt), NewFunc(tInt, tInt)))
		assert.False(t, IsCoercible(ra, NewFunc(tInt, tInt), tInt))
	})
}

func TestIsCoercible_EquivalenceRelation(t *testing.T) {
	ra := mustCheck(t, preludeDecls())

	types := []DataType{
		tInt,
		tBool,
		tAge,
		NewCon("Id", tInt),
		NewCon("Id", tAge),
		NewCon("Maybe", tInt),
		NewCon("Maybe", tAge),
		NewCon("Maybe", tBool),
		NewCon("List", NewCon("Id", tInt)),
		NewCon("List", tInt),
		NewCon("Tagged", tInt, tInt),
		NewCon("Tagged", tBool, tAge),
		NewCon("Tagged", tBool, tBool),
		NewCon("Wrap", tAge),
		NewCon("Wrap", tInt),
		NewFunc(tAge, tInt),
		NewFunc(tInt, tAge),
		NewFunc(tBool, tAge),
		NewCon("OrderedMap", tInt, tAge),
		NewCon("OrderedMap", tInt, tInt),
		NewCon("OrderedMap", tAge, tInt),
		NewCon("BST", NewCon("Maybe", tAge)),
		NewCon("BST", NewCon("Maybe", tInt)),
	}

	t.Run("Reflexivity", func(t *testing.T) {
		for _, a := range types {
			assert.True(t, IsCoercible(ra, a, a), a.Repr())
		}
	})

	t.Run("Symmetry", func(t *testing.T) {
		for _, a := range types {
			for _, b := range types {
				assert.Equal(t, IsCoercible(ra, a, b), IsCoercible(ra, b, a), "%s / %s", a.Repr(), b.Repr())
			}
		}
	})

	t.Run("Transitivity", func(t *testing.T) {
		for _, a := range types {
			for _, b := range types {
				if !IsCoercible(ra, a, b) {
					continue
				}

				for _, c := range types {
					if IsCoercible(ra, b, c) {
						assert.True(t, IsCoercible(ra, a, c), "%s / %s / %s", a.Repr(), b.Repr(), c.Repr())
					}
				}
			}
		}
	})
}

func TestIsCoercible_Signatures(t *testing.T) {
	decls := append(preludeDecls(),
		newtypeDecl("Set", params("a"), "MkSet", NewCon("List", tv("a"))),
		dataDecl("Bag", params("a"), cons("MkBag", NewCon("Set", tv("a")))),
		newtypeDecl("Name", nil, "MkName", NewCon("List", NewCon("Char"))),
	)

	ra := mustCheck(t, decls,
		sig("Set", RoleNominal),
		sig("Name", []Role{}...),
	)

	t.Run("Strengthened newtypes are opaque", func(t *testing.T) {
		assert.True(t, ra.IsOpaque("Set"))
		assert.False(t, IsCoercible(ra, NewCon("Set", tInt), NewCon("Set", tAge)))
		assert.False(t, IsCoercible(ra, NewCon("Set", tInt), NewCon("List", tInt)))
		assert.True(t, IsCoercible(ra, NewCon("List", tInt), NewCon("List", tAge)))
	})

	t.Run("Propagated roles restrict users", func(t *testing.T) {
		assert.False(t, IsCoercible(ra, NewCon("Bag", tInt), NewCon("Bag", tAge)))
		assert.True(t, IsCoercible(ra, NewCon("Bag", tInt), NewCon("Bag", tInt)))
	})

	t.Run("Redundant signatures keep newtypes transparent", func(t *testing.T) {
		assert.False(t, ra.IsOpaque("Name"))
		assert.True(t, IsCoercible(ra, NewCon("Name"), NewCon("List", NewCon("Char"))))
	})
}

func TestQuery_Verdicts(t *testing.T) {
	ra := mustCheck(t, preludeDecls())

	t.Run("No carries a reason", func(t *testing.T) {
		v := Query(ra, NewCon("OrderedMap", tInt, tBool), NewCon("OrderedMap", tAge, tBool))
		assert.Equal(t, No, v.Answer)
		assert.Contains(t, v.Reason, "`k`")
		assert.Contains(t, v.Reason, "OrderedMap")
		assert.Contains(t, v.Reason, "nominal")
	})

	t.Run("Rigid variables give obligations", func(t *testing.T) {
		v := Query(ra, NewCon("Maybe", tv("a")), NewCon("Maybe", tInt))
		require.Equal(t, Conditional, v.Answer)
		require.Len(t, v.Obligations, 1)
		assert.Equal(t, RoleRepresentational, v.Obligations[0].Role)
		assert.Equal(t, "a ~R Int", v.Obligations[0].Repr())
		assert.False(t, IsCoercible(ra, NewCon("Maybe", tv("a")), NewCon("Maybe", tInt)))
	})

	t.Run("Nominal obligations", func(t *testing.T) {
		v := Query(ra, NewCon("OrderedMap", tv("k"), tInt), NewCon("OrderedMap", tInt, tAge))
		require.Equal(t, Conditional, v.Answer)
		assert.Equal(t, []Obligation{{Left: tv("k"), Right: tInt, Role: RoleNominal}}, v.Obligations)
	})

	t.Run("Identical open types", func(t *testing.T) {
		assert.Equal(t, Yes, Query(ra, NewCon("Maybe", tv("a")), NewCon("Maybe", tv("a"))).Answer)
	})

	t.Run("A definite failure beats obligations", func(t *testing.T) {
		v := Query(ra, NewCon("Tagged", tA, NewFunc(tv("a"), tBool)), NewCon("Tagged", tB, NewFunc(tInt, tInt)))
		assert.Equal(t, No, v.Answer)
	})

	t.Run("Unknown constructors are nominal", func(t *testing.T) {
		assert.False(t, IsCoercible(ra, NewCon("Mystery", tInt), NewCon("Mystery", tAge)))
		assert.True(t, IsCoercible(ra, NewCon("Mystery", tInt), NewCon("Mystery", tInt)))
	})
}

func TestCheckCoercible_Depth(t *testing.T) {
	decls := append(preludeDecls(),
		// newtype Loop = MkLoop Loop
		newtypeDecl("Loop", nil, "MkLoop", NewCon("Loop")),
	)
	ra := mustCheck(t, decls)

	ok, err := CheckCoercible(ra, NewCon("Loop"), tInt)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrDepthExceeded)

	ok, err = CheckCoercible(ra, NewCon("Loop"), NewCon("Loop"))
	assert.True(t, ok)
	assert.NoError(t, err)

	v := QueryWithDepth(ra, NewCon("Maybe", NewCon("Id", tAge)), NewCon("Maybe", tInt), 1)
	assert.True(t, v.Exhausted)
	assert.Equal(t, No, v.Answer)
}

func TestIsCoercible_Concurrent(t *testing.T) {
	ra := mustCheck(t, preludeDecls())

	var wg sync.WaitGroup
	results := make([]bool, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = IsCoercible(ra, NewCon("List", NewCon("Id", tAge)), NewCon("List", tInt))
		}(i)
	}

	wg.Wait()
	for _, r := range results {
		assert.True(t, r)
	}
}
