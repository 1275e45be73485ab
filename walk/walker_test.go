package walk

import (
	"strings"
	"testing"

	"rolec/deps"
	"rolec/logging"
	"rolec/sem"
	"rolec/syntax"
	"rolec/typing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPackage creates a package whose symbol table imports `Int` and
// `Bool` builtins
func newTestPackage(t *testing.T) *deps.RolecPackage {
	t.Helper()

	builtins := sem.NewSymbolTable("prelude")
	for _, name := range []string{"Int", "Bool"} {
		require.NoError(t, builtins.Define(&sem.Symbol{Name: name, Kind: typing.DeclBuiltin}))
	}

	pkg := deps.NewPackage("main", "/src/main")
	pkg.Symbols.AddImport(builtins)
	return pkg
}

// walkSource parses, declares and walks a single file
func walkSource(t *testing.T, pkg *deps.RolecPackage, src string) ([]*typing.Decl, []*typing.RoleSignature, bool) {
	t.Helper()

	ast, err := syntax.ParseFile(strings.NewReader(src))
	require.NoError(t, err)

	w := NewWalker(pkg.AddFile("/src/main/types.roles", ast))
	if !w.DeclareSymbols() {
		return nil, nil, false
	}

	return w.WalkFile()
}

func TestWalkFile(t *testing.T) {
	logging.Initialize("", "silent")

	src := `
data Maybe a = Nothing | Just a
newtype Age = MkAge Int
class Ord a
family Elem c
data Set a = Ord a => MkSet (List a) (Elem a)
data List a = Nil | Cons a (List a)
data Apply f a = MkApply (f a) (a -> Bool)
data Refined a = (a ~ Int) => MkRefined a
type role Set nominal
type role Apply nominal _
`

	decls, sigs, ok := walkSource(t, newTestPackage(t), src)
	require.True(t, ok)
	require.Len(t, decls, 8)
	require.Len(t, sigs, 2)
	assert.Zero(t, logging.ErrorCount())

	t.Run("Kinds and params", func(t *testing.T) {
		assert.Equal(t, typing.DeclData, decls[0].Kind)
		assert.Equal(t, []string{"a"}, decls[0].Params)
		assert.Equal(t, typing.DeclNewtype, decls[1].Kind)
		assert.Equal(t, typing.DeclClass, decls[2].Kind)
		assert.Equal(t, typing.DeclFamily, decls[3].Kind)
	})

	t.Run("Newtype field", func(t *testing.T) {
		field, ok := decls[1].Field()
		require.True(t, ok)
		assert.True(t, typing.Equals(typing.NewCon("Int"), field))
	})

	t.Run("Forward references and families", func(t *testing.T) {
		mkSet := decls[4].Constructors[0]
		require.Len(t, mkSet.Context, 1)
		assert.Equal(t, "Ord", mkSet.Context[0].Class)

		require.Len(t, mkSet.Fields, 2)
		assert.Equal(t, "List a", mkSet.Fields[0].Repr())
		assert.IsType(t, &typing.FamilyApp{}, mkSet.Fields[1])
	})

	t.Run("Variable heads and arrows", func(t *testing.T) {
		fields := decls[6].Constructors[0].Fields
		assert.IsType(t, &typing.VarApp{}, fields[0])
		assert.IsType(t, &typing.FuncType{}, fields[1])
	})

	t.Run("Equality contexts", func(t *testing.T) {
		ctx := decls[7].Constructors[0].Context
		require.Len(t, ctx, 1)
		assert.True(t, ctx[0].Equality)
		assert.Equal(t, "a ~ Int", ctx[0].Repr())
	})

	t.Run("Signatures", func(t *testing.T) {
		assert.Equal(t, "Set", sigs[0].Constructor)
		assert.Equal(t, []typing.Role{typing.RoleNominal}, sigs[0].Roles)
		assert.Equal(t, []typing.Role{typing.RoleNominal, typing.RoleInferred}, sigs[1].Roles)
	})

	t.Run("Lowered declarations check", func(t *testing.T) {
		builtins := []*typing.Decl{typing.NewBuiltin("Int"), typing.NewBuiltin("Bool")}

		ra, err := typing.Check(append(builtins, decls...), sigs)
		require.NoError(t, err)
		assert.Equal(t, []typing.Role{typing.RoleNominal}, mustRoles(t, ra, "Set"))
		assert.Equal(t, []typing.Role{typing.RoleRepresentational}, mustRoles(t, ra, "Maybe"))
		assert.Equal(t, []typing.Role{typing.RoleNominal, typing.RoleNominal}, mustRoles(t, ra, "Apply"))
	})
}

func mustRoles(t *testing.T, ra *typing.RoleAssignment, name string) []typing.Role {
	t.Helper()

	roles, ok := ra.RolesOf(name)
	require.True(t, ok, name)
	return roles
}

func TestWalkFile_Errors(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		errors int
	}{
		{"Duplicate definition", "data T = A\ndata T = B", 1},
		{"Shadowing a builtin", "data Int = MkInt", 1},
		{"Duplicate parameter", "data T a a = MkT a", 1},
		{"Undefined variable", "data T a = MkT b", 1},
		{"Undefined constructor", "data T = MkT Missing", 1},
		{"Over-application", "data T a = MkT (Int a)", 1},
		{"Class as a type", "class Ord a\ndata T a = MkT (Ord a)", 1},
		{"Data as a class", "data T a = Int a => MkT a", 1},
		{"Class arity", "class Ord a\ndata T a = Ord a a => MkT a", 1},
		{"Newtype with two fields", "newtype N = MkN Int Int", 1},
		{"Newtype with two constructors", "newtype N = A Int | B Int", 1},
		{"Duplicate data constructor", "data T = A | A", 1},
		{"Unknown role", "data T a = MkT a\ntype role T strong", 1},
		{"Role for an undefined constructor", "type role Missing nominal", 1},
		{"Every error is reported", "data T a = MkT b c Missing", 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			logging.Initialize("", "silent")

			_, _, ok := walkSource(t, newTestPackage(t), c.src)
			assert.False(t, ok)
			assert.Equal(t, c.errors, logging.ErrorCount())
		})
	}
}

func TestWalkRoleDef_NoEffect(t *testing.T) {
	logging.Initialize("", "silent")

	_, sigs, ok := walkSource(t, newTestPackage(t), "data T a = MkT a\ntype role T _")
	require.True(t, ok)
	require.Len(t, sigs, 1)
	assert.Equal(t, 1, logging.WarningCount())
}

func TestParseAndLowerType(t *testing.T) {
	pkg := newTestPackage(t)
	_, _, ok := walkSource(t, pkg, "data Maybe a = Nothing | Just a\nclass Ord a\nfamily F a")
	require.True(t, ok)

	t.Run("Closed", func(t *testing.T) {
		dt, err := ParseAndLowerType("Maybe (Maybe Int)", pkg.Symbols)
		require.NoError(t, err)
		assert.True(t, typing.IsClosed(dt))
		assert.Equal(t, "Maybe (Maybe Int)", dt.Repr())
	})

	t.Run("Rigid variables", func(t *testing.T) {
		dt, err := ParseAndLowerType("f a -> Maybe a", pkg.Symbols)
		require.NoError(t, err)
		assert.Equal(t, []string{"f", "a"}, typing.FreeVars(dt))
	})

	t.Run("Families", func(t *testing.T) {
		dt, err := ParseAndLowerType("F Int", pkg.Symbols)
		require.NoError(t, err)
		assert.IsType(t, &typing.FamilyApp{}, dt)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := ParseAndLowerType("Maybe (", pkg.Symbols)
		var serr *syntax.SyntaxError
		assert.ErrorAs(t, err, &serr)

		_, err = ParseAndLowerType("Missing Int", pkg.Symbols)
		var terr *TypeError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "undefined type constructor `Missing`", terr.Message)

		_, err = ParseAndLowerType("Ord Int", pkg.Symbols)
		assert.ErrorAs(t, err, &terr)
	})
}
