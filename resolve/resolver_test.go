package resolve

import (
	"strings"
	"testing"

	"rolec/deps"
	"rolec/logging"
	"rolec/mods"
	"rolec/sem"
	"rolec/syntax"
	"rolec/typing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolvedPackage creates an already resolved package declaring builtins
func resolvedPackage(t *testing.T, name string, builtins ...string) *deps.RolecPackage {
	t.Helper()

	pkg := deps.NewPackage(name, "/"+name)

	var decls []*typing.Decl
	for _, b := range builtins {
		decls = append(decls, typing.NewBuiltin(b))
		require.NoError(t, pkg.Symbols.Define(&sem.Symbol{Name: b, Kind: typing.DeclBuiltin}))
	}

	ra, err := typing.Check(decls, nil)
	require.NoError(t, err)
	pkg.Roles = ra

	return pkg
}

// newPackage creates an unresolved package from source files
func newPackage(t *testing.T, name string, files ...string) *deps.RolecPackage {
	t.Helper()

	pkg := deps.NewPackage(name, "/"+name)
	for i, src := range files {
		ast, err := syntax.ParseFile(strings.NewReader(src))
		require.NoError(t, err)

		pkg.AddFile("/"+name+"/file"+string(rune('a'+i))+".roles", ast)
	}

	return pkg
}

func TestResolveAll(t *testing.T) {
	logging.Initialize("", "silent")

	prelude := resolvedPackage(t, "prelude", "Int", "Bool")
	pkg := newPackage(t, "app",
		"data Set a = Ord a => MkSet (List a)\ntype role Wrap nominal\n",
		"class Ord a\ndata List a = Nil | Cons a (List a)\nnewtype Wrap a = MkWrap (List a)\n",
	)

	r := NewResolver(&mods.RolecModule{Name: "app"}, pkg, prelude)
	require.True(t, r.ResolveAll())
	assert.Zero(t, logging.ErrorCount())

	require.True(t, pkg.Resolved())
	assert.True(t, pkg.Roles.Frozen())
	assert.Equal(t, typing.RoleNominal, pkg.Roles.RoleOf("Set", 0))
	assert.Equal(t, typing.RoleRepresentational, pkg.Roles.RoleOf("List", 0))

	// the signature makes the newtype opaque but leaves the inferred roles
	assert.Equal(t, typing.RoleNominal, pkg.Roles.RoleOf("Wrap", 0))
	assert.Equal(t, typing.OriginSignature, pkg.Roles.OriginOf("Wrap", 0))
	assert.True(t, pkg.Roles.IsOpaque("Wrap"))
	assert.Equal(t, typing.RoleRepresentational, r.Inferred().RoleOf("Wrap", 0))

	// builtins are visible through the import
	assert.True(t, pkg.Roles.Has("Int"))
	assert.False(t, pkg.Roles.IsLocal("Int"))
}

func TestResolveAll_Propagation(t *testing.T) {
	logging.Initialize("", "silent")

	prelude := resolvedPackage(t, "prelude", "Int")
	pkg := newPackage(t, "app", `
data Box a = MkBox a
data Outer a = MkOuter (Box a)
type role Box nominal
`)

	require.True(t, NewResolver(nil, pkg, prelude).ResolveAll())
	assert.Equal(t, typing.RoleNominal, pkg.Roles.RoleOf("Outer", 0))
	assert.Equal(t, typing.OriginPropagated, pkg.Roles.OriginOf("Outer", 0))
}

func TestResolveAll_Errors(t *testing.T) {
	cases := []struct {
		name   string
		files  []string
		errors int
	}{
		{"Walk errors in several files", []string{"data T = MkT Missing", "data U a = MkU b"}, 2},
		{"Duplicate across files", []string{"data T = A", "data T = B"}, 1},
		{"Illegal weakening", []string{"class Ord a\ndata S a = Ord a => MkS a\ntype role S phantom"}, 1},
		{"Signature arity", []string{"data P a b = MkP a b\ntype role P nominal"}, 1},
		{"Duplicate signatures", []string{"data P a = MkP a\ntype role P nominal", "type role P nominal"}, 1},
		{"Signature for an import", []string{"type role Int nominal"}, 1},
		{
			"Weakening forced by another signature",
			[]string{"data Box a = MkBox a\ndata Outer a = MkOuter (Box a)\ntype role Box nominal\ntype role Outer representational"},
			1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			logging.Initialize("", "silent")

			prelude := resolvedPackage(t, "prelude", "Int")
			pkg := newPackage(t, "app", c.files...)

			assert.False(t, NewResolver(nil, pkg, prelude).ResolveAll())
			assert.Equal(t, c.errors, logging.ErrorCount())
			assert.False(t, pkg.Resolved())
		})
	}
}

func TestResolveAll_RedundantSignatures(t *testing.T) {
	logging.Initialize("", "silent")

	prelude := resolvedPackage(t, "prelude", "Int")
	pkg := newPackage(t, "app", "data Box a = MkBox a\ntype role Box representational\n")

	mod := &mods.RolecModule{Name: "app", WarnRedundantSignatures: true}
	require.True(t, NewResolver(mod, pkg, prelude).ResolveAll())
	assert.Equal(t, 1, logging.WarningCount())
}

func TestResolveAll_UnresolvedImport(t *testing.T) {
	logging.Initialize("", "silent")

	unresolved := deps.NewPackage("base", "/base")
	pkg := newPackage(t, "app", "data T = MkT")

	assert.Panics(t, func() {
		NewResolver(nil, pkg, unresolved).ResolveAll()
	})
}
