package typing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tv(name string) *TypeVar {
	return &TypeVar{Name: name}
}

func dataDecl(name string, params []string, cons ...*DataCons) *Decl {
	return &Decl{Name: name, Kind: DeclData, Params: params, Constructors: cons}
}

func newtypeDecl(name string, params []string, consName string, field DataType) *Decl {
	return &Decl{
		Name:         name,
		Kind:         DeclNewtype,
		Params:       params,
		Constructors: []*DataCons{{Name: consName, Fields: []DataType{field}}},
	}
}

func cons(name string, fields ...DataType) *DataCons {
	return &DataCons{Name: name, Fields: fields}
}

func params(names ...string) []string {
	return names
}

// preludeDecls are the builtins plus a handful of common declarations shared
// by the tests below
func preludeDecls() []*Decl {
	return []*Decl{
		NewBuiltin("Int"),
		NewBuiltin("Bool"),
		NewBuiltin("Char"),
		NewBuiltin("A"),
		NewBuiltin("B"),

		// data Maybe a = Nothing | Just a
		dataDecl("Maybe", params("a"), cons("Nothing"), cons("Just", tv("a"))),

		// data List a = Nil | Cons a (List a)
		dataDecl("List", params("a"), cons("Nil"), cons("Cons", tv("a"), NewCon("List", tv("a")))),

		// newtype Age = MkAge Int
		newtypeDecl("Age", nil, "MkAge", NewCon("Int")),

		// newtype Id a = MkId a
		newtypeDecl("Id", params("a"), "MkId", tv("a")),

		// data Wrap a = MkWrap a
		dataDecl("Wrap", params("a"), cons("MkWrap", tv("a"))),

		// data Tagged k v = MkTagged v
		dataDecl("Tagged", params("k", "v"), cons("MkTagged", tv("v"))),

		// class Ord a
		{Name: "Ord", Kind: DeclClass, Params: params("a")},

		// data OrderedMap k v = Ord k => Bin k v (OrderedMap k v) (OrderedMap k v) | Tip
		dataDecl("OrderedMap", params("k", "v"),
			&DataCons{
				Name:    "Bin",
				Context: []*Constraint{{Class: "Ord", Args: []DataType{tv("k")}}},
				Fields: []DataType{
					tv("k"),
					tv("v"),
					NewCon("OrderedMap", tv("k"), tv("v")),
					NewCon("OrderedMap", tv("k"), tv("v")),
				},
			},
			cons("Tip"),
		),

		// data BST v = Leaf | Node (BST v) v (BST v)
		dataDecl("BST", params("v"),
			cons("Leaf"),
			cons("Node", NewCon("BST", tv("v")), tv("v"), NewCon("BST", tv("v"))),
		),
	}
}

// mustCheck builds, infers and validates, failing the test on any error
func mustCheck(t *testing.T, decls []*Decl, sigs ...*RoleSignature) *RoleAssignment {
	t.Helper()

	ra, err := Check(decls, sigs)
	require.NoError(t, err)
	require.NotNil(t, ra)
	return ra
}

func mustInfer(t *testing.T, decls []*Decl) *RoleAssignment {
	t.Helper()

	tg, err := BuildGraph(decls)
	require.NoError(t, err)
	return Infer(tg)
}

func sig(name string, roles ...Role) *RoleSignature {
	return &RoleSignature{Constructor: name, Roles: roles}
}
