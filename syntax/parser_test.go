package syntax

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []*Token {
	t.Helper()

	l := NewLexer(bufio.NewReader(strings.NewReader(src)))

	var toks []*Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)

		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

func TestLexer(t *testing.T) {
	t.Run("Kinds", func(t *testing.T) {
		toks := lexAll(t, "data Maybe a = Nothing | Just a -- trailing\nnewtype _ x' -> => ~ , ( )")

		var kinds []int
		for _, tok := range toks {
			kinds = append(kinds, tok.Kind)
		}

		assert.Equal(t, []int{
			TOK_DATA, TOK_CON, TOK_VAR, TOK_ASSIGN, TOK_CON, TOK_PIPE, TOK_CON, TOK_VAR,
			TOK_NEWTYPE, TOK_UNDERSCORE, TOK_VAR, TOK_ARROW, TOK_FATARROW, TOK_TILDE,
			TOK_COMMA, TOK_LPAREN, TOK_RPAREN, TOK_EOF,
		}, kinds)
	})

	t.Run("Positions", func(t *testing.T) {
		toks := lexAll(t, "-- header\n  class Ord a")

		require.Len(t, toks, 4)
		assert.Equal(t, "class", toks[0].Value)
		assert.Equal(t, 2, toks[0].Pos.StartLn)
		assert.Equal(t, 2, toks[0].Pos.StartCol)
		assert.Equal(t, 7, toks[0].Pos.EndCol)
		assert.Equal(t, "Ord", toks[1].Value)
	})

	t.Run("Unknown rune", func(t *testing.T) {
		l := NewLexer(bufio.NewReader(strings.NewReader("data T = MkT ;")))

		var err error
		for err == nil {
			var tok *Token
			tok, err = l.NextToken()
			if tok != nil && tok.Kind == TOK_EOF {
				break
			}
		}

		var serr *SyntaxError
		require.ErrorAs(t, err, &serr)
		assert.Contains(t, serr.Message, "unknown rune")
		assert.Equal(t, 13, serr.Pos.StartCol)
	})

	t.Run("Lone dash", func(t *testing.T) {
		_, err := ParseFile(strings.NewReader("data T = MkT - "))
		assert.Error(t, err)
	})
}

func TestParseFile(t *testing.T) {
	src := `
-- containers
data Maybe a = Nothing | Just a
newtype Age = MkAge Int
data Set a = Ord a => MkSet (List a)
data OrderedMap k v = (Ord k) => Bin k v (OrderedMap k v) (OrderedMap k v) | Tip
data Refined a = (a ~ Int, Show a) => MkRefined a
data Fn a b = MkFn (a -> b -> Maybe b)
data Void
family Elem c
class Ord a
type role Set nominal
type role Tagged phantom _
`

	file, err := ParseFile(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, file.TypeDefs, 9)
	require.Len(t, file.RoleDefs, 2)

	t.Run("Data with alternatives", func(t *testing.T) {
		maybe := file.TypeDefs[0]
		assert.Equal(t, DefData, maybe.Kind)
		assert.Equal(t, "Maybe", maybe.Name.Name)
		require.Len(t, maybe.Params, 1)
		assert.Equal(t, "a", maybe.Params[0].Name)
		require.Len(t, maybe.Constructors, 2)
		assert.Empty(t, maybe.Constructors[0].Fields)

		just := maybe.Constructors[1]
		assert.Equal(t, "Just", just.Name.Name)
		require.Len(t, just.Fields, 1)
		assert.True(t, just.Fields[0].(*TypeApp).IsVar)
	})

	t.Run("Newtype", func(t *testing.T) {
		age := file.TypeDefs[1]
		assert.Equal(t, DefNewtype, age.Kind)
		require.Len(t, age.Constructors, 1)
		field := age.Constructors[0].Fields[0].(*TypeApp)
		assert.Equal(t, "Int", field.Head.Name)
		assert.False(t, field.IsVar)
	})

	t.Run("Unparenthesized context", func(t *testing.T) {
		set := file.TypeDefs[2].Constructors[0]
		require.Len(t, set.Context, 1)
		assert.Equal(t, "Ord", set.Context[0].Class.Name)
		assert.Equal(t, "MkSet", set.Name.Name)

		list := set.Fields[0].(*TypeApp)
		assert.Equal(t, "List", list.Head.Name)
		require.Len(t, list.Args, 1)
	})

	t.Run("Parenthesized context", func(t *testing.T) {
		bin := file.TypeDefs[3].Constructors[0]
		require.Len(t, bin.Context, 1)
		assert.Len(t, bin.Fields, 4)
		assert.Equal(t, "Tip", file.TypeDefs[3].Constructors[1].Name.Name)
	})

	t.Run("Equality in a context", func(t *testing.T) {
		refined := file.TypeDefs[4].Constructors[0]
		require.Len(t, refined.Context, 2)
		assert.True(t, refined.Context[0].Equality)
		assert.Len(t, refined.Context[0].Args, 2)
		assert.Equal(t, "Show", refined.Context[1].Class.Name)
	})

	t.Run("Arrows associate to the right", func(t *testing.T) {
		arrow := file.TypeDefs[5].Constructors[0].Fields[0].(*ArrowType)
		assert.Equal(t, "a", arrow.Arg.(*TypeApp).Head.Name)

		rest := arrow.Result.(*ArrowType)
		assert.Equal(t, "Maybe", rest.Result.(*TypeApp).Head.Name)
	})

	t.Run("Empty data, families and classes", func(t *testing.T) {
		assert.Empty(t, file.TypeDefs[6].Constructors)
		assert.Equal(t, DefFamily, file.TypeDefs[7].Kind)
		assert.Equal(t, DefClass, file.TypeDefs[8].Kind)
	})

	t.Run("Role definitions", func(t *testing.T) {
		tagged := file.RoleDefs[1]
		assert.Equal(t, "Tagged", tagged.Name.Name)
		require.Len(t, tagged.Roles, 2)
		assert.Equal(t, "phantom", tagged.Roles[0].Name)
		assert.Equal(t, "_", tagged.Roles[1].Name)
	})

	t.Run("Positions span the definition", func(t *testing.T) {
		maybe := file.TypeDefs[0]
		assert.Equal(t, 3, maybe.Pos.StartLn)
		assert.Equal(t, 0, maybe.Pos.StartCol)
		assert.Equal(t, 31, maybe.Pos.EndCol)
	})
}

func TestParseFile_NewtypeAlternatives(t *testing.T) {
	file, err := ParseFile(strings.NewReader("newtype N = A Int | B Int\ndata M = MkM"))
	require.NoError(t, err)
	require.Len(t, file.TypeDefs, 2)

	nt := file.TypeDefs[0]
	assert.Equal(t, DefNewtype, nt.Kind)
	require.Len(t, nt.Constructors, 2)
	assert.Equal(t, "A", nt.Constructors[0].Name.Name)
	assert.Equal(t, "B", nt.Constructors[1].Name.Name)
	assert.Equal(t, "M", file.TypeDefs[1].Name.Name)
}

func TestParseFile_Errors(t *testing.T) {
	cases := []struct {
		name, src, msg string
	}{
		{"Missing constructor", "data T a =", "expected type constructor"},
		{"Lowercase type name", "data t = MkT", "expected type constructor"},
		{"Newtype without body", "newtype N a\ndata M", "expected `=`"},
		{"Stray token", "data T = MkT\n)", "expected a declaration"},
		{"Bad role line", "type Set nominal", "expected `role`"},
		{"Variable constraint", "data T a = a => MkT", "expected a class constraint"},
		{"Unclosed parenthesis", "data T a = MkT (Maybe a", "expected `)`"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseFile(strings.NewReader(c.src))

			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Contains(t, serr.Message, c.msg)
			assert.NotNil(t, serr.Pos)
		})
	}
}

func TestParseType(t *testing.T) {
	t.Run("Application", func(t *testing.T) {
		texpr, err := ParseType("Either (Maybe a) Int")
		require.NoError(t, err)

		app := texpr.(*TypeApp)
		assert.Equal(t, "Either", app.Head.Name)
		require.Len(t, app.Args, 2)
		assert.Equal(t, "Maybe", app.Args[0].(*TypeApp).Head.Name)
	})

	t.Run("Parenthesized heads flatten", func(t *testing.T) {
		texpr, err := ParseType("(Either Int) Bool")
		require.NoError(t, err)
		assert.Len(t, texpr.(*TypeApp).Args, 2)
	})

	t.Run("Arrow", func(t *testing.T) {
		texpr, err := ParseType("(Int -> Int) -> Bool")
		require.NoError(t, err)

		arrow := texpr.(*ArrowType)
		assert.IsType(t, &ArrowType{}, arrow.Arg)
	})

	t.Run("Errors", func(t *testing.T) {
		for _, src := range []string{"", "Int Int)", "->", "(Int -> Int) Bool"} {
			_, err := ParseType(src)
			assert.Error(t, err, src)
		}
	})
}
