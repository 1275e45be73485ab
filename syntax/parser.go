package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser for declaration files.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens of their production, leaving
// the parser on the next token.  They return false as soon as an error has
// been recorded.  Parsers are created once per input.
type Parser struct {
	// toks is the whole token stream; contexts need unbounded lookahead
	toks []*Token
	ndx  int

	// tok is the current token the parser is positioned on
	tok *Token

	// err is the first syntax error encountered
	err error
}

// NewParser lexes the entire input and creates a parser over it
func NewParser(r io.Reader) (*Parser, error) {
	lexer := NewLexer(bufio.NewReader(r))

	var toks []*Token
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			break
		}
	}

	return &Parser{toks: toks, tok: toks[0]}, nil
}

// ParseFile parses a declaration file
func ParseFile(r io.Reader) (*File, error) {
	p, err := NewParser(r)
	if err != nil {
		return nil, err
	}

	if file, ok := p.parseFile(); ok {
		return file, nil
	}

	return nil, p.err
}

// ParseType parses a standalone type expression such as `Maybe (List Int)`
func ParseType(src string) (TypeExpr, error) {
	p, err := NewParser(strings.NewReader(src))
	if err != nil {
		return nil, err
	}

	if p.got(TOK_EOF) {
		return nil, raise(p.tok.Pos, "expected a type")
	}

	texpr, ok := p.parseType()
	if !ok || !p.assert(TOK_EOF) {
		return nil, p.err
	}

	return texpr, nil
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past EOF.
func (p *Parser) next() bool {
	if p.ndx < len(p.toks)-1 {
		p.ndx++
		p.tok = p.toks[p.ndx]
	}

	return true
}

// lookahead returns the token n positions past the current one (EOF once the
// stream is exhausted)
func (p *Parser) lookahead(n int) *Token {
	if p.ndx+n < len(p.toks) {
		return p.toks[p.ndx+n]
	}

	return p.toks[len(p.toks)-1]
}

// got returns true if the parser is on a token of a given kind
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not
func (p *Parser) assert(kind int) bool {
	if p.got(kind) {
		return true
	}

	p.rejectWithMsg("expected %s but got %s", tokenNames[kind], p.tok.describe())
	return false
}

// assertAndNext performs an assert operation and moves the parser forward
func (p *Parser) assertAndNext(kind int) bool {
	return p.assert(kind) && p.next()
}

// rejectWithMsg records a syntax error on the current token.  Only the first
// error is kept.
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) {
	if p.err == nil {
		p.err = raise(p.tok.Pos, fmt.Sprintf(msg, a...))
	}
}

// ident converts the current token to an identifier and moves forward
func (p *Parser) ident() *Ident {
	id := &Ident{Name: p.tok.Value, Pos: p.tok.Pos}
	p.next()
	return id
}

// -----------------------------------------------------------------------------

// file = {type_def | role_def}
func (p *Parser) parseFile() (*File, bool) {
	file := &File{}

	for !p.got(TOK_EOF) {
		switch p.tok.Kind {
		case TOK_DATA, TOK_NEWTYPE, TOK_FAMILY, TOK_CLASS:
			td, ok := p.parseTypeDef()
			if !ok {
				return nil, false
			}

			file.TypeDefs = append(file.TypeDefs, td)
		case TOK_TYPE:
			rd, ok := p.parseRoleDef()
			if !ok {
				return nil, false
			}

			file.RoleDefs = append(file.RoleDefs, rd)
		default:
			p.rejectWithMsg("expected a declaration but got %s", p.tok.describe())
			return nil, false
		}
	}

	return file, true
}

// parseTypeDef parses a type definition:
//
//	type_def = 'data' 'CON' {'VAR'} ['=' con_def {'|' con_def}]
//	         | 'newtype' 'CON' {'VAR'} '=' con_def {'|' con_def}
//	         | ('family' | 'class') 'CON' {'VAR'}
//
// A newtype's alternatives are parsed like those of data so that its shape can
// be checked with the rest of the definition.
func (p *Parser) parseTypeDef() (*TypeDef, bool) {
	start := p.tok.Pos

	td := &TypeDef{}
	switch p.tok.Kind {
	case TOK_DATA:
		td.Kind = DefData
	case TOK_NEWTYPE:
		td.Kind = DefNewtype
	case TOK_FAMILY:
		td.Kind = DefFamily
	case TOK_CLASS:
		td.Kind = DefClass
	}

	p.next()

	if !p.assert(TOK_CON) {
		return nil, false
	}
	td.Name = p.ident()

	for p.got(TOK_VAR) {
		td.Params = append(td.Params, p.ident())
	}

	end := p.toks[p.ndx-1].Pos

	switch td.Kind {
	case DefFamily, DefClass:
		td.Pos = spanOf(start, end)
		return td, true
	case DefData:
		if !p.got(TOK_ASSIGN) {
			td.Pos = spanOf(start, end)
			return td, true
		}
	}

	if !p.assertAndNext(TOK_ASSIGN) {
		return nil, false
	}

	for {
		cd, ok := p.parseConDef()
		if !ok {
			return nil, false
		}

		td.Constructors = append(td.Constructors, cd)

		if !p.got(TOK_PIPE) {
			break
		}

		p.next()
	}

	td.Pos = spanOf(start, p.toks[p.ndx-1].Pos)
	return td, true
}

// con_def = [context '=>'] 'CON' {atype}
func (p *Parser) parseConDef() (*ConDef, bool) {
	start := p.tok.Pos
	cd := &ConDef{}

	if p.hasContext() {
		ctx, ok := p.parseContext()
		if !ok {
			return nil, false
		}

		cd.Context = ctx

		if !p.assertAndNext(TOK_FATARROW) {
			return nil, false
		}
	}

	if !p.assert(TOK_CON) {
		return nil, false
	}
	cd.Name = p.ident()

	for p.gotOneOf(TOK_CON, TOK_VAR, TOK_LPAREN) {
		field, ok := p.parseAtomType()
		if !ok {
			return nil, false
		}

		cd.Fields = append(cd.Fields, field)
	}

	cd.Pos = spanOf(start, p.toks[p.ndx-1].Pos)
	return cd, true
}

// hasContext scans ahead for a `=>` belonging to the current constructor
func (p *Parser) hasContext() bool {
	depth := 0
	for i := 0; ; i++ {
		switch p.lookahead(i).Kind {
		case TOK_LPAREN:
			depth++
		case TOK_RPAREN:
			depth--
		case TOK_FATARROW:
			return depth == 0
		case TOK_EOF:
			return false
		case TOK_PIPE, TOK_DATA, TOK_NEWTYPE, TOK_FAMILY, TOK_CLASS, TOK_TYPE:
			if depth == 0 {
				return false
			}
		}

		if depth < 0 {
			return false
		}
	}
}

// context = constraint | '(' constraint {',' constraint} ')'
func (p *Parser) parseContext() ([]*ConstraintExpr, bool) {
	if p.got(TOK_LPAREN) && p.parenthesizedContext() {
		p.next()

		var ctx []*ConstraintExpr
		for {
			cons, ok := p.parseConstraint()
			if !ok {
				return nil, false
			}

			ctx = append(ctx, cons)

			if p.got(TOK_COMMA) {
				p.next()
				continue
			}

			if !p.assertAndNext(TOK_RPAREN) {
				return nil, false
			}

			return ctx, true
		}
	}

	cons, ok := p.parseConstraint()
	if !ok {
		return nil, false
	}

	return []*ConstraintExpr{cons}, true
}

// parenthesizedContext reports whether the parenthesis the parser is on
// encloses the whole context, ie. it is directly followed by `=>`
func (p *Parser) parenthesizedContext() bool {
	depth := 0
	for i := 0; ; i++ {
		switch p.lookahead(i).Kind {
		case TOK_LPAREN:
			depth++
		case TOK_RPAREN:
			depth--
			if depth == 0 {
				return p.lookahead(i+1).Kind == TOK_FATARROW
			}
		case TOK_EOF:
			return false
		}
	}
}

// constraint = btype '~' btype | 'CON' {atype}
func (p *Parser) parseConstraint() (*ConstraintExpr, bool) {
	start := p.tok.Pos

	lhs, ok := p.parseAppType()
	if !ok {
		return nil, false
	}

	if p.got(TOK_TILDE) {
		p.next()

		rhs, ok := p.parseAppType()
		if !ok {
			return nil, false
		}

		return &ConstraintExpr{
			Equality: true,
			Args:     []TypeExpr{lhs, rhs},
			Pos:      spanOf(start, rhs.Position()),
		}, true
	}

	if app, ok := lhs.(*TypeApp); ok && !app.IsVar {
		return &ConstraintExpr{Class: app.Head, Args: app.Args, Pos: app.Pos}, true
	}

	p.err = raise(lhs.Position(), "expected a class constraint or an equality")
	return nil, false
}

// role_def = 'type' 'role' 'CON' {'VAR' | '_'}
func (p *Parser) parseRoleDef() (*RoleDef, bool) {
	start := p.tok.Pos
	p.next()

	if !p.got(TOK_VAR) || p.tok.Value != "role" {
		p.rejectWithMsg("expected `role` but got %s", p.tok.describe())
		return nil, false
	}

	p.next()

	if !p.assert(TOK_CON) {
		return nil, false
	}

	rd := &RoleDef{Name: p.ident()}
	for p.gotOneOf(TOK_VAR, TOK_UNDERSCORE) {
		rd.Roles = append(rd.Roles, p.ident())
	}

	rd.Pos = spanOf(start, p.toks[p.ndx-1].Pos)
	return rd, true
}

// -----------------------------------------------------------------------------

// type = btype ['->' type]
func (p *Parser) parseType() (TypeExpr, bool) {
	arg, ok := p.parseAppType()
	if !ok {
		return nil, false
	}

	if !p.got(TOK_ARROW) {
		return arg, true
	}

	p.next()

	result, ok := p.parseType()
	if !ok {
		return nil, false
	}

	return &ArrowType{Arg: arg, Result: result}, true
}

// btype = atype {atype}
func (p *Parser) parseAppType() (TypeExpr, bool) {
	head, ok := p.parseAtomType()
	if !ok {
		return nil, false
	}

	if !p.gotOneOf(TOK_CON, TOK_VAR, TOK_LPAREN) {
		return head, true
	}

	app, isApp := head.(*TypeApp)
	if !isApp {
		p.rejectWithMsg("a function type cannot be applied to arguments")
		return nil, false
	}

	// `(Maybe a) b` is the same as `Maybe a b`
	app = &TypeApp{Head: app.Head, IsVar: app.IsVar, Args: append([]TypeExpr{}, app.Args...), Pos: app.Pos}
	for p.gotOneOf(TOK_CON, TOK_VAR, TOK_LPAREN) {
		arg, ok := p.parseAtomType()
		if !ok {
			return nil, false
		}

		app.Args = append(app.Args, arg)
	}

	app.Pos = spanOf(app.Pos, p.toks[p.ndx-1].Pos)
	return app, true
}

// atype = 'CON' | 'VAR' | '(' type ')'
func (p *Parser) parseAtomType() (TypeExpr, bool) {
	switch p.tok.Kind {
	case TOK_CON, TOK_VAR:
		isVar := p.got(TOK_VAR)
		id := p.ident()
		return &TypeApp{Head: id, IsVar: isVar, Pos: id.Pos}, true
	case TOK_LPAREN:
		p.next()

		inner, ok := p.parseType()
		if !ok {
			return nil, false
		}

		if !p.assertAndNext(TOK_RPAREN) {
			return nil, false
		}

		return inner, true
	}

	p.rejectWithMsg("expected a type but got %s", p.tok.describe())
	return nil, false
}
