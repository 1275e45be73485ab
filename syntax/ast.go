package syntax

import "rolec/logging"

// ASTNode represents a piece of the Abstract Syntax Tree (AST)
type ASTNode interface {
	// Position should span the entire node (meaningfully)
	Position() *logging.TextPosition
}

// spanOf returns a text position spanning two positions
func spanOf(start, end *logging.TextPosition) *logging.TextPosition {
	return &logging.TextPosition{
		StartLn:  start.StartLn,
		StartCol: start.StartCol,
		EndLn:    end.EndLn,
		EndCol:   end.EndCol,
	}
}

// File is the AST of a whole declaration file
type File struct {
	TypeDefs []*TypeDef
	RoleDefs []*RoleDef
}

// -----------------------------------------------------------------------------

// Enumeration of type definition kinds
const (
	DefData = iota
	DefNewtype
	DefFamily
	DefClass
)

// Ident is a name together with its position
type Ident struct {
	Name string
	Pos  *logging.TextPosition
}

func (id *Ident) Position() *logging.TextPosition {
	return id.Pos
}

// TypeDef is a `data`, `newtype`, `family` or `class` definition
type TypeDef struct {
	Kind         int
	Name         *Ident
	Params       []*Ident
	Constructors []*ConDef

	Pos *logging.TextPosition
}

func (td *TypeDef) Position() *logging.TextPosition {
	return td.Pos
}

// ConDef is a data constructor: `Ctx => Name field1 field2`
type ConDef struct {
	Name    *Ident
	Context []*ConstraintExpr
	Fields  []TypeExpr

	Pos *logging.TextPosition
}

func (cd *ConDef) Position() *logging.TextPosition {
	return cd.Pos
}

// ConstraintExpr is either an equality `lhs ~ rhs` or a class constraint
type ConstraintExpr struct {
	Equality bool

	// Class is nil for equalities
	Class *Ident
	Args  []TypeExpr

	Pos *logging.TextPosition
}

func (ce *ConstraintExpr) Position() *logging.TextPosition {
	return ce.Pos
}

// RoleDef is a role annotation: `type role Name r1 r2 ...`.  The role names
// are checked later so that all bad names can be reported together.
type RoleDef struct {
	Name  *Ident
	Roles []*Ident

	Pos *logging.TextPosition
}

func (rd *RoleDef) Position() *logging.TextPosition {
	return rd.Pos
}

// -----------------------------------------------------------------------------

// TypeExpr is the AST of a type expression
type TypeExpr interface {
	ASTNode

	isTypeExpr()
}

// TypeApp is a constructor or a variable applied to zero or more arguments
type TypeApp struct {
	Head  *Ident
	IsVar bool
	Args  []TypeExpr

	Pos *logging.TextPosition
}

func (ta *TypeApp) Position() *logging.TextPosition {
	return ta.Pos
}

func (ta *TypeApp) isTypeExpr() {}

// ArrowType is a function type `Arg -> Result`
type ArrowType struct {
	Arg, Result TypeExpr
}

func (at *ArrowType) Position() *logging.TextPosition {
	return spanOf(at.Arg.Position(), at.Result.Position())
}

func (at *ArrowType) isTypeExpr() {}
