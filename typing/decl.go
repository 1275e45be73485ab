package typing

import "rolec/logging"

// DeclKind is the kind of type-level declaration
type DeclKind int

// Enumeration of declaration kinds
const (
	DeclData    DeclKind = iota // `data`: boxed, any number of constructors
	DeclNewtype                 // `newtype`: one constructor, one field, same representation as the field
	DeclFamily                  // `family`: matches on its arguments
	DeclClass                   // `class`: dictionaries are selected by their arguments
	DeclBuiltin                 // primitive types from the prelude
)

func (dk DeclKind) Repr() string {
	switch dk {
	case DeclData:
		return "data"
	case DeclNewtype:
		return "newtype"
	case DeclFamily:
		return "family"
	case DeclClass:
		return "class"
	default:
		return "builtin"
	}
}

// Constraint is a constraint in the context of a data constructor: either an
// equality `Args[0] ~ Args[1]` or a class constraint `Class Args...`
type Constraint struct {
	Equality bool
	Class    string
	Args     []DataType
}

func (c *Constraint) Repr() string {
	if c.Equality {
		return c.Args[0].Repr() + " ~ " + c.Args[1].Repr()
	}

	return reprApp(c.Class, c.Args)
}

// DataCons is one data constructor of a declaration
type DataCons struct {
	Name    string
	Context []*Constraint
	Fields  []DataType

	Pos *logging.TextPosition
}

// Decl is a type-level declaration as produced by the front end.  It is the
// input to the type graph.
type Decl struct {
	Name         string
	Kind         DeclKind
	Params       []string
	Constructors []*DataCons

	// Pos is the position of the declaration's name.  It may be nil for
	// declarations built in code.
	Pos *logging.TextPosition
}

// Field returns the single field of a newtype
func (d *Decl) Field() (DataType, bool) {
	if d.Kind != DeclNewtype || len(d.Constructors) != 1 || len(d.Constructors[0].Fields) != 1 {
		return nil, false
	}

	return d.Constructors[0].Fields[0], true
}

// NewBuiltin declares a primitive with no parameters
func NewBuiltin(name string) *Decl {
	return &Decl{Name: name, Kind: DeclBuiltin}
}
