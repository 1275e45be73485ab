package typing

import "strings"

// TypeVar is a reference to a formal parameter of a declaration.  Inside a
// coercion query a type variable is rigid: it only equals itself.
type TypeVar struct {
	Name string
}

func (tv *TypeVar) Repr() string {
	return tv.Name
}

func (tv *TypeVar) equals(other DataType) bool {
	if otv, ok := other.(*TypeVar); ok {
		return tv.Name == otv.Name
	}

	return false
}

// -----------------------------------------------------------------------------

// ConType is a type constructor applied to zero or more arguments.  The
// application may be partial.
type ConType struct {
	Name string
	Args []DataType
}

// NewCon is a convenience constructor for constructor applications
func NewCon(name string, args ...DataType) *ConType {
	return &ConType{Name: name, Args: args}
}

func (ct *ConType) Repr() string {
	return reprApp(ct.Name, ct.Args)
}

func (ct *ConType) equals(other DataType) bool {
	if oct, ok := other.(*ConType); ok {
		return ct.Name == oct.Name && equalsAll(ct.Args, oct.Args)
	}

	return false
}

// -----------------------------------------------------------------------------

// FuncType is the function arrow `Arg -> Result`.  Both sides of the arrow are
// representational.
type FuncType struct {
	Arg    DataType
	Result DataType
}

// NewFunc builds a right-nested arrow out of its argument types and result
func NewFunc(result DataType, args ...DataType) DataType {
	for i := len(args) - 1; i >= 0; i-- {
		result = &FuncType{Arg: args[i], Result: result}
	}

	return result
}

func (ft *FuncType) Repr() string {
	arg := ft.Arg.Repr()
	if _, ok := ft.Arg.(*FuncType); ok {
		arg = "(" + arg + ")"
	}

	return arg + " -> " + ft.Result.Repr()
}

func (ft *FuncType) equals(other DataType) bool {
	if oft, ok := other.(*FuncType); ok {
		return Equals(ft.Arg, oft.Arg) && Equals(ft.Result, oft.Result)
	}

	return false
}

// -----------------------------------------------------------------------------

// FamilyApp is an application of a type family.  Families match on their
// arguments so everything inside one is nominal.
type FamilyApp struct {
	Name string
	Args []DataType
}

func (fa *FamilyApp) Repr() string {
	return reprApp(fa.Name, fa.Args)
}

func (fa *FamilyApp) equals(other DataType) bool {
	if ofa, ok := other.(*FamilyApp); ok {
		return fa.Name == ofa.Name && equalsAll(fa.Args, ofa.Args)
	}

	return false
}

// -----------------------------------------------------------------------------

// VarApp is a type variable applied to arguments: `f a`.  The role of an
// unknown head is unknown so its arguments are treated as nominal.
type VarApp struct {
	Head *TypeVar
	Args []DataType
}

func (va *VarApp) Repr() string {
	return reprApp(va.Head.Name, va.Args)
}

func (va *VarApp) equals(other DataType) bool {
	if ova, ok := other.(*VarApp); ok {
		return va.Head.Name == ova.Head.Name && equalsAll(va.Args, ova.Args)
	}

	return false
}

// -----------------------------------------------------------------------------

// reprApp renders `head arg1 arg2 ...` parenthesizing compound arguments
func reprApp(head string, args []DataType) string {
	if len(args) == 0 {
		return head
	}

	sb := strings.Builder{}
	sb.WriteString(head)

	for _, arg := range args {
		sb.WriteRune(' ')

		if isAtomic(arg) {
			sb.WriteString(arg.Repr())
		} else {
			sb.WriteRune('(')
			sb.WriteString(arg.Repr())
			sb.WriteRune(')')
		}
	}

	return sb.String()
}

// isAtomic reports whether a type can be printed as an argument without
// parentheses
func isAtomic(dt DataType) bool {
	switch v := dt.(type) {
	case *TypeVar:
		return true
	case *ConType:
		return len(v.Args) == 0
	case *FamilyApp:
		return len(v.Args) == 0
	}

	return false
}
