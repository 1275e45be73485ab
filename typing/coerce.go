package typing

import (
	"fmt"
	"rolec/common"
	"strings"
)

// Answer is the outcome of a coercion query
type Answer int

// Enumeration of answers
const (
	No Answer = iota
	Yes
	Conditional
)

func (a Answer) Repr() string {
	switch a {
	case Yes:
		return "yes"
	case Conditional:
		return "conditional"
	default:
		return "no"
	}
}

// Obligation is an equality between two types mentioning rigid type variables
// that the checker cannot decide.  Role says which kind of equality is
// required: Representational or Nominal.
type Obligation struct {
	Left, Right DataType
	Role        Role
}

func (o Obligation) Repr() string {
	if o.Role == RoleNominal {
		return o.Left.Repr() + " ~N " + o.Right.Repr()
	}

	return o.Left.Repr() + " ~R " + o.Right.Repr()
}

// Verdict is the full result of a coercion query
type Verdict struct {
	Answer Answer

	// Reason explains a No answer
	Reason string

	// Obligations are the undecided equalities of a Conditional answer
	Obligations []Obligation

	// Exhausted is set when the query ran out of recursion budget
	Exhausted bool
}

func (v *Verdict) Repr() string {
	switch v.Answer {
	case Yes:
		return "yes"
	case Conditional:
		obs := make([]string, len(v.Obligations))
		for i, o := range v.Obligations {
			obs[i] = o.Repr()
		}

		return "conditional on " + strings.Join(obs, ", ")
	default:
		return "no: " + v.Reason
	}
}

var yes = &Verdict{Answer: Yes}

func no(format string, args ...interface{}) *Verdict {
	return &Verdict{Answer: No, Reason: fmt.Sprintf(format, args...)}
}

// -----------------------------------------------------------------------------

// IsCoercible reports whether a value of type `a` can be reinterpreted as a
// value of type `b` at no cost
func IsCoercible(ra *RoleAssignment, a, b DataType) bool {
	return Query(ra, a, b).Answer == Yes
}

// CheckCoercible is IsCoercible but reports ErrDepthExceeded when the query
// could not be decided within the default recursion budget
func CheckCoercible(ra *RoleAssignment, a, b DataType) (bool, error) {
	v := Query(ra, a, b)
	if v.Exhausted {
		return false, ErrDepthExceeded
	}

	return v.Answer == Yes, nil
}

// Query decides a coercion with the default recursion budget
func Query(ra *RoleAssignment, a, b DataType) *Verdict {
	return QueryWithDepth(ra, a, b, common.DefaultCoercionDepth)
}

// QueryWithDepth decides a coercion recursing at most `depth` times.  The
// assignment should be frozen; the query never modifies it.
func QueryWithDepth(ra *RoleAssignment, a, b DataType, depth int) *Verdict {
	c := &coercer{ra: ra}
	return c.representational(a, b, depth)
}

// coercer holds the state of a single query
type coercer struct {
	ra *RoleAssignment
}

// representational decides `a ~R b`
func (c *coercer) representational(a, b DataType, depth int) *Verdict {
	if Equals(a, b) {
		return yes
	}

	if depth <= 0 {
		v := no("recursion budget exhausted comparing `%s` and `%s`", a.Repr(), b.Repr())
		v.Exhausted = true
		return v
	}

	switch av := a.(type) {
	case *ConType:
		if bv, ok := b.(*ConType); ok && av.Name == bv.Name {
			v := c.decompose(av.Name, av.Args, bv.Args, depth)
			if v.Answer == Yes {
				return v
			}

			// decomposition is incomplete for newtypes whose roles are
			// stronger than what their field needs
			if ua, ok := c.unwrap(av); ok {
				ub, _ := c.unwrap(bv)
				return c.representational(ua, ub, depth-1)
			}

			return v
		}

		if ua, ok := c.unwrap(av); ok {
			return c.representational(ua, b, depth-1)
		}
	case *FuncType:
		if bv, ok := b.(*FuncType); ok {
			return c.combine(
				c.representational(av.Arg, bv.Arg, depth-1),
				c.representational(av.Result, bv.Result, depth-1),
			)
		}
	}

	if bc, ok := b.(*ConType); ok {
		if ub, ok := c.unwrap(bc); ok {
			return c.representational(a, ub, depth-1)
		}
	}

	if isRigid(a) || isRigid(b) {
		if av, ok := a.(*VarApp); ok {
			if bv, ok := b.(*VarApp); ok && av.Head.Name == bv.Head.Name && len(av.Args) == len(bv.Args) {
				return c.decomposeRigid(av, bv)
			}
		}

		return &Verdict{Answer: Conditional, Obligations: []Obligation{{Left: a, Right: b, Role: RoleRepresentational}}}
	}

	return no("`%s` and `%s` have different representations", a.Repr(), b.Repr())
}

// decompose compares the arguments of two applications of the same
// constructor position by position according to their roles
func (c *coercer) decompose(name string, as, bs []DataType, depth int) *Verdict {
	if len(as) != len(bs) {
		return no("`%s` is applied to %d and %d arguments", name, len(as), len(bs))
	}

	params, _ := c.ra.ParamsOf(name)

	verdicts := make([]*Verdict, 0, len(as))
	for i := range as {
		var v *Verdict

		switch c.ra.RoleOf(name, i) {
		case RolePhantom:
			continue
		case RoleRepresentational:
			v = c.representational(as[i], bs[i], depth-1)
		default:
			v = c.nominal(as[i], bs[i])
		}

		if v.Answer == No && !v.Exhausted {
			return no(
				"parameter %s of `%s` is %s: %s",
				describeParam(params, i), name, c.ra.RoleOf(name, i).Repr(), v.Reason,
			)
		}

		verdicts = append(verdicts, v)
	}

	return c.combine(verdicts...)
}

// decomposeRigid compares two applications of the same rigid head: nothing
// is known about the head so every argument is nominal
func (c *coercer) decomposeRigid(a, b *VarApp) *Verdict {
	verdicts := make([]*Verdict, len(a.Args))
	for i := range a.Args {
		verdicts[i] = c.nominal(a.Args[i], b.Args[i])
	}

	return c.combine(verdicts...)
}

// nominal decides `a ~N b`: the types must be identical
func (c *coercer) nominal(a, b DataType) *Verdict {
	if Equals(a, b) {
		return yes
	}

	if IsClosed(a) && IsClosed(b) {
		return no("`%s` and `%s` are not the same type", a.Repr(), b.Repr())
	}

	// two different constructors can never become the same type
	if ac, ok := a.(*ConType); ok {
		if bc, ok := b.(*ConType); ok && ac.Name != bc.Name {
			return no("`%s` and `%s` are not the same type", a.Repr(), b.Repr())
		}
	}

	return &Verdict{Answer: Conditional, Obligations: []Obligation{{Left: a, Right: b, Role: RoleNominal}}}
}

// combine merges the verdicts of independent subgoals
func (c *coercer) combine(verdicts ...*Verdict) *Verdict {
	var obligations []Obligation
	for _, v := range verdicts {
		switch v.Answer {
		case No:
			return v
		case Conditional:
			obligations = append(obligations, v.Obligations...)
		}
	}

	if len(obligations) > 0 {
		return &Verdict{Answer: Conditional, Obligations: obligations}
	}

	return yes
}

// unwrap looks through a fully applied transparent newtype
func (c *coercer) unwrap(ct *ConType) (DataType, bool) {
	nt, ok := c.ra.newtypeOf(ct.Name)
	if !ok || len(nt.Params) != len(ct.Args) {
		return nil, false
	}

	bindings := make(map[string]DataType, len(nt.Params))
	for i, p := range nt.Params {
		bindings[p] = ct.Args[i]
	}

	return Substitute(nt.Field, bindings), true
}

// isRigid reports whether the head of a type is a type variable
func isRigid(dt DataType) bool {
	switch dt.(type) {
	case *TypeVar, *VarApp:
		return true
	}

	return false
}

func describeParam(params []string, i int) string {
	if i < len(params) {
		return fmt.Sprintf("`%s`", params[i])
	}

	return fmt.Sprintf("%d", i)
}
