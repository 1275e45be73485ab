package typing

import "golang.org/x/exp/slices"

// Origin records where the role of a parameter came from
type Origin int

// Enumeration of role origins
const (
	OriginInferred   Origin = iota // computed from the declaration's body
	OriginSignature                // requested by a role signature
	OriginPropagated               // forced by a signature on another constructor
)

func (o Origin) Repr() string {
	switch o {
	case OriginSignature:
		return "signature"
	case OriginPropagated:
		return "propagated"
	default:
		return "inferred"
	}
}

// newtypeShape is what the coercion checker needs to look through a newtype
type newtypeShape struct {
	Params []string
	Field  DataType
}

// RoleAssignment maps every parameter of every constructor in a type graph to
// its role.  It is mutated only while inference runs and is frozen once the
// fixpoint is reached: any later attempt to change it panics.  A frozen
// assignment may be shared freely between goroutines.
type RoleAssignment struct {
	roles   map[string][]Role
	origins map[string][]Origin
	params  map[string][]string

	// order is the declaration order of the local constructors
	order []string

	newtypes map[string]*newtypeShape

	// opaque newtypes have a role signature that strengthens at least one of
	// their parameters: looking through them would bypass it
	opaque map[string]struct{}

	// signatures holds the accepted role signatures
	signatures map[string]*RoleSignature

	// imports are the frozen assignments of other modules
	imports []*RoleAssignment

	frozen bool

	// Passes is the number of full passes the last fixpoint took
	Passes int
}

func newAssignment(imports []*RoleAssignment) *RoleAssignment {
	return &RoleAssignment{
		roles:      make(map[string][]Role),
		origins:    make(map[string][]Origin),
		params:     make(map[string][]string),
		newtypes:   make(map[string]*newtypeShape),
		opaque:     make(map[string]struct{}),
		signatures: make(map[string]*RoleSignature),
		imports:    imports,
	}
}

// declare adds a local constructor with all its parameters at `initial`
func (ra *RoleAssignment) declare(name string, params []string, initial Role) {
	ra.mustBeMutable()

	roles := make([]Role, len(params))
	origins := make([]Origin, len(params))
	for i := range roles {
		roles[i] = initial
	}

	ra.roles[name] = roles
	ra.origins[name] = origins
	ra.params[name] = params
	ra.order = append(ra.order, name)
}

// set updates a single role
func (ra *RoleAssignment) set(name string, pos int, role Role, origin Origin) {
	ra.mustBeMutable()

	ra.roles[name][pos] = role
	ra.origins[name][pos] = origin
}

func (ra *RoleAssignment) freeze() {
	ra.frozen = true
}

func (ra *RoleAssignment) mustBeMutable() {
	if ra.frozen {
		panic("typing: attempt to mutate a frozen role assignment")
	}
}

// clone produces an unfrozen deep copy sharing only the imports
func (ra *RoleAssignment) clone() *RoleAssignment {
	c := newAssignment(ra.imports)
	c.order = slices.Clone(ra.order)

	for name, roles := range ra.roles {
		c.roles[name] = slices.Clone(roles)
		c.origins[name] = slices.Clone(ra.origins[name])
		c.params[name] = ra.params[name]
	}

	for name, nt := range ra.newtypes {
		c.newtypes[name] = nt
	}

	for name := range ra.opaque {
		c.opaque[name] = struct{}{}
	}

	for name, sig := range ra.signatures {
		c.signatures[name] = sig
	}

	c.Passes = ra.Passes
	return c
}

// -----------------------------------------------------------------------------

// Frozen reports whether the assignment can no longer change
func (ra *RoleAssignment) Frozen() bool {
	return ra.frozen
}

// owner returns the assignment (this one or an import) that declares `name`
func (ra *RoleAssignment) owner(name string) (*RoleAssignment, bool) {
	if _, ok := ra.roles[name]; ok {
		return ra, true
	}

	for _, imp := range ra.imports {
		if o, ok := imp.owner(name); ok {
			return o, true
		}
	}

	return nil, false
}

// Has reports whether a constructor is known either locally or through an
// import
func (ra *RoleAssignment) Has(name string) bool {
	_, ok := ra.owner(name)
	return ok
}

// IsLocal reports whether a constructor is declared in this assignment rather
// than imported
func (ra *RoleAssignment) IsLocal(name string) bool {
	_, ok := ra.roles[name]
	return ok
}

// RolesOf returns the roles of all parameters of a constructor.  The returned
// slice must not be modified.
func (ra *RoleAssignment) RolesOf(name string) ([]Role, bool) {
	if o, ok := ra.owner(name); ok {
		return o.roles[name], true
	}

	return nil, false
}

// RoleOf returns the role of one parameter.  Unknown constructors and
// positions past a constructor's arity are Nominal: nothing is assumed about
// them.
func (ra *RoleAssignment) RoleOf(name string, pos int) Role {
	if roles, ok := ra.RolesOf(name); ok && pos < len(roles) {
		return roles[pos]
	}

	return RoleNominal
}

// ParamsOf returns the parameter names of a constructor
func (ra *RoleAssignment) ParamsOf(name string) ([]string, bool) {
	if o, ok := ra.owner(name); ok {
		return o.params[name], true
	}

	return nil, false
}

// OriginOf returns where the role of a parameter came from
func (ra *RoleAssignment) OriginOf(name string, pos int) Origin {
	if o, ok := ra.owner(name); ok && pos < len(o.origins[name]) {
		return o.origins[name][pos]
	}

	return OriginInferred
}

// Constructors returns the local constructors in declaration order
func (ra *RoleAssignment) Constructors() []string {
	return slices.Clone(ra.order)
}

// Signature returns the accepted role signature of a local constructor
func (ra *RoleAssignment) Signature(name string) (*RoleSignature, bool) {
	sig, ok := ra.signatures[name]
	return sig, ok
}

// IsOpaque reports whether a newtype must not be looked through
func (ra *RoleAssignment) IsOpaque(name string) bool {
	if o, ok := ra.owner(name); ok {
		_, opaque := o.opaque[name]
		return opaque
	}

	return false
}

// newtypeOf returns the shape of a transparent newtype
func (ra *RoleAssignment) newtypeOf(name string) (*newtypeShape, bool) {
	o, ok := ra.owner(name)
	if !ok {
		return nil, false
	}

	if _, opaque := o.opaque[name]; opaque {
		return nil, false
	}

	nt, ok := o.newtypes[name]
	return nt, ok
}
