package typing

// Role classifies how the representation of a type constructor depends on one
// of its parameters.  Roles are totally ordered from the weakest (most
// permissive) to the strongest: Phantom < Representational < Nominal.
type Role int

// Enumeration of roles.  The numeric order is the lattice order.
const (
	RolePhantom Role = iota
	RoleRepresentational
	RoleNominal
)

// RoleInferred is only valid inside a RoleSignature: it leaves the position
// at whatever role inference produced (`_` in source)
const RoleInferred Role = -1

// Repr of a role is the keyword used to write it in a role signature
func (r Role) Repr() string {
	switch r {
	case RolePhantom:
		return "phantom"
	case RoleRepresentational:
		return "representational"
	case RoleNominal:
		return "nominal"
	case RoleInferred:
		return "_"
	default:
		return "<invalid role>"
	}
}

func (r Role) String() string {
	return r.Repr()
}

// Join returns the stronger of two roles
func (r Role) Join(other Role) Role {
	if other > r {
		return other
	}

	return r
}

// WeakerThan reports whether r is strictly more permissive than other
func (r Role) WeakerThan(other Role) bool {
	return r < other
}

// ParseRole converts a role keyword into a role.  `_` parses to RoleInferred.
func ParseRole(name string) (Role, bool) {
	switch name {
	case "phantom", "P":
		return RolePhantom, true
	case "representational", "R":
		return RoleRepresentational, true
	case "nominal", "N":
		return RoleNominal, true
	case "_":
		return RoleInferred, true
	}

	return RoleInferred, false
}
