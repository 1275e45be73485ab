package typing

import (
	"errors"
	"rolec/logging"
	"strings"
)

// RoleSignature is a user-written role annotation: one role per parameter of
// the constructor.  RoleInferred keeps the inferred role at that position.
type RoleSignature struct {
	Constructor string
	Roles       []Role

	Pos *logging.TextPosition
}

func (rs *RoleSignature) Repr() string {
	sb := strings.Builder{}
	sb.WriteString("type role ")
	sb.WriteString(rs.Constructor)

	for _, r := range rs.Roles {
		sb.WriteRune(' ')
		sb.WriteString(r.Repr())
	}

	return sb.String()
}

// Redundant reports whether a signature requests nothing beyond the roles it
// is checked against
func (rs *RoleSignature) Redundant(ra *RoleAssignment) bool {
	roles, ok := ra.RolesOf(rs.Constructor)
	if !ok || len(roles) != len(rs.Roles) {
		return false
	}

	for i, r := range rs.Roles {
		if r != RoleInferred && r != roles[i] {
			return false
		}
	}

	return true
}

// Validate checks role signatures against an inferred assignment.  A
// signature may only strengthen roles: any position whose requested role is
// weaker than the inferred one is an IllegalWeakeningError.  Accepted
// signatures are applied to a copy of the assignment; rejected ones are
// dropped and leave their constructor at its inferred roles.  The returned
// assignment is always usable, frozen, and the error joins every problem
// found.
func Validate(inferred *RoleAssignment, sigs []*RoleSignature) (*RoleAssignment, error) {
	ra := inferred.clone()

	var errs []error
	for _, sig := range sigs {
		if err := ra.applySignature(sig); err != nil {
			errs = append(errs, err)
		}
	}

	ra.freeze()
	return ra, errors.Join(errs...)
}

// applySignature checks one signature and applies it if it is valid
func (ra *RoleAssignment) applySignature(sig *RoleSignature) error {
	roles, local := ra.roles[sig.Constructor]
	if !local {
		return &UnknownSignatureError{
			Constructor: sig.Constructor,
			Imported:    ra.Has(sig.Constructor),
			Pos:         sig.Pos,
		}
	}

	if _, dup := ra.signatures[sig.Constructor]; dup {
		return &DuplicateSignatureError{Constructor: sig.Constructor, Pos: sig.Pos}
	}

	if len(sig.Roles) != len(roles) {
		return &SignatureArityError{Constructor: sig.Constructor, Want: len(roles), Got: len(sig.Roles), Pos: sig.Pos}
	}

	if errs := ra.weakenings(sig); len(errs) > 0 {
		return errors.Join(errs...)
	}

	strengthens := false
	for i, r := range sig.Roles {
		if r == RoleInferred {
			continue
		}

		if r != roles[i] {
			strengthens = true
		}

		ra.set(sig.Constructor, i, r, OriginSignature)
	}

	if _, isNewtype := ra.newtypes[sig.Constructor]; isNewtype && strengthens {
		ra.opaque[sig.Constructor] = struct{}{}
	}

	ra.signatures[sig.Constructor] = sig
	return nil
}

// weakenings lists the positions of a signature that request a role weaker
// than the one currently assigned
func (ra *RoleAssignment) weakenings(sig *RoleSignature) []error {
	roles := ra.roles[sig.Constructor]
	params := ra.params[sig.Constructor]

	var errs []error
	for i, r := range sig.Roles {
		if r != RoleInferred && r.WeakerThan(roles[i]) {
			errs = append(errs, &IllegalWeakeningError{
				Constructor: sig.Constructor,
				Position:    i,
				Param:       params[i],
				Inferred:    roles[i],
				Requested:   r,
				Pos:         sig.Pos,
			})
		}
	}

	return errs
}

// CheckSignatures rechecks the accepted signatures of a propagated
// assignment.  A signature can become a weakening when another signature
// strengthened a constructor it depends on.
func CheckSignatures(ra *RoleAssignment) error {
	var errs []error
	for _, name := range ra.order {
		if sig, ok := ra.signatures[name]; ok {
			errs = append(errs, ra.weakenings(sig)...)
		}
	}

	return errors.Join(errs...)
}

// Check runs the whole pipeline on a set of declarations: build the graph,
// infer, validate the signatures and propagate them.  Graph errors are fatal
// and return a nil assignment; signature errors are returned alongside the
// assignment computed without the offending signatures.
func Check(decls []*Decl, sigs []*RoleSignature, imports ...*RoleAssignment) (*RoleAssignment, error) {
	tg, err := BuildGraph(decls, imports...)
	if err != nil {
		return nil, err
	}

	validated, verr := Validate(Infer(tg), sigs)
	final := Propagate(tg, validated)

	return final, errors.Join(verr, CheckSignatures(final))
}
