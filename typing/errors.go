package typing

import (
	"errors"
	"fmt"
	"rolec/logging"
)

// Sentinels for the two error families.  Every concrete error below matches
// exactly one of them with errors.Is.
var (
	ErrGraph      = errors.New("type graph error")
	ErrValidation = errors.New("role signature error")

	// ErrDepthExceeded is returned by CheckCoercible when a query recurses
	// past its budget (eg. through a recursive newtype)
	ErrDepthExceeded = errors.New("coercion check exceeded its recursion budget")
)

// UnknownConstructorError is raised when a declaration refers to a type
// constructor that is neither declared in the graph nor imported
type UnknownConstructorError struct {
	// Constructor is the declaration containing the bad reference
	Constructor string

	// Reference is the undeclared name
	Reference string

	Pos *logging.TextPosition
}

func (e *UnknownConstructorError) Error() string {
	return fmt.Sprintf("`%s` refers to undeclared type constructor `%s`", e.Constructor, e.Reference)
}

func (e *UnknownConstructorError) Is(target error) bool {
	return target == ErrGraph
}

// DuplicateConstructorError is raised when a name is registered twice
type DuplicateConstructorError struct {
	Constructor string
	Pos         *logging.TextPosition
}

func (e *DuplicateConstructorError) Error() string {
	return fmt.Sprintf("type constructor `%s` is declared multiple times", e.Constructor)
}

func (e *DuplicateConstructorError) Is(target error) bool {
	return target == ErrGraph
}

// BadUsagePositionError is raised when a usage names a parameter position the
// referenced constructor does not have
type BadUsagePositionError struct {
	Constructor string
	Reference   string
	Position    int
	Arity       int
	Pos         *logging.TextPosition
}

func (e *BadUsagePositionError) Error() string {
	return fmt.Sprintf(
		"`%s` uses parameter %d of `%s` which only has %d parameter(s)",
		e.Constructor, e.Position, e.Reference, e.Arity,
	)
}

func (e *BadUsagePositionError) Is(target error) bool {
	return target == ErrGraph
}

// ArityError is raised when a constructor is applied to more arguments than
// it has parameters, or when usages are given for more parameters than a
// constructor declares
type ArityError struct {
	Constructor string
	Reference   string
	Arity       int
	Given       int
	Pos         *logging.TextPosition
}

func (e *ArityError) Error() string {
	return fmt.Sprintf(
		"`%s` applies `%s` to %d argument(s) but it takes %d",
		e.Constructor, e.Reference, e.Given, e.Arity,
	)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrGraph
}

// -----------------------------------------------------------------------------

// IllegalWeakeningError is raised when a role signature asks for a role that
// is weaker than the one the declaration requires
type IllegalWeakeningError struct {
	Constructor string
	Position    int
	Param       string
	Inferred    Role
	Requested   Role
	Pos         *logging.TextPosition
}

func (e *IllegalWeakeningError) Error() string {
	return fmt.Sprintf(
		"role signature of `%s` requests %s for parameter `%s` (position %d) but it must be at least %s",
		e.Constructor, e.Requested.Repr(), e.Param, e.Position, e.Inferred.Repr(),
	)
}

func (e *IllegalWeakeningError) Is(target error) bool {
	return target == ErrValidation
}

// SignatureArityError is raised when a signature lists the wrong number of
// roles
type SignatureArityError struct {
	Constructor string
	Want, Got   int
	Pos         *logging.TextPosition
}

func (e *SignatureArityError) Error() string {
	return fmt.Sprintf("role signature of `%s` lists %d role(s) but it has %d parameter(s)", e.Constructor, e.Got, e.Want)
}

func (e *SignatureArityError) Is(target error) bool {
	return target == ErrValidation
}

// UnknownSignatureError is raised when a signature names a constructor that
// is not declared in the module being checked
type UnknownSignatureError struct {
	Constructor string
	Imported    bool
	Pos         *logging.TextPosition
}

func (e *UnknownSignatureError) Error() string {
	if e.Imported {
		return fmt.Sprintf("cannot give a role signature to `%s`: it is declared in another module", e.Constructor)
	}

	return fmt.Sprintf("role signature for undeclared type constructor `%s`", e.Constructor)
}

func (e *UnknownSignatureError) Is(target error) bool {
	return target == ErrValidation
}

// DuplicateSignatureError is raised when a constructor has more than one role
// signature
type DuplicateSignatureError struct {
	Constructor string
	Pos         *logging.TextPosition
}

func (e *DuplicateSignatureError) Error() string {
	return fmt.Sprintf("multiple role signatures for `%s`", e.Constructor)
}

func (e *DuplicateSignatureError) Is(target error) bool {
	return target == ErrValidation
}

// -----------------------------------------------------------------------------

// Flatten splits an error produced by errors.Join back into its parts.  A nil
// error flattens to nothing.
func Flatten(err error) []error {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var errs []error
		for _, e := range joined.Unwrap() {
			errs = append(errs, Flatten(e)...)
		}

		return errs
	}

	return []error{err}
}

// ErrorPosition extracts the source position carried by one of the errors in
// this package, if any
func ErrorPosition(err error) *logging.TextPosition {
	switch e := err.(type) {
	case *UnknownConstructorError:
		return e.Pos
	case *DuplicateConstructorError:
		return e.Pos
	case *BadUsagePositionError:
		return e.Pos
	case *ArityError:
		return e.Pos
	case *IllegalWeakeningError:
		return e.Pos
	case *SignatureArityError:
		return e.Pos
	case *UnknownSignatureError:
		return e.Pos
	case *DuplicateSignatureError:
		return e.Pos
	}

	return nil
}

// ErrorConstructor extracts the name of the constructor an error is about:
// the declaration containing a bad reference or the target of a signature
func ErrorConstructor(err error) string {
	switch e := err.(type) {
	case *UnknownConstructorError:
		return e.Constructor
	case *DuplicateConstructorError:
		return e.Constructor
	case *BadUsagePositionError:
		return e.Constructor
	case *ArityError:
		return e.Constructor
	case *IllegalWeakeningError:
		return e.Constructor
	case *SignatureArityError:
		return e.Constructor
	case *UnknownSignatureError:
		return e.Constructor
	case *DuplicateSignatureError:
		return e.Constructor
	}

	return ""
}
