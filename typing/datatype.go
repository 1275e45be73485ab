package typing

// DataType is the interface for all type expressions the checker reasons
// about: field types inside declarations and the closed types of coercion
// queries.
type DataType interface {
	// Repr returns a string representing the data type
	Repr() string

	// equals reports exact structural equality with another data type.  This
	// is nominal equality: it never looks through newtypes.
	equals(other DataType) bool
}

// -----------------------------------------------------------------------------

// Equals reports whether two types are identical.  This is the equality used
// at nominal parameter positions.
func Equals(a, b DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.equals(b)
}

// equalsAll compares two argument lists pairwise
func equalsAll(as, bs []DataType) bool {
	if len(as) != len(bs) {
		return false
	}

	for i, a := range as {
		if !Equals(a, bs[i]) {
			return false
		}
	}

	return true
}

// Substitute replaces the type variables bound in `bindings` throughout `dt`.
// A variable in head position bound to a constructor becomes an application
// of that constructor.
func Substitute(dt DataType, bindings map[string]DataType) DataType {
	switch v := dt.(type) {
	case *TypeVar:
		if bound, ok := bindings[v.Name]; ok {
			return bound
		}

		return v
	case *ConType:
		return &ConType{Name: v.Name, Args: substituteAll(v.Args, bindings)}
	case *FuncType:
		return &FuncType{Arg: Substitute(v.Arg, bindings), Result: Substitute(v.Result, bindings)}
	case *FamilyApp:
		return &FamilyApp{Name: v.Name, Args: substituteAll(v.Args, bindings)}
	case *VarApp:
		args := substituteAll(v.Args, bindings)

		switch head := Substitute(v.Head, bindings).(type) {
		case *ConType:
			return &ConType{Name: head.Name, Args: append(append([]DataType{}, head.Args...), args...)}
		case *FamilyApp:
			return &FamilyApp{Name: head.Name, Args: append(append([]DataType{}, head.Args...), args...)}
		case *VarApp:
			return &VarApp{Head: head.Head, Args: append(append([]DataType{}, head.Args...), args...)}
		case *TypeVar:
			return &VarApp{Head: head, Args: args}
		default:
			// a function type cannot be applied: keep the application around
			// so that it never equals anything but itself
			return &VarApp{Head: v.Head, Args: args}
		}
	}

	return dt
}

func substituteAll(dts []DataType, bindings map[string]DataType) []DataType {
	if len(dts) == 0 {
		return nil
	}

	out := make([]DataType, len(dts))
	for i, dt := range dts {
		out[i] = Substitute(dt, bindings)
	}

	return out
}

// FreeVars returns the names of the type variables occurring in a type in
// order of first occurrence
func FreeVars(dt DataType) []string {
	var names []string
	seen := make(map[string]struct{})

	var visit func(DataType)
	visit = func(dt DataType) {
		switch v := dt.(type) {
		case *TypeVar:
			if _, ok := seen[v.Name]; !ok {
				seen[v.Name] = struct{}{}
				names = append(names, v.Name)
			}
		case *ConType:
			for _, arg := range v.Args {
				visit(arg)
			}
		case *FuncType:
			visit(v.Arg)
			visit(v.Result)
		case *FamilyApp:
			for _, arg := range v.Args {
				visit(arg)
			}
		case *VarApp:
			visit(v.Head)
			for _, arg := range v.Args {
				visit(arg)
			}
		}
	}

	visit(dt)
	return names
}

// IsClosed reports whether a type mentions no type variables
func IsClosed(dt DataType) bool {
	return len(FreeVars(dt)) == 0
}
