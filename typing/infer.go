package typing

// Infer computes the weakest safe role of every parameter of a finalized
// graph.  Every role starts out phantom and is strengthened by the usages of
// its parameter until a full pass changes nothing.  The returned assignment
// is frozen.
func Infer(tg *TypeGraph) *RoleAssignment {
	if !tg.finalized {
		panic("typing: role inference on a type graph that was not finalized")
	}

	ra := newAssignment(tg.imports)
	for _, tc := range tg.Constructors() {
		ra.declare(tc.Name, tc.Params, RolePhantom)

		if tc.Decl != nil {
			if field, ok := tc.Decl.Field(); ok {
				ra.newtypes[tc.Name] = &newtypeShape{Params: tc.Params, Field: field}
			}
		}
	}

	solve(tg, ra, OriginInferred)
	ra.freeze()
	return ra
}

// Propagate reruns the fixpoint starting from a validated assignment so that
// roles strengthened by signatures flow into the constructors that use them.
// Roles that change are marked as propagated.  The result is frozen.
func Propagate(tg *TypeGraph, validated *RoleAssignment) *RoleAssignment {
	if !tg.finalized {
		panic("typing: role propagation on a type graph that was not finalized")
	}

	ra := validated.clone()
	solve(tg, ra, OriginPropagated)
	ra.freeze()
	return ra
}

// solve runs the fixpoint on `ra` in place.  Only parameters whose
// dependencies changed are recomputed after the first pass.
func solve(tg *TypeGraph, ra *RoleAssignment, origin Origin) {
	roleOf := func(con string, pos int) Role {
		return ra.RoleOf(con, pos)
	}

	dirty := make(map[paramRef]struct{})
	for _, tc := range tg.Constructors() {
		for i := range tc.Params {
			dirty[paramRef{con: tc.Name, pos: i}] = struct{}{}
		}
	}

	ra.Passes = 0
	for changed := true; changed; {
		changed = false
		ra.Passes++

		for _, tc := range tg.Constructors() {
			for i := range tc.Params {
				ref := paramRef{con: tc.Name, pos: i}
				if _, ok := dirty[ref]; !ok {
					continue
				}

				delete(dirty, ref)

				current := ra.roles[tc.Name][i]
				role := current
				for _, u := range tc.Usages[i] {
					if role == RoleNominal {
						break
					}

					role = role.Join(u.demand(roleOf))
				}

				if role != current {
					ra.set(tc.Name, i, role, origin)
					changed = true

					for _, dep := range tg.dependents[ref] {
						dirty[dep] = struct{}{}
					}
				}
			}
		}
	}
}
