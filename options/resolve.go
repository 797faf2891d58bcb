package options

// resolve classifies the candidate holder against every declared option
// and decides whether to insert it, replace an ancestor in place, skip a
// redundant declaration, or reject a conflict. The end state is
// independent of declaration order: for a base and its refinement the
// refinement wins from either direction, and a genuine collision is
// rejected from either direction.
func (r *Registry) resolve(h holder) error {
	var covered, parents []int

	for i := range r.holders {
		switch relate(r.holders[i].typ, h.typ) {
		case relSame, relChild:
			covered = append(covered, i)
		case relParent:
			parents = append(parents, i)
		}
	}

	// Already declared, either as the same type or as a derived
	// replacement that shadows it. Re-validate the name invariant before
	// skipping: same or derived types must agree on the public name.
	if len(covered) > 0 {
		e := &r.holders[covered[0]]
		if e.name != h.name {
			return opError("declare", h.name.String(), ErrNameConflict,
				"declared type %s already covers this option under name %q", e.typ, e.name)
		}
		r.logger.Debug("declare: option %q already covered by %s", h.name.Long, e.typ)
		return nil
	}

	if len(parents) > 1 {
		return opError("declare", h.name.String(), ErrAmbiguousParent,
			"%d declared ancestors match type %s", len(parents), h.typ)
	}

	// A strict refinement of one declared ancestor replaces it in place,
	// keeping the declaration order slot. Refining must not change the
	// option's public identity.
	if len(parents) == 1 {
		e := &r.holders[parents[0]]
		if e.name != h.name {
			return opError("declare", h.name.String(), ErrNameConflict,
				"replacing option %q with one of a different name is not allowed", e.name)
		}
		r.logger.Debug("declare: option %q replacing %s with %s", h.name.Long, e.typ, h.typ)
		*e = h
		return nil
	}

	// Unrelated to everything declared: both names must be free.
	for i := range r.holders {
		e := &r.holders[i]
		if e.name.Long == h.name.Long {
			return opError("declare", h.name.String(), ErrNameConflict,
				"long name already taken by %s", e.typ)
		}
		if h.name.Short != 0 && e.name.Short == h.name.Short {
			return opError("declare", h.name.String(), ErrNameConflict,
				"short name already taken by %s (%q)", e.typ, e.name)
		}
	}

	r.logger.Debug("declare: insert option %q as %s", h.name.Long, h.typ)
	r.holders = append(r.holders, h)
	return nil
}
