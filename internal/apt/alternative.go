package apt

// ResolveGroup resolves a DepGroup (one "A | B | ..." alternative): try
// atoms left to right, skipping not-applicable ones, and return the first
// atom that resolves. If no atom resolves (every atom is either
// not-applicable or unsatisfied, and at least one is unsatisfied), the
// group is fatal. A group where every atom is not-applicable is
// conceptually satisfied by vacuity: no edge, no error.
func ResolveGroup(idx *Indexes, group DepGroup, context string) (*PackageRecord, error) {
	var failures []AtomFailure
	anyApplicable := false

	for _, atom := range group {
		res := ResolveAtom(idx, atom)
		switch res.Status {
		case ResolutionResolved:
			return res.Record, nil
		case ResolutionNotApplicable:
			continue
		case ResolutionUnsatisfied:
			anyApplicable = true
			failures = append(failures, AtomFailure{Atom: atom, Reason: res.Reason})
		}
	}

	if !anyApplicable {
		// Every atom was not-applicable on this architecture: vacuously
		// satisfied, no edge to add.
		return nil, nil
	}

	return nil, &UnsatisfiedError{Group: group, Failures: failures, Context: context}
}
