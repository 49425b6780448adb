package apt

import "fmt"

// GroupExplanation is one line of an Explain report: which atom in a
// DepGroup would be chosen, or why none would be, mirroring the
// diagnostic detail alternative resolution itself produces on failure.
type GroupExplanation struct {
	Group    DepGroup
	Chosen   *PackageRecord
	Err      error
}

// Explain resolves name as a top-level atom, then walks its immediate
// (one level, not transitive) DepGroups and reports, per group, which
// atom would be chosen and why, or the fatal reasons if none would
// resolve. It never touches the network and never fetches: a read-only
// inspection over the same indexes the mutating resolve operation uses.
func Explain(idx *Indexes, name string) (*PackageRecord, []GroupExplanation, error) {
	atom, err := ParseTopLevelAtom(name)
	if err != nil {
		return nil, nil, err
	}

	res := ResolveAtom(idx, atom)
	if res.Status != ResolutionResolved {
		return nil, nil, &UnsatisfiedError{
			Group:    DepGroup{atom},
			Failures: []AtomFailure{{Atom: atom, Reason: resolutionReason(res)}},
			Context:  "top-level",
		}
	}

	groups, err := ParseCombinedDepends(res.Record.Name, res.Record.DependsRaw, res.Record.PreDependsRaw)
	if err != nil {
		return res.Record, nil, err
	}

	explanations := make([]GroupExplanation, 0, len(groups))
	for _, g := range groups {
		chosen, gerr := ResolveGroup(idx, g, res.Record.Name)
		explanations = append(explanations, GroupExplanation{Group: g, Chosen: chosen, Err: gerr})
	}

	return res.Record, explanations, nil
}

func resolutionReason(res AtomResult) UnsatisfiedReason {
	if res.Status == ResolutionUnsatisfied {
		return res.Reason
	}
	return ReasonNotInIndex
}

// String renders a GroupExplanation as a human-readable line for the
// explain CLI output.
func (e GroupExplanation) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s -> FATAL: %v", e.Group.String(), e.Err)
	}
	if e.Chosen == nil {
		return fmt.Sprintf("%s -> (not applicable on this arch, vacuously satisfied)", e.Group.String())
	}
	return fmt.Sprintf("%s -> %s", e.Group.String(), e.Chosen.Key())
}
