package apt

import "sort"

// Resolution is the tagged outcome of resolving one DepAtom, distinguishing
// "not applicable" (the atom's [arch list] excludes the target arch; the
// enclosing group should treat it as vacuously absent) from "unsatisfied"
// (the atom applies here but nothing in the index can satisfy it) from
// "resolved" (a concrete record was chosen). Collapsing these into a
// single null-sentinel value would lose the information alternative
// resolution needs to produce actionable diagnostics.
type Resolution int

const (
	ResolutionResolved Resolution = iota
	ResolutionNotApplicable
	ResolutionUnsatisfied
)

// AtomResult is the full result of resolving one DepAtom.
type AtomResult struct {
	Status Resolution
	Record *PackageRecord
	Reason UnsatisfiedReason // populated iff Status == ResolutionUnsatisfied
}

// ResolveAtom resolves a single DepAtom under the active target
// architecture: direct name lookup first, then virtual-package
// (Provides) fallback, narrowed at each step to the architectures the
// atom's qualifier and [arch list] actually permit.
func ResolveAtom(idx *Indexes, atom DepAtom) AtomResult {
	// Step 1 - arch-restriction gate.
	if len(atom.ArchList) > 0 && !containsStr(atom.ArchList, idx.TargetArch) {
		return AtomResult{Status: ResolutionNotApplicable}
	}

	// Step 2 - candidate-arch set from arch_qual.
	arches := candidateArches(atom, idx.TargetArch)

	// Step 3 - direct resolution.
	direct := filterRecords(idx.PkgsByName[atom.Name], arches, func(r *PackageRecord) bool {
		ok, err := versionSatisfies(r.Version, atom.Op, atom.Ver)
		return err == nil && ok
	})
	if len(direct) > 0 {
		return AtomResult{Status: ResolutionResolved, Record: bestCandidate(direct)}
	}

	// Step 4 - virtual resolution.
	providers := filterRecords(idx.ProvidesIndex[atom.Name], arches, func(r *PackageRecord) bool {
		return providedVersionSatisfies(r, atom)
	})
	if len(providers) > 0 {
		return AtomResult{Status: ResolutionResolved, Record: bestCandidate(providers)}
	}

	// Step 5 - unsatisfied; classify the reason for diagnostics.
	return AtomResult{Status: ResolutionUnsatisfied, Reason: classifyUnsatisfied(idx, atom)}
}

func candidateArches(atom DepAtom, target string) map[string]bool {
	switch atom.ArchQual {
	case ArchQualLiteral:
		return map[string]bool{atom.ArchName: true}
	default: // none, any, native
		return map[string]bool{target: true, "all": true}
	}
}

func filterRecords(recs []*PackageRecord, arches map[string]bool, extra func(*PackageRecord) bool) []*PackageRecord {
	var out []*PackageRecord
	for _, r := range recs {
		if !arches[r.Arch] {
			continue
		}
		if extra != nil && !extra(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// providedVersionSatisfies implements the deliberately permissive
// provided-version rule: if the provider declared a versioned Provides,
// compare that declared version; otherwise fall back to the provider's
// own version.
func providedVersionSatisfies(r *PackageRecord, atom DepAtom) bool {
	declared, hasDeclared := r.Provides[atom.Name]
	if hasDeclared && declared != "" {
		ok, err := versionSatisfies(declared, atom.Op, atom.Ver)
		return err == nil && ok
	}
	ok, err := versionSatisfies(r.Version, atom.Op, atom.Ver)
	return err == nil && ok
}

// bestCandidate sorts descending by (Version(record.version), source_hint)
// and returns the first, making tie-breaks deterministic across runs.
func bestCandidate(recs []*PackageRecord) *PackageRecord {
	sort.SliceStable(recs, func(i, j int) bool {
		cmp, err := compareVersions(recs[i].Version, recs[j].Version)
		if err != nil || cmp == 0 {
			return recs[i].SourceHint > recs[j].SourceHint
		}
		return cmp > 0
	})
	return recs[0]
}

func classifyUnsatisfied(idx *Indexes, atom DepAtom) UnsatisfiedReason {
	_, hasName := idx.PkgsByName[atom.Name]
	_, hasVirtual := idx.ProvidesIndex[atom.Name]

	if !hasName && !hasVirtual {
		return ReasonNotInIndex
	}

	arches := candidateArches(atom, idx.TargetArch)
	var sawRightArch bool
	for _, r := range idx.PkgsByName[atom.Name] {
		if arches[r.Arch] {
			sawRightArch = true
			break
		}
	}
	for _, r := range idx.ProvidesIndex[atom.Name] {
		if arches[r.Arch] {
			sawRightArch = true
			break
		}
	}
	if !sawRightArch {
		if hasName && !hasVirtual {
			return ReasonWrongArch
		}
		return ReasonVirtualNoMatch
	}
	if hasVirtual && !hasName {
		return ReasonVirtualNoMatch
	}
	return ReasonVersionUnmet
}

func containsStr(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
