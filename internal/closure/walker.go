// Package closure implements a cycle-safe DFS from user-named top-level
// packages that downloads every package in the transitive install
// closure, re-parsing Depends/Pre-Depends from each downloaded artifact's
// own control data rather than trusting the index.
package closure

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/BigBIueWhale/debclose/internal/apt"
	"github.com/BigBIueWhale/debclose/internal/control"
	"github.com/BigBIueWhale/debclose/internal/dlog"
)

// Fetcher is the subset of fetch.Fetcher the walker depends on, kept as
// an interface so tests can substitute an in-memory fetcher.
type Fetcher interface {
	LocalPath(rec *apt.PackageRecord) string
	Fetch(ctx context.Context, rec *apt.PackageRecord) (string, error)
}

// Walker owns the two sets (visited package keys, visited filenames)
// scoped to exactly one resolution run; both are fresh per Walker, so
// a new run never inherits state left over from an earlier one. Indexes
// are read-only and shared across an arbitrary number of walks.
type Walker struct {
	Idx     *apt.Indexes
	Fetcher Fetcher
	Log     *dlog.Logger
	DryRun  bool

	visitedPkgKeys   map[apt.PkgKey]bool
	visitedFilenames map[string]bool
	Resolved         []*apt.PackageRecord // in DFS visitation order
}

// New returns a fresh Walker over idx, with empty visited sets.
func New(idx *apt.Indexes, fetcher Fetcher, log *dlog.Logger) *Walker {
	return &Walker{
		Idx:              idx,
		Fetcher:          fetcher,
		Log:              log,
		visitedPkgKeys:   make(map[apt.PkgKey]bool),
		visitedFilenames: make(map[string]bool),
	}
}

// Walk resolves and fetches the transitive closure of the given top-level
// names, in the order given. A top-level name is syntactically a DepAtom;
// a resolution failure there is fatal with diagnostics distinguishing
// "no matching record" (not in index), "only other arches", and "only
// virtual without valid provider".
func (w *Walker) Walk(ctx context.Context, topLevel []string) error {
	for _, name := range topLevel {
		atom, err := apt.ParseTopLevelAtom(name)
		if err != nil {
			return errors.Wrapf(err, "parsing top-level package name %q", name)
		}

		res := apt.ResolveAtom(w.Idx, atom)
		switch res.Status {
		case apt.ResolutionResolved:
			if err := w.push(ctx, res.Record); err != nil {
				return err
			}
		case apt.ResolutionNotApplicable:
			// Reached only when the top-level name carries an [arch
			// list] that excludes the target arch; stay consistent with
			// alternative resolution's vacuous-satisfaction rule rather
			// than special-casing it.
			continue
		case apt.ResolutionUnsatisfied:
			return &apt.UnsatisfiedError{
				Group:    apt.DepGroup{atom},
				Failures: []apt.AtomFailure{{Atom: atom, Reason: res.Reason}},
				Context:  "top-level",
			}
		}
	}
	return nil
}

// push materializes rec and recurses on its dependencies. It keeps an
// explicit visited set keyed on (name, version, arch), not on the
// requesting atom's name, so the same concrete record reached through
// different virtual aliases converges to one walk.
func (w *Walker) push(ctx context.Context, rec *apt.PackageRecord) error {
	key := rec.Key()
	if w.visitedPkgKeys[key] {
		w.Log.Tracef("| skip %s (already visited)", key)
		return nil
	}
	w.visitedPkgKeys[key] = true
	w.Log.Tracef("? visiting %s", key)

	dependsRaw, preDependsRaw := rec.DependsRaw, rec.PreDependsRaw

	if !w.DryRun {
		local, err := w.Fetcher.Fetch(ctx, rec)
		if err != nil {
			return err
		}
		w.visitedFilenames[local] = true

		fields, err := readControlFields(local)
		if err != nil {
			return &apt.ControlReadError{Pkg: key, Path: local, Reason: err.Error()}
		}
		// The downloaded artifact's own control data is authoritative
		// over the index, in case a mirror drifted out of sync with it.
		dependsRaw, preDependsRaw = fields.Depends, fields.PreDepends
	}

	w.Resolved = append(w.Resolved, rec)

	groups, err := apt.ParseCombinedDepends(rec.Name, dependsRaw, preDependsRaw)
	if err != nil {
		return err
	}

	for _, group := range groups {
		chosen, err := apt.ResolveGroup(w.Idx, group, rec.Name)
		if err != nil {
			return err
		}
		if chosen == nil {
			// Vacuously satisfied (every atom not-applicable): no edge.
			continue
		}
		if err := w.push(ctx, chosen); err != nil {
			return err
		}
	}

	return nil
}

func readControlFields(path string) (*control.Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return control.ReadFields(f)
}
