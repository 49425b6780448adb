package apt

import (
	"bytes"
	"fmt"
)

// The five fatal error categories from the error-handling design: every
// kind surfaces with enough context to identify the offending record,
// atom, or file. None of these are ever demoted to a warning: a
// partially-resolved closure must never look complete.

// IndexStructuralError reports a problem with the shape of the index
// directory or a stanza within it: a missing directory, no files, a
// malformed stanza, a missing mandatory field, or an inconsistent target
// architecture across index files.
type IndexStructuralError struct {
	File   string
	Reason string
}

func (e *IndexStructuralError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("index structural error: %s", e.Reason)
	}
	return fmt.Sprintf("index structural error in %s: %s", e.File, e.Reason)
}

// DependencyParseError reports malformed Depends/Pre-Depends/Provides
// syntax: an unknown operator, an illegal name, a build-profile
// annotation, or any other grammar violation.
type DependencyParseError struct {
	Field string // e.g. "Depends", "Provides"
	Text  string // the offending field value (or sub-span of it)
	Pkg   string // owning package name, when known
	Reason string
}

func (e *DependencyParseError) Error() string {
	if e.Pkg != "" {
		return fmt.Sprintf("cannot parse %s of %s (%q): %s", e.Field, e.Pkg, e.Text, e.Reason)
	}
	return fmt.Sprintf("cannot parse %s (%q): %s", e.Field, e.Text, e.Reason)
}

// UnsatisfiedReason names why one atom in a group failed to resolve, for
// the enumerated diagnostic an UnsatisfiedError produces.
type UnsatisfiedReason string

const (
	ReasonWrongArch      UnsatisfiedReason = "only other arches"
	ReasonNoProvider     UnsatisfiedReason = "no provider"
	ReasonVersionUnmet   UnsatisfiedReason = "version constraint unmet"
	ReasonNotInIndex     UnsatisfiedReason = "not in index"
	ReasonVirtualNoMatch UnsatisfiedReason = "only virtual without valid provider"
)

// AtomFailure pairs one atom of an unsatisfiable group with why it failed.
type AtomFailure struct {
	Atom   DepAtom
	Reason UnsatisfiedReason
}

// UnsatisfiedError reports that no atom in a group resolved, or that a
// top-level name had no viable record. It enumerates every atom in the
// group in its original form, with the distinguished reason for each.
type UnsatisfiedError struct {
	Group    DepGroup
	Failures []AtomFailure
	Context  string // e.g. owning package, or "top-level"
}

func (e *UnsatisfiedError) Error() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "unsatisfied dependency group %q", e.Group.String())
	if e.Context != "" {
		fmt.Fprintf(&buf, " (required by %s)", e.Context)
	}
	buf.WriteString(":")
	for _, f := range e.Failures {
		fmt.Fprintf(&buf, "\n\t%s: %s", f.Atom.String(), f.Reason)
	}
	return buf.String()
}

// FetchFailureError reports that every base URL failed for one artifact.
type FetchFailureError struct {
	RelPath string
	BaseURLs []string
	Attempts []string // one error message per base URL tried, same order
}

func (e *FetchFailureError) Error() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "failed to fetch %s from all %d base URL(s):", e.RelPath, len(e.BaseURLs))
	for i, base := range e.BaseURLs {
		msg := ""
		if i < len(e.Attempts) {
			msg = e.Attempts[i]
		}
		fmt.Fprintf(&buf, "\n\t%s: %s", base, msg)
	}
	return buf.String()
}

// ControlReadError reports that a downloaded .deb could not be opened, or
// its control data could not be parsed.
type ControlReadError struct {
	Pkg    PkgKey
	Path   string
	Reason string
}

func (e *ControlReadError) Error() string {
	return fmt.Sprintf("cannot read control data of %s (%s): %s", e.Pkg, e.Path, e.Reason)
}
