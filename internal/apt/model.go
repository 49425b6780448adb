// Package apt implements the dependency model, index, and resolution
// engine for a single-architecture Debian package closure: parsing
// Packages-index stanzas into PackageRecords, parsing Depends/Pre-Depends/
// Provides fields into typed dependency expressions, and resolving a
// DepAtom or DepGroup to a concrete record under Debian's architecture,
// version, and virtual-package rules.
package apt

import "fmt"

// ArchQual is the architecture-qualifier kind on a DepAtom, i.e. the
// optional ":any"/":native"/":<arch>" suffix on a dependency name.
type ArchQual int

const (
	// ArchQualNone means the atom carried no ":..." suffix at all.
	ArchQualNone ArchQual = iota
	// ArchQualAny is the explicit ":any" qualifier.
	ArchQualAny
	// ArchQualNative is the explicit ":native" qualifier.
	ArchQualNative
	// ArchQualLiteral is an explicit architecture, e.g. ":arm64".
	ArchQualLiteral
)

// Op is a version-comparison operator usable in a versioned dependency
// atom, e.g. "libfoo (>= 1.0)".
type Op int

const (
	// OpNone means the atom carried no version constraint.
	OpNone Op = iota
	OpEQ
	OpGE
	OpLE
	OpGT
	OpLT
)

// String renders the operator the way it appears in a Depends field.
func (o Op) String() string {
	switch o {
	case OpEQ:
		return "="
	case OpGE:
		return ">="
	case OpLE:
		return "<="
	case OpGT:
		return ">>"
	case OpLT:
		return "<<"
	default:
		return ""
	}
}

// PackageRecord is one stanza from a Packages index: a single known
// (name, version, arch) binary package, plus enough of its metadata to
// drive resolution and diagnostics.
type PackageRecord struct {
	Name          string
	Version       string
	Arch          string
	Filename      string
	DependsRaw    string
	PreDependsRaw string
	Provides      map[string]string // virtual name -> declared "= ver" (may be "")
	MultiArch     string
	Priority      string
	SourceHint    string // host/suite/component/platform
}

// Key returns the (name, version, arch) triple used to dedupe the closure
// walk. Two PackageRecords parsed from different index files but
// describing the same concrete package compare equal under this key.
func (r *PackageRecord) Key() PkgKey {
	return PkgKey{Name: r.Name, Version: r.Version, Arch: r.Arch}
}

// PkgKey identifies one concrete resolved package, independent of which
// virtual name or alternative led to it.
type PkgKey struct {
	Name, Version, Arch string
}

func (k PkgKey) String() string {
	return fmt.Sprintf("%s_%s_%s", k.Name, k.Version, k.Arch)
}

// DepAtom is one atomic requirement extracted from a Depends/Pre-Depends
// field, e.g. "libfoo:arm64 (>= 2.0) [amd64 i386]".
type DepAtom struct {
	Name     string
	ArchQual ArchQual
	ArchName string // literal arch when ArchQual == ArchQualLiteral
	Op       Op
	Ver      string // required iff Op != OpNone
	ArchList []string
	Raw      string // original text of the atom, for diagnostics
}

// DepGroup is an ordered, non-empty list of DepAtoms representing
// "A | B | ...": alternatives, any one of which satisfies the group.
type DepGroup []DepAtom

// String renders a DepGroup back into its original-form field syntax,
// satisfying the round-trip property that parsing then re-serializing
// preserves atom count, order, name, arch-qualifier, version, and
// arch-list.
func (g DepGroup) String() string {
	s := ""
	for i, a := range g {
		if i > 0 {
			s += " | "
		}
		s += a.String()
	}
	return s
}

// String renders a single atom back into Depends-field syntax.
func (a DepAtom) String() string {
	s := a.Name
	switch a.ArchQual {
	case ArchQualAny:
		s += ":any"
	case ArchQualNative:
		s += ":native"
	case ArchQualLiteral:
		s += ":" + a.ArchName
	}
	if a.Op != OpNone {
		s += fmt.Sprintf(" (%s %s)", a.Op, a.Ver)
	}
	if len(a.ArchList) > 0 {
		s += " ["
		for i, arch := range a.ArchList {
			if i > 0 {
				s += " "
			}
			s += arch
		}
		s += "]"
	}
	return s
}
