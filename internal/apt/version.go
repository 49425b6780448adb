package apt

import (
	"github.com/knqyf263/go-deb-version"
	"github.com/pkg/errors"
)

// compareVersions orders two Debian version strings exactly as dpkg does:
// epoch first, then upstream version, then debian revision, with tildes
// sorting before everything else (including the empty string) within each
// alphanumeric run. That ordering is exactly what go-deb-version
// implements, so this is a thin wrapper rather than a hand-rolled
// comparator.
func compareVersions(a, b string) (int, error) {
	va, err := version.NewVersion(a)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing version %q", a)
	}
	vb, err := version.NewVersion(b)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing version %q", b)
	}
	return va.Compare(vb), nil
}

// versionSatisfies reports whether candidate satisfies (op, needed).
// versionSatisfies(v, OpNone, anything) is always true: an absent operator
// means the atom carried no version constraint at all.
func versionSatisfies(candidate string, op Op, needed string) (bool, error) {
	if op == OpNone {
		return true, nil
	}
	cmp, err := compareVersions(candidate, needed)
	if err != nil {
		return false, err
	}
	switch op {
	case OpEQ:
		return cmp == 0, nil
	case OpGE:
		return cmp >= 0, nil
	case OpLE:
		return cmp <= 0, nil
	case OpGT:
		return cmp > 0, nil
	case OpLT:
		return cmp < 0, nil
	default:
		// The dependency-expression parser is required to reject any
		// operator outside this set before resolution ever sees it.
		panic(errors.Errorf("unknown version operator %v", op))
	}
}
