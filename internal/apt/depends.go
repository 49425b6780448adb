package apt

import "strings"

// ParseCombinedDepends parses the Depends and Pre-Depends fields of a
// package as one logical field: Pre-Depends and Depends are concatenated
// with a comma and treated uniformly, since both must be satisfied for a
// bootable offline install.
func ParseCombinedDepends(pkg, dependsRaw, preDependsRaw string) ([]DepGroup, error) {
	dependsRaw = strings.TrimSpace(dependsRaw)
	preDependsRaw = strings.TrimSpace(preDependsRaw)

	combined := dependsRaw
	switch {
	case dependsRaw == "":
		combined = preDependsRaw
	case preDependsRaw == "":
		combined = dependsRaw
	default:
		combined = preDependsRaw + ", " + dependsRaw
	}

	return parseDepField(pkg, "Depends+Pre-Depends", combined)
}

// ParseDepends parses a single field ("Depends" or "Pre-Depends") on its
// own, so a group can be attributed to one field. Nothing in this module
// calls it; the walker and Explain both use ParseCombinedDepends.
func ParseDepends(pkg, field, raw string) ([]DepGroup, error) {
	return parseDepField(pkg, field, raw)
}

// ParseTopLevelAtom parses a user-supplied top-level package name as a
// single DepAtom. DepAtom syntax ("name[:arch] [(op ver)]") is permitted
// so a user can pin an architecture or version on the command line, e.g.
// "libssl-dev:arm64" or "libc6 (>= 2.35)".
func ParseTopLevelAtom(name string) (DepAtom, error) {
	return parseAtom(strings.TrimSpace(name))
}
