package apt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAtomPlain(t *testing.T) {
	a, err := parseAtom("libfoo")
	require.NoError(t, err)
	assert.Equal(t, "libfoo", a.Name)
	assert.Equal(t, ArchQualNone, a.ArchQual)
	assert.Equal(t, OpNone, a.Op)
	assert.Empty(t, a.ArchList)
}

func TestParseAtomFull(t *testing.T) {
	a, err := parseAtom("libfoo:arm64 (>= 2.0) [amd64 i386]")
	require.NoError(t, err)
	assert.Equal(t, "libfoo", a.Name)
	assert.Equal(t, ArchQualLiteral, a.ArchQual)
	assert.Equal(t, "arm64", a.ArchName)
	assert.Equal(t, OpGE, a.Op)
	assert.Equal(t, "2.0", a.Ver)
	assert.Equal(t, []string{"amd64", "i386"}, a.ArchList)
}

func TestParseAtomArchQualifiers(t *testing.T) {
	cases := []struct {
		raw  string
		want ArchQual
	}{
		{"libfoo:any", ArchQualAny},
		{"libfoo:native", ArchQualNative},
		{"libfoo:armhf", ArchQualLiteral},
	}
	for _, tc := range cases {
		a, err := parseAtom(tc.raw)
		require.NoError(t, err)
		assert.Equal(t, tc.want, a.ArchQual)
	}
}

func TestParseAtomRejectsBuildProfile(t *testing.T) {
	_, err := parseAtom("libfoo <!nocheck>")
	require.Error(t, err)
	var dpe *DependencyParseError
	require.ErrorAs(t, err, &dpe)
}

func TestParseAtomRejectsMalformedName(t *testing.T) {
	_, err := parseAtom("Not_A_Valid_Name")
	require.Error(t, err)
}

func TestParseAtomRoundTrip(t *testing.T) {
	cases := []string{
		"libfoo",
		"libfoo (>= 1.0)",
		"libfoo:arm64",
		"libfoo [amd64 i386]",
		"libfoo:any (= 1.2-3~rc1) [amd64]",
	}
	for _, raw := range cases {
		a, err := parseAtom(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, a.String(), "round trip of %q", raw)
	}
}

func TestParseDepFieldAndOr(t *testing.T) {
	groups, err := parseDepField("pkg", "Depends", "libfoo (>= 1.0), libbar | libbaz")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0], 1)
	assert.Len(t, groups[1], 2)
	assert.Equal(t, "libbar", groups[1][0].Name)
	assert.Equal(t, "libbaz", groups[1][1].Name)
}

func TestParseDepFieldEmpty(t *testing.T) {
	groups, err := parseDepField("pkg", "Depends", "  ")
	require.NoError(t, err)
	assert.Nil(t, groups)
}

func TestParseDepFieldVersionWithCommaDoesNotSplit(t *testing.T) {
	// An unusual but legal version string containing a comma must not be
	// mistaken for a group separator.
	groups, err := parseDepField("pkg", "Depends", "libfoo (>= 1,2)")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "1,2", groups[0][0].Ver)
}

func TestParseProvides(t *testing.T) {
	m, err := parseProvides("pkg", "mail-transport-agent, httpd (= 2.4)")
	require.NoError(t, err)
	assert.Contains(t, m, "mail-transport-agent")
	assert.Equal(t, "", m["mail-transport-agent"])
	assert.Equal(t, "2.4", m["httpd"])
}

func TestParseProvidesRejectsNonEqualOperator(t *testing.T) {
	_, err := parseProvides("pkg", "httpd (>= 2.4)")
	require.Error(t, err)
}
