package apt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStanza = `Package: libfoo
Version: 1.0-1
Architecture: amd64
Filename: pool/main/libfoo_1.0-1_amd64.deb
Depends: libc6 (>= 2.31)
Provides: libfoo-compat

Package: postfix
Version: 3.5.0
Architecture: amd64
Filename: pool/main/postfix_3.5.0_amd64.deb
Provides: mail-transport-agent
`

func writeIndexFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBuildIndexesHappyPath(t *testing.T) {
	dir := t.TempDir()
	writeIndexFile(t, dir, "archive.ubuntu.com-focal-main-binary-amd64.txt", sampleStanza)

	idx, err := BuildIndexes(dir)
	require.NoError(t, err)
	assert.Equal(t, "amd64", idx.TargetArch)
	require.Contains(t, idx.PkgsByName, "libfoo")
	assert.Equal(t, "1.0-1", idx.PkgsByName["libfoo"][0].Version)
	assert.Equal(t, "pool/main/postfix_3.5.0_amd64.deb", idx.PkgsByName["postfix"][0].Filename)
	require.Contains(t, idx.ProvidesIndex, "mail-transport-agent")
}

func TestBuildIndexesInconsistentArchIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeIndexFile(t, dir, "archive.ubuntu.com-focal-main-binary-amd64.txt", sampleStanza)
	writeIndexFile(t, dir, "archive.ubuntu.com-focal-main-binary-arm64.txt", sampleStanza)

	_, err := BuildIndexes(dir)
	require.Error(t, err)
	var ise *IndexStructuralError
	require.ErrorAs(t, err, &ise)
}

func TestBuildIndexesMissingDirectory(t *testing.T) {
	_, err := BuildIndexes(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestBuildIndexesNoFiles(t *testing.T) {
	_, err := BuildIndexes(t.TempDir())
	require.Error(t, err)
}

func TestBuildIndexesMalformedPackageName(t *testing.T) {
	dir := t.TempDir()
	writeIndexFile(t, dir, "host-focal-main-binary-amd64.txt",
		"Package: Not_Valid\nVersion: 1.0\nArchitecture: amd64\nFilename: pool/main/foo.deb\n")
	_, err := BuildIndexes(dir)
	require.Error(t, err)
	var ise *IndexStructuralError
	require.ErrorAs(t, err, &ise)
}

func TestBuildIndexesMissingMandatoryField(t *testing.T) {
	dir := t.TempDir()
	writeIndexFile(t, dir, "host-focal-main-binary-amd64.txt", "Package: broken\nVersion: 1.0\n")
	_, err := BuildIndexes(dir)
	require.Error(t, err)
}

func TestDeriveSourceHint(t *testing.T) {
	got := deriveSourceHint("archive.ubuntu.com-focal-main", "amd64")
	assert.Equal(t, "archive.ubuntu.com/focal/main/binary-amd64", got)
}
