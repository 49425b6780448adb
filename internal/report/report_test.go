package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BigBIueWhale/debclose/internal/apt"
)

func TestWriteProducesReadableTOML(t *testing.T) {
	recs := []*apt.PackageRecord{
		{Name: "libfoo", Version: "1.0-1", Arch: "amd64", Filename: "pool/main/libfoo_1.0-1_amd64.deb"},
		{Name: "libbar", Version: "2.0-1", Arch: "amd64", Filename: "pool/main/libbar_2.0-1_amd64.deb"},
	}

	path := filepath.Join(t.TempDir(), "report.toml")
	require.NoError(t, Write(path, recs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, toml.Unmarshal(data, &doc))
	require.Len(t, doc.Package, 2)
	assert.Equal(t, "libfoo", doc.Package[0].Name)
	assert.Equal(t, "1.0-1", doc.Package[0].Version)
	assert.Equal(t, "libbar", doc.Package[1].Name)
}

func TestWriteEmptyClosure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.toml")
	require.NoError(t, Write(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
