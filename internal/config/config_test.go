package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "debclose.toml"))
	require.NoError(t, err)
	assert.Empty(t, f.BaseURL)
	assert.Empty(t, f.Packages)
}

func TestLoadParsesFields(t *testing.T) {
	content := `
base-url = ["https://archive.ubuntu.com/ubuntu", "https://mirror.example/ubuntu"]
packages = ["curl", "vim"]
index-dir = "./index"
out-dir = "./debs"
`
	path := filepath.Join(t.TempDir(), "debclose.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://archive.ubuntu.com/ubuntu", "https://mirror.example/ubuntu"}, f.BaseURL)
	assert.Equal(t, []string{"curl", "vim"}, f.Packages)
	assert.Equal(t, "./index", f.IndexDir)
	assert.Equal(t, "./debs", f.OutDir)
}

func TestLoadMalformedTOMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debclose.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
