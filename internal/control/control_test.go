package control

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/blakesmith/ar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleControl = `Package: libfoo
Version: 1.0-1
Architecture: amd64
Depends: libc6 (>= 2.31),
 libbar
Pre-Depends: dpkg (>= 1.18)
`

func buildDeb(t *testing.T, controlMemberName string, compress func([]byte) []byte) []byte {
	t.Helper()

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	hdr := &tar.Header{Name: "./control", Mode: 0o644, Size: int64(len(sampleControl))}
	require.NoError(t, tw.WriteHeader(hdr))
	_, err := tw.Write([]byte(sampleControl))
	require.NoError(t, err)
	require.NoError(t, tw.Close())

	tarBytes := tarBuf.Bytes()
	if compress != nil {
		tarBytes = compress(tarBytes)
	}

	var arBuf bytes.Buffer
	aw := ar.NewWriter(&arBuf)
	require.NoError(t, aw.WriteGlobalHeader())
	require.NoError(t, aw.WriteHeader(&ar.Header{
		Name: "debian-binary",
		Size: int64(len("2.0\n")),
		Mode: 0o644,
	}))
	_, err = aw.Write([]byte("2.0\n"))
	require.NoError(t, err)

	require.NoError(t, aw.WriteHeader(&ar.Header{
		Name: controlMemberName,
		Size: int64(len(tarBytes)),
		Mode: 0o644,
	}))
	_, err = aw.Write(tarBytes)
	require.NoError(t, err)

	return arBuf.Bytes()
}

func gzipBytes(b []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write(b)
	_ = w.Close()
	return buf.Bytes()
}

func TestReadFieldsUncompressed(t *testing.T) {
	deb := buildDeb(t, "control.tar", nil)
	fields, err := ReadFields(bytes.NewReader(deb))
	require.NoError(t, err)
	assert.Equal(t, "libfoo", fields.Package)
	assert.Equal(t, "1.0-1", fields.Version)
	assert.Equal(t, "libc6 (>= 2.31),\nlibbar", fields.Depends)
	assert.Equal(t, "dpkg (>= 1.18)", fields.PreDepends)
}

func TestReadFieldsGzip(t *testing.T) {
	deb := buildDeb(t, "control.tar.gz", gzipBytes)
	fields, err := ReadFields(bytes.NewReader(deb))
	require.NoError(t, err)
	assert.Equal(t, "libfoo", fields.Package)
}

func TestReadFieldsNoControlMember(t *testing.T) {
	var arBuf bytes.Buffer
	aw := ar.NewWriter(&arBuf)
	require.NoError(t, aw.WriteGlobalHeader())
	require.NoError(t, aw.WriteHeader(&ar.Header{Name: "debian-binary", Size: 4, Mode: 0o644}))
	_, err := aw.Write([]byte("2.0\n"))
	require.NoError(t, err)

	_, err = ReadFields(bytes.NewReader(arBuf.Bytes()))
	require.Error(t, err)
}
