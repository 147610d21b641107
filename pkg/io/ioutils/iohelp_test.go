package ioutils

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, path string) []byte {
	t.Helper()
	w, err := CreateMaybeCompressed(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "Name,Age\nA,1\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenMaybeCompressed(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}

func TestPlainRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.csv")
	assert.Equal(t, "Name,Age\nA,1\n", string(roundTrip(t, p)))
}

func TestGzipRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.csv.gz")
	assert.Equal(t, "Name,Age\nA,1\n", string(roundTrip(t, p)))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])
}

func TestGzipSniffedWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	gz := filepath.Join(dir, "x.csv.gz")
	roundTrip(t, gz)
	plain := filepath.Join(dir, "renamed.csv")
	require.NoError(t, os.Rename(gz, plain))

	r, err := OpenMaybeCompressed(plain)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Name,Age\nA,1\n", string(b))
}

func TestOpenMissing(t *testing.T) {
	_, err := OpenMaybeCompressed(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBaseExt(t *testing.T) {
	assert.Equal(t, ".csv", BaseExt("a/b.CSV"))
	assert.Equal(t, ".jsonl", BaseExt("out.jsonl.gz"))
	assert.Equal(t, ".parquet", BaseExt("out.parquet"))
	assert.Equal(t, "", BaseExt("out"))
}
