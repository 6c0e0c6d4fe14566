package hasher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ui-labs/folder-extractor-sub000/internal/testutil"
)

func TestComputeHash_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	pathA := filepath.Join(tmpDir, "a.txt")
	pathB := filepath.Join(tmpDir, "sub", "b.txt")

	testutil.CreateFile(t, pathA, "identical content")
	testutil.CreateFile(t, pathB, "identical content")

	h := New()

	hashA, err := h.ComputeHash(pathA)
	require.NoError(t, err)
	hashB, err := h.ComputeHash(pathB)
	require.NoError(t, err)

	assert.Equal(t, hashA, hashB)
	assert.Len(t, hashA, 64)
}

func TestComputeHash_DifferentContent(t *testing.T) {
	tmpDir := t.TempDir()
	pathA := filepath.Join(tmpDir, "a.txt")
	pathB := filepath.Join(tmpDir, "b.txt")

	testutil.CreateFile(t, pathA, "content one")
	testutil.CreateFile(t, pathB, "content two")

	h := New()

	hashA, err := h.ComputeHash(pathA)
	require.NoError(t, err)
	hashB, err := h.ComputeHash(pathB)
	require.NoError(t, err)

	assert.NotEqual(t, hashA, hashB)
}

func TestComputeHash_MissingFile(t *testing.T) {
	h := New()

	_, err := h.ComputeHash(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)

	var hashErr *HashError
	assert.ErrorAs(t, err, &hashErr)
}

func TestComputeHash_Directory(t *testing.T) {
	h := New()

	_, err := h.ComputeHash(t.TempDir())
	require.Error(t, err)

	var hashErr *HashError
	assert.ErrorAs(t, err, &hashErr)
}

func TestComputeHash_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "empty.txt")
	testutil.CreateFile(t, path, "")

	h := New()

	hash, err := h.ComputeHash(path)
	require.NoError(t, err)
	// SHA256 of empty input.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", hash)
}

func TestHashFiles_AllResultsDelivered(t *testing.T) {
	tmpDir := t.TempDir()

	var paths []string
	for _, name := range []string{"one.txt", "two.txt", "three.txt"} {
		path := filepath.Join(tmpDir, name)
		testutil.CreateFile(t, path, "content of "+name)
		paths = append(paths, path)
	}
	paths = append(paths, filepath.Join(tmpDir, "missing.txt"))

	h := New(WithWorkers(2))
	assert.Equal(t, 2, h.Workers())

	var ok, failed int
	for result := range h.HashFiles(paths) {
		if result.Error != nil {
			failed++
		} else {
			ok++
			assert.Len(t, result.Hash, 64)
		}
	}

	assert.Equal(t, 3, ok)
	assert.Equal(t, 1, failed)
}
