package hashindex

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ui-labs/folder-extractor-sub000/internal/testutil"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/hasher"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/history"
)

func TestBuild_IndexesDestinationTree(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, "a.txt"), "alpha")
	testutil.CreateFile(t, filepath.Join(tmpDir, "sub", "b.txt"), "beta")
	testutil.CreateFile(t, filepath.Join(tmpDir, "sub", "copy.txt"), "alpha")

	index, err := Build(tmpDir, nil, hasher.New())
	require.NoError(t, err)

	// "alpha" twice, "beta" once.
	assert.Equal(t, 2, index.Len())

	h := hasher.New()
	alphaHash, err := h.ComputeHash(filepath.Join(tmpDir, "a.txt"))
	require.NoError(t, err)

	paths := index.Lookup(alphaHash)
	require.Len(t, paths, 2)
	// Lexical walk order: a.txt before sub/copy.txt.
	assert.Equal(t, filepath.Join(tmpDir, "a.txt"), paths[0])
	assert.Equal(t, filepath.Join(tmpDir, "sub", "copy.txt"), paths[1])
}

func TestBuild_ExcludesPendingSources(t *testing.T) {
	tmpDir := t.TempDir()
	pending := filepath.Join(tmpDir, "incoming", "same.txt")
	testutil.CreateFile(t, pending, "payload")
	testutil.CreateFile(t, filepath.Join(tmpDir, "kept.txt"), "payload")

	index, err := Build(tmpDir, ExcludeSet([]string{pending}), hasher.New())
	require.NoError(t, err)

	h := hasher.New()
	hash, err := h.ComputeHash(pending)
	require.NoError(t, err)

	paths := index.Lookup(hash)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(tmpDir, "kept.txt"), paths[0])
}

func TestBuild_SkipsLedgerFile(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFile(t, filepath.Join(tmpDir, history.FileName), `{"operations":[]}`)

	index, err := Build(tmpDir, nil, hasher.New())
	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
}

func TestIndex_AddKeepsInsertionOrder(t *testing.T) {
	index := NewIndex()
	index.Add("h1", "/first")
	index.Add("h1", "/second")
	index.Add("h2", "/other")

	assert.Equal(t, []string{"/first", "/second"}, index.Lookup("h1"))
	assert.Equal(t, []string{"/other"}, index.Lookup("h2"))
	assert.Nil(t, index.Lookup("absent"))
}

func TestBuild_MissingRootYieldsEmptyIndex(t *testing.T) {
	index, err := Build(filepath.Join(t.TempDir(), "absent"), nil, hasher.New())
	require.NoError(t, err)
	assert.Equal(t, 0, index.Len())
}
