package aiclassify

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ui-labs/folder-extractor-sub000/internal/testutil"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/config"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(config.AISettings{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNew_WithKey(t *testing.T) {
	client, err := New(config.AISettings{APIKey: "sk-test", Model: "gpt-4o"}, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]string{
		"INVOICES":                "INVOICES",
		"invoices":                "INVOICES",
		"  Photos \n":             "PHOTOS",
		"TAX DOCUMENTS":           "TAX_DOCUMENTS",
		"tax-documents":           "TAX_DOCUMENTS",
		"CODE.\nExplanation here": "CODE",
		"___CODE___":              "CODE",
		"!!!":                     "",
		"":                        "",
	}

	for answer, want := range cases {
		assert.Equal(t, want, NormalizeLabel(answer), "answer %q", answer)
	}
}

func TestNormalizeLabel_Bounded(t *testing.T) {
	long := strings.Repeat("A", 200)
	assert.Len(t, NormalizeLabel(long), maxLabelLength)
}

func TestReadSnippet_Text(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "note.txt")
	testutil.CreateFile(t, path, "plain text content")

	assert.Equal(t, "plain text content", ReadSnippet(path))
}

func TestReadSnippet_TruncatesLongFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "big.txt")
	testutil.CreateFile(t, path, strings.Repeat("x", maxSnippetBytes*2))

	assert.Len(t, ReadSnippet(path), maxSnippetBytes)
}

func TestReadSnippet_BinaryYieldsEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "blob.bin")
	testutil.CreateFile(t, path, "abc\x00def")

	assert.Empty(t, ReadSnippet(path))
}

func TestReadSnippet_MissingFile(t *testing.T) {
	assert.Empty(t, ReadSnippet(filepath.Join(t.TempDir(), "absent")))
}
