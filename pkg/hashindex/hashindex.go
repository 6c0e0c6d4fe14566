// Package hashindex builds the in-memory content-hash index used for
// cross-name duplicate detection. The index maps a hash to the ordered
// list of files already observed under the destination tree and is
// mutated as a batch proceeds so later files can match earlier moves.
package hashindex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/hasher"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/history"
)

// Index maps content hashes to ordered lists of file paths. Lookup order
// is stable: paths keep the order in which they were indexed, and new
// paths are appended, so the first entry for a hash stays the preferred
// duplicate target for the whole batch.
type Index struct {
	entries map[string][]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string][]string)}
}

// Lookup returns the indexed paths for a hash in insertion order, or nil.
// The returned slice is owned by the index and must not be mutated.
func (x *Index) Lookup(hash string) []string {
	return x.entries[hash]
}

// Add appends a path under a hash.
func (x *Index) Add(hash, path string) {
	x.entries[hash] = append(x.entries[hash], path)
}

// Len returns the number of distinct hashes in the index.
func (x *Index) Len() int {
	return len(x.entries)
}

// Build constructs an index of every regular file under root as it exists
// before the batch runs. Paths in exclude (absolute, cleaned) are the
// batch's own pending sources and are left out; without that exclusion
// two identical pending files would match each other and both be deleted.
// The ledger file is not indexed.
//
// The tree is walked in lexical order and files are hashed through the
// hasher's worker pool, but entries are inserted in walk order so the
// index is deterministic. Files that fail to hash are skipped. A root
// that does not exist yet yields an empty index, so a dry run against a
// destination that a real run would create still works.
func Build(root string, exclude map[string]bool, h *hasher.Hasher) (*Index, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return NewIndex(), nil
	}

	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == history.FileName {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		abs, absErr := filepath.Abs(path)
		if absErr != nil {
			abs = filepath.Clean(path)
		}
		if exclude[abs] {
			return nil
		}

		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk destination tree: %w", err)
	}

	hashes := make(map[string]string, len(paths))
	for result := range h.HashFiles(paths) {
		if result.Error != nil {
			continue
		}
		hashes[result.Path] = result.Hash
	}

	index := NewIndex()
	for _, path := range paths {
		hash, ok := hashes[path]
		if !ok {
			continue
		}
		index.Add(hash, path)
	}

	return index, nil
}

// ExcludeSet converts a list of pending source paths into the absolute,
// cleaned lookup set Build expects.
func ExcludeSet(files []string) map[string]bool {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = filepath.Clean(f)
		}
		set[abs] = true
	}
	return set
}
