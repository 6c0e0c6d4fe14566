package mover

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// regularFileExists reports whether path exists and is a regular file.
func regularFileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// firstOtherPath returns the first path in candidates that is not the
// source file itself, or "" when no such path exists. Candidates keep
// index insertion order, which makes the survivor choice stable.
func firstOtherPath(candidates []string, src string) string {
	srcClean := filepath.Clean(src)
	for _, c := range candidates {
		if filepath.Clean(c) != srcClean {
			return c
		}
	}
	return ""
}

// sortForGlobalDedup orders a batch so the presumed original of each
// identical group is processed first: modification time ascending, then
// shorter basename first, then lexicographic basename. Files that cannot
// be stat'ed sort with a zero modification time.
func sortForGlobalDedup(files []string) []string {
	type fileMeta struct {
		path    string
		base    string
		modTime time.Time
	}

	metas := make([]fileMeta, 0, len(files))
	for _, f := range files {
		meta := fileMeta{path: f, base: filepath.Base(f)}
		if info, err := os.Stat(f); err == nil {
			meta.modTime = info.ModTime()
		}
		metas = append(metas, meta)
	}

	sort.SliceStable(metas, func(i, j int) bool {
		if !metas[i].modTime.Equal(metas[j].modTime) {
			return metas[i].modTime.Before(metas[j].modTime)
		}
		if len(metas[i].base) != len(metas[j].base) {
			return len(metas[i].base) < len(metas[j].base)
		}
		return metas[i].base < metas[j].base
	})

	ordered := make([]string, len(metas))
	for i, meta := range metas {
		ordered[i] = meta.path
	}

	return ordered
}
