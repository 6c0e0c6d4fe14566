// Package sanitizer resolves filename collisions inside a destination
// directory by probing numbered alternatives.
package sanitizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// UniqueName returns a collision-free filename for destDir. If
// destDir/filename does not exist the name is returned unchanged.
// Otherwise "stem_1.ext", "stem_2.ext", ... are probed in increasing
// order and the first absent name is returned. The extension boundary is
// the first dot from the right; names without a dot are treated as a
// bare stem.
//
// Each candidate costs exactly one existence check, so a few hundred
// collisions stay cheap. There is no upper bound on the counter.
func UniqueName(destDir, filename string) string {
	if !exists(filepath.Join(destDir, filename)) {
		return filename
	}

	ext := filepath.Ext(filename)
	stem := filename[:len(filename)-len(ext)]

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !exists(filepath.Join(destDir, candidate)) {
			return candidate
		}
	}
}

// exists reports whether the path is present. Errors other than "not
// exist" (e.g. permission) are treated as present, which keeps the
// allocator from claiming a name it cannot verify.
func exists(path string) bool {
	_, err := os.Lstat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, os.ErrNotExist)
}
