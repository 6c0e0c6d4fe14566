// Package fsops provides the primitive move and copy operations shared by
// the moving engine and the undo engine.
package fsops

import (
	"fmt"
	"io"
	"os"
)

// MoveFile renames src to dst, falling back to copy plus delete when the
// rename fails (typically across filesystem boundaries).
func MoveFile(src, dst string) error {
	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	if err := CopyFile(src, dst); err != nil {
		// The copy fallback also failed; the rename error names the
		// underlying cause better.
		return renameErr
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}

	return nil
}

// CopyFile copies src to dst as a plain byte copy. Permissions and other
// attributes beyond the default file mode are not preserved. A partial
// destination is removed on failure.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy contents: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("close destination: %w", err)
	}

	return nil
}
