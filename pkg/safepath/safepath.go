// Package safepath validates that destination paths stay inside an
// allowed root directory before any file is touched.
package safepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPathEscape indicates an attempt to write outside the allowed root.
	ErrPathEscape = errors.New("path escapes allowed root directory")
	// ErrInvalidRoot indicates the allowed root is invalid.
	ErrInvalidRoot = errors.New("invalid root directory")
)

// Validator ensures destination paths are contained within an allowed root.
type Validator struct {
	root string // absolute, symlink-resolved, cleaned
}

// New creates a Validator for the given root, which must be an existing
// directory.
func New(root string) (*Validator, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}

	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}

	cleanRoot := filepath.Clean(resolvedRoot)

	info, err := os.Stat(cleanRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory", ErrInvalidRoot)
	}

	return &Validator{root: cleanRoot}, nil
}

// Root returns the absolute path of the allowed root directory.
func (v *Validator) Root() string {
	return v.root
}

// ValidatePath checks that path resolves inside the allowed root.
// Returns ErrPathEscape otherwise.
func (v *Validator) ValidatePath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathEscape)
	}

	cleanPath := filepath.Clean(absPath)

	if !isSubPath(v.root, cleanPath) {
		return fmt.Errorf("%w: %s", ErrPathEscape, path)
	}

	return nil
}

// isSubPath checks if child is contained in parent. Both paths must be
// absolute and clean. Equal paths count as contained.
func isSubPath(parent, child string) bool {
	if parent == child {
		return true
	}

	parentWithSep := parent
	if !strings.HasSuffix(parentWithSep, string(filepath.Separator)) {
		parentWithSep += string(filepath.Separator)
	}

	return strings.HasPrefix(child, parentWithSep)
}
