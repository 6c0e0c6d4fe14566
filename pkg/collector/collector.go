// Package collector discovers files in watched folders under filtering
// rules before they are handed to the moving engine.
package collector

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// FileInfo holds metadata about a discovered file.
type FileInfo struct {
	Path    string    // Full path to the file
	Dir     string    // Directory containing the file
	Name    string    // Original filename
	Size    int64     // File size in bytes
	ModTime time.Time // Modification time
}

// Options configures the collector behavior. Include and Exclude are
// doublestar glob patterns matched against the slash-separated path
// relative to the collection root; an empty Include list matches
// everything.
type Options struct {
	Include    []string
	Exclude    []string
	SkipFiles  []string // exact filenames to skip
	SkipDirs   []string // directory names to skip entirely
	SkipHidden bool     // skip dot-files and dot-directories
}

// Collector collects file metadata from watched directory trees.
type Collector struct {
	include    []string
	exclude    []string
	skipFiles  map[string]bool
	skipDirs   map[string]bool
	skipHidden bool
}

// New creates a new Collector with the given options.
func New(opts Options) *Collector {
	c := &Collector{
		include:    append([]string(nil), opts.Include...),
		exclude:    append([]string(nil), opts.Exclude...),
		skipFiles:  make(map[string]bool),
		skipDirs:   make(map[string]bool),
		skipHidden: opts.SkipHidden,
	}

	for _, f := range opts.SkipFiles {
		c.skipFiles[f] = true
	}
	for _, d := range opts.SkipDirs {
		c.skipDirs[d] = true
	}

	return c
}

// Collect walks the directory tree and returns metadata for every file
// passing the filter rules.
func (c *Collector) Collect(rootDir string) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path == rootDir {
				return nil
			}
			if c.skipDirs[info.Name()] || (c.skipHidden && strings.HasPrefix(info.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !c.matches(rootDir, path, info.Name()) {
			return nil
		}

		files = append(files, FileInfo{
			Path:    path,
			Dir:     filepath.Dir(path),
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Paths is a convenience that returns just the file paths of a collection.
func (c *Collector) Paths(rootDir string) ([]string, error) {
	files, err := c.Collect(rootDir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	return paths, nil
}

func (c *Collector) matches(rootDir, path, name string) bool {
	if c.skipFiles[name] {
		return false
	}
	if c.skipHidden && strings.HasPrefix(name, ".") {
		return false
	}

	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		rel = name
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range c.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}

	if len(c.include) == 0 {
		return true
	}

	for _, pattern := range c.include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}
