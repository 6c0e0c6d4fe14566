// Package hasher provides SHA256 file hashing utilities with parallel
// processing support for bulk index construction.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
)

// chunkSize is the read buffer size used when hashing a file. Files are
// streamed through the hash in chunks of this size so memory stays bounded
// regardless of file size.
const chunkSize = 64 * 1024

// HashError describes a failure to hash a file: the path does not exist,
// is not a regular file, or could not be read.
type HashError struct {
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("hash %s: %v", e.Path, e.Err)
}

func (e *HashError) Unwrap() error {
	return e.Err
}

// HashResult contains the result of hashing a single file.
type HashResult struct {
	Path  string
	Hash  string
	Size  int64
	Error error
}

// Hasher computes SHA256 hashes of files with optional parallel processing.
type Hasher struct {
	workers int
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithWorkers sets the number of worker goroutines for parallel hashing.
// Default is runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(h *Hasher) {
		if n > 0 {
			h.workers = n
		}
	}
}

// New creates a new Hasher with the given options.
func New(opts ...Option) *Hasher {
	h := &Hasher{
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ComputeHash computes the full SHA256 hash of a regular file, reading it
// in fixed-size chunks. All failures are reported as *HashError.
func (h *Hasher) ComputeHash(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &HashError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &HashError{Path: path, Err: fmt.Errorf("not a regular file")}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &HashError{Path: path, Err: err}
	}
	defer f.Close()

	hash := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(hash, f, buf); err != nil {
		return "", &HashError{Path: path, Err: err}
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// HashFiles computes hashes for multiple files concurrently.
// Returns a channel that will receive one HashResult per file.
// The channel is closed when all files have been processed.
func (h *Hasher) HashFiles(paths []string) <-chan HashResult {
	results := make(chan HashResult, h.workers)

	go func() {
		defer close(results)

		work := make(chan string, h.workers)

		var wg sync.WaitGroup
		for i := 0; i < h.workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for path := range work {
					hash, err := h.ComputeHash(path)
					var size int64
					if err == nil {
						if info, statErr := os.Stat(path); statErr == nil {
							size = info.Size()
						}
					}
					results <- HashResult{
						Path:  path,
						Hash:  hash,
						Size:  size,
						Error: err,
					}
				}
			}()
		}

		for _, path := range paths {
			work <- path
		}
		close(work)

		wg.Wait()
	}()

	return results
}

// Workers returns the number of worker goroutines configured.
func (h *Hasher) Workers() int {
	return h.workers
}
