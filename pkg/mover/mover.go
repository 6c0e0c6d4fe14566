// Package mover implements the deduplication-aware file-moving engine.
// It moves batches of files into a destination directory, resolving
// same-name and cross-name content duplicates, allocating collision-free
// names, and recording a reversible history ledger for undo.
package mover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/abort"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/classifier"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/fsops"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/hasher"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/hashindex"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/history"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/progress"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/safepath"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/sanitizer"
)

// Options controls a single move batch.
type Options struct {
	// DryRun performs every duplicate check (including hashing) but no
	// filesystem mutation and produces no history entries.
	DryRun bool
	// Deduplicate enables the same-name content-duplicate check against
	// an existing file at the exact candidate path.
	Deduplicate bool
	// GlobalDedup enables cross-name duplicate detection against a hash
	// index of the whole destination tree.
	GlobalDedup bool
	// OnProgress is invoked once per processed file. It runs on the
	// calling goroutine; panics are recovered and logged.
	OnProgress progress.FileFunc
}

// Result aggregates the outcome of one move batch. Counters keep counting
// across per-file failures; History holds one entry per mutated file in
// processing order.
type Result struct {
	Moved             int
	Errors            int
	NameDuplicates    int
	ContentDuplicates int
	GlobalDuplicates  int
	History           []history.Entry
	// CreatedFolders holds the type-folder labels newly created by a
	// sorted batch (or that would be created, in dry-run mode). Nil for
	// flat batches.
	CreatedFolders map[string]bool
	// LedgerPath is the history ledger written for this batch, empty for
	// dry runs and batches without mutations.
	LedgerPath string
}

// Mover moves batches of files with duplicate detection. All hashing and
// moving is sequential per file so duplicate-detection ordering stays
// deterministic; the caller may run the whole batch on a background
// goroutine and cancel it through the abort signal.
type Mover struct {
	hasher    *hasher.Hasher
	store     *history.Store
	validator *safepath.Validator
	signal    *abort.Signal
	log       zerolog.Logger
}

// Option configures a Mover.
type Option func(*Mover)

// WithHasher replaces the default hasher.
func WithHasher(h *hasher.Hasher) Option {
	return func(m *Mover) {
		if h != nil {
			m.hasher = h
		}
	}
}

// WithHistoryStore replaces the default history store.
func WithHistoryStore(s *history.Store) Option {
	return func(m *Mover) {
		if s != nil {
			m.store = s
		}
	}
}

// WithValidator restricts destinations to the validator's allowed root.
// A destination outside the root fails the whole batch before any file
// is touched.
func WithValidator(v *safepath.Validator) Option {
	return func(m *Mover) {
		m.validator = v
	}
}

// WithAbortSignal attaches a shared abort signal, polled before each file.
func WithAbortSignal(s *abort.Signal) Option {
	return func(m *Mover) {
		m.signal = s
	}
}

// WithLogger attaches a logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Mover) {
		m.log = log
	}
}

// New creates a Mover.
func New(opts ...Option) *Mover {
	m := &Mover{
		hasher: hasher.New(),
		store:  history.NewStore(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MoveFiles moves files into destination without type-folder routing.
func (m *Mover) MoveFiles(files []string, destination string, opts Options) (Result, error) {
	return m.moveBatch(files, destination, false, opts)
}

// MoveFilesSorted moves files into per-type subfolders of destination,
// chosen by the extension classifier. Result.CreatedFolders reports the
// labels of subfolders created for this batch.
func (m *Mover) MoveFilesSorted(files []string, destination string, opts Options) (Result, error) {
	return m.moveBatch(files, destination, true, opts)
}

func (m *Mover) moveBatch(files []string, destination string, sorted bool, opts Options) (Result, error) {
	res := Result{}
	if sorted {
		res.CreatedFolders = make(map[string]bool)
	}

	if m.validator != nil {
		if err := m.validator.ValidatePath(destination); err != nil {
			return res, err
		}
	}

	destAbs, err := filepath.Abs(destination)
	if err != nil {
		return res, fmt.Errorf("resolve destination: %w", err)
	}

	if !opts.DryRun {
		if err := os.MkdirAll(destAbs, 0o755); err != nil {
			return res, fmt.Errorf("create destination: %w", err)
		}
	}

	// Global dedup needs the destination tree indexed as it exists before
	// the batch, with the batch's own sources excluded, and the input
	// ordered so the presumed original of an identical group is processed
	// first and survives.
	var index *hashindex.Index
	if opts.GlobalDedup {
		index, err = hashindex.Build(destAbs, hashindex.ExcludeSet(files), m.hasher)
		if err != nil {
			return res, fmt.Errorf("build hash index: %w", err)
		}
		files = sortForGlobalDedup(files)
	}

	total := len(files)

	for i, src := range files {
		// Abort is polled before each file. Files already processed stay
		// processed and their ledger is still written below so a partial
		// batch remains undoable.
		if m.signal != nil && m.signal.Signaled() {
			m.log.Warn().Int("processed", i).Int("total", total).Msg("move batch aborted")
			break
		}

		srcAbs, absErr := filepath.Abs(src)
		if absErr != nil {
			srcAbs = filepath.Clean(src)
		}

		destDir := destAbs
		label := ""
		if sorted {
			label = classifier.TypeFolder(filepath.Base(srcAbs))
			destDir = filepath.Join(destAbs, label)
		}

		fileErr := m.processFile(srcAbs, destDir, label, sorted, index, opts, &res)
		if fileErr != nil {
			res.Errors++
			m.log.Warn().Err(fileErr).Str("path", srcAbs).Msg("file failed")
		}

		progress.EmitFile(m.log, opts.OnProgress, i+1, total, srcAbs, fileErr)
	}

	if !opts.DryRun && len(res.History) > 0 {
		ledgerPath, saveErr := m.store.Save(res.History, destAbs)
		if saveErr != nil {
			return res, fmt.Errorf("save history ledger: %w", saveErr)
		}
		res.LedgerPath = ledgerPath
	}

	return res, nil
}

// processFile runs the per-file pipeline: local duplicate check, global
// duplicate check, then the actual move. Any returned error is local to
// this file; the batch continues.
func (m *Mover) processFile(src, destDir, label string, sorted bool, index *hashindex.Index, opts Options, res *Result) error {
	name := filepath.Base(src)
	candidate := filepath.Join(destDir, name)

	// Same-name duplicate: a byte-identical file already sits at the exact
	// candidate path. The source is deleted, the existing file is kept and
	// no unique name is consumed. Hash failures fail open to a normal move.
	if opts.Deduplicate && regularFileExists(candidate) {
		if m.sameContent(src, candidate) {
			if !opts.DryRun {
				if err := os.Remove(src); err != nil {
					return fmt.Errorf("delete duplicate source: %w", err)
				}
				res.History = append(res.History, history.NewDuplicateEntry(src, candidate, history.KindContentDuplicate))
			}
			res.ContentDuplicates++
			m.log.Debug().Str("source", src).Str("kept", candidate).Msg("content duplicate")
			return nil
		}
	}

	// Cross-name duplicate: identical content anywhere under the
	// destination tree. The first indexed path for the hash wins.
	var srcHash string
	if opts.GlobalDedup && index != nil {
		hash, hashErr := m.hasher.ComputeHash(src)
		if hashErr != nil {
			m.log.Debug().Err(hashErr).Str("path", src).Msg("hash failed, not treated as duplicate")
		} else {
			srcHash = hash
			if kept := firstOtherPath(index.Lookup(hash), src); kept != "" {
				if !opts.DryRun {
					if err := os.Remove(src); err != nil {
						return fmt.Errorf("delete duplicate source: %w", err)
					}
					res.History = append(res.History, history.NewDuplicateEntry(src, kept, history.KindGlobalDuplicate))
				}
				res.GlobalDuplicates++
				m.log.Debug().Str("source", src).Str("kept", kept).Msg("global duplicate")
				return nil
			}
		}
	}

	// Normal move with collision-free naming.
	if sorted {
		if err := m.ensureTypeFolder(destDir, label, opts.DryRun, res.CreatedFolders); err != nil {
			return err
		}
	}

	uniqueName := sanitizer.UniqueName(destDir, name)
	target := filepath.Join(destDir, uniqueName)

	if !opts.DryRun {
		if err := fsops.MoveFile(src, target); err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
		res.History = append(res.History, history.NewEntry(src, target))

		// Later files in this batch can now match the moved file.
		if index != nil && srcHash != "" {
			index.Add(srcHash, target)
		}
	}

	if uniqueName != name {
		res.NameDuplicates++
	}
	res.Moved++

	return nil
}

// sameContent reports whether both files hash identically. Hash failures
// on either side are treated as "not a duplicate".
func (m *Mover) sameContent(a, b string) bool {
	hashA, err := m.hasher.ComputeHash(a)
	if err != nil {
		m.log.Debug().Err(err).Str("path", a).Msg("hash failed, not treated as duplicate")
		return false
	}

	hashB, err := m.hasher.ComputeHash(b)
	if err != nil {
		m.log.Debug().Err(err).Str("path", b).Msg("hash failed, not treated as duplicate")
		return false
	}

	return hashA == hashB
}

// ensureTypeFolder creates the type subfolder on first use and records it
// as newly created when it did not already exist. Dry runs record the
// label without creating anything.
func (m *Mover) ensureTypeFolder(destDir, label string, dryRun bool, created map[string]bool) error {
	if created[label] {
		return nil
	}

	if _, err := os.Stat(destDir); err == nil {
		return nil
	}

	if dryRun {
		created[label] = true
		return nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create type folder %s: %w", label, err)
	}

	created[label] = true

	return nil
}
