// Package undo reverses a recorded move batch by replaying its history
// ledger in reverse chronological order. Plain moves are moved back;
// deduplicated entries are restored by copying from the surviving file,
// which stays in place.
package undo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/abort"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/fsops"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/history"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/progress"
)

// Status describes the outcome of an undo run.
type Status string

const (
	// StatusNoHistory means no ledger (or an empty one) was found.
	StatusNoHistory Status = "no_history"
	// StatusSuccess means every entry was restored.
	StatusSuccess Status = "success"
	// StatusPartial means some entries failed but the run completed.
	StatusPartial Status = "partial"
	// StatusAborted means the abort signal stopped the run early.
	StatusAborted Status = "aborted"
)

// Result summarizes an undo run.
type Result struct {
	Status   Status
	Restored int
	Errors   int
	Aborted  bool
}

// Engine replays history ledgers in reverse.
type Engine struct {
	store  *history.Store
	signal *abort.Signal
	log    zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistoryStore replaces the default history store.
func WithHistoryStore(s *history.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.store = s
		}
	}
}

// WithAbortSignal attaches a shared abort signal, polled before each entry.
func WithAbortSignal(s *abort.Signal) Option {
	return func(e *Engine) {
		e.signal = s
	}
}

// WithLogger attaches a logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		store: history.NewStore(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Undo reverses the ledger recorded in dir. Entries are processed most
// recent first; a failing entry is counted and skipped rather than
// aborting the run. The ledger file is deleted only when at least one
// entry was restored and the run was not aborted, so an interrupted or
// empty run can be retried.
func (e *Engine) Undo(dir string, onProgress progress.StageFunc) Result {
	ledger := e.store.Load(dir)
	if ledger == nil || len(ledger.Operations) == 0 {
		return Result{Status: StatusNoHistory}
	}

	res := Result{}
	entries := ledger.Operations
	total := len(entries)

	for i := total - 1; i >= 0; i-- {
		if e.signal != nil && e.signal.Signaled() {
			e.log.Warn().Int("remaining", i+1).Msg("undo aborted")
			res.Aborted = true
			break
		}

		entry := entries[i]

		var restoreErr error
		if entry.IsDuplicate() {
			restoreErr = e.restoreDuplicate(entry)
		} else {
			restoreErr = e.restoreMove(entry)
		}

		if restoreErr != nil {
			res.Errors++
			e.log.Warn().Err(restoreErr).Str("path", entry.OriginalPath).Msg("restore failed")
		} else {
			res.Restored++
		}

		progress.EmitStage(e.log, onProgress, "undoing", total-i, total)
	}

	if res.Restored > 0 && !res.Aborted {
		if !e.store.Delete(dir) {
			e.log.Warn().Str("dir", dir).Msg("could not delete history ledger")
		}
	}

	switch {
	case res.Aborted:
		res.Status = StatusAborted
	case res.Errors > 0:
		res.Status = StatusPartial
	default:
		res.Status = StatusSuccess
	}

	return res
}

// restoreDuplicate recreates a deleted duplicate source by copying from
// the surviving file. The survivor must remain in place afterwards, so
// this is a copy, never a move.
func (e *Engine) restoreDuplicate(entry history.Entry) error {
	survivor := entry.NewPath

	if _, err := os.Stat(survivor); err != nil {
		return fmt.Errorf("surviving file missing: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(entry.OriginalPath), 0o755); err != nil {
		return fmt.Errorf("create original directory: %w", err)
	}

	if err := fsops.CopyFile(survivor, entry.OriginalPath); err != nil {
		return fmt.Errorf("copy back from survivor: %w", err)
	}

	return nil
}

// restoreMove moves a plainly moved file back to its original location.
func (e *Engine) restoreMove(entry history.Entry) error {
	if err := os.MkdirAll(filepath.Dir(entry.OriginalPath), 0o755); err != nil {
		return fmt.Errorf("create original directory: %w", err)
	}

	if err := fsops.MoveFile(entry.NewPath, entry.OriginalPath); err != nil {
		return fmt.Errorf("move back: %w", err)
	}

	return nil
}
