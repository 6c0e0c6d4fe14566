// Package history persists the reversible move ledger written after each
// batch operation. One JSON document lives per destination directory; a
// new save replaces the previous ledger entirely, and the undo engine
// deletes it once the batch has been fully reversed.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileName is the ledger filename inside a destination directory.
const FileName = ".file-history.json"

// Version is the ledger schema version written by this package.
const Version = "1.0"

// Kind describes what happened to a file during a batch operation.
type Kind int

const (
	// KindMove is a plain move to a (possibly renamed) destination path.
	KindMove Kind = iota
	// KindContentDuplicate means the source matched a same-named
	// destination file byte for byte and was deleted instead of moved.
	KindContentDuplicate
	// KindGlobalDuplicate means the source matched a different-named file
	// somewhere under the destination tree and was deleted.
	KindGlobalDuplicate
)

// Entry records one moved or deduplicated file. Exactly one of the three
// kinds applies: a plain move carries neither duplicate flag, while a
// duplicate entry carries exactly one flag plus DuplicateOf.
type Entry struct {
	OriginalPath     string `json:"original_path"`
	NewPath          string `json:"new_path"`
	OriginalName     string `json:"original_name"`
	NewName          string `json:"new_name"`
	Timestamp        string `json:"timestamp"`
	ContentDuplicate bool   `json:"content_duplicate,omitempty"`
	GlobalDuplicate  bool   `json:"global_duplicate,omitempty"`
	DuplicateOf      string `json:"duplicate_of,omitempty"`
}

// NewEntry creates a plain move entry stamped with the current time.
func NewEntry(originalPath, newPath string) Entry {
	return Entry{
		OriginalPath: originalPath,
		NewPath:      newPath,
		OriginalName: filepath.Base(originalPath),
		NewName:      filepath.Base(newPath),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
}

// NewDuplicateEntry creates an entry for a deduplicated (deleted) source.
// keptPath is the surviving file; kind selects which duplicate flag is set.
func NewDuplicateEntry(originalPath, keptPath string, kind Kind) Entry {
	e := NewEntry(originalPath, keptPath)
	e.DuplicateOf = keptPath

	switch kind {
	case KindContentDuplicate:
		e.ContentDuplicate = true
	case KindGlobalDuplicate:
		e.GlobalDuplicate = true
	}

	return e
}

// Kind returns which of the three entry kinds applies.
func (e Entry) Kind() Kind {
	switch {
	case e.ContentDuplicate:
		return KindContentDuplicate
	case e.GlobalDuplicate:
		return KindGlobalDuplicate
	default:
		return KindMove
	}
}

// IsDuplicate reports whether the entry records a deduplicated source
// rather than a plain move.
func (e Entry) IsDuplicate() bool {
	return e.ContentDuplicate || e.GlobalDuplicate
}

// Ledger is the persisted record of one move batch. Operations are in
// chronological append order.
type Ledger struct {
	Timestamp  string  `json:"timestamp"`
	Version    string  `json:"version"`
	RunID      string  `json:"run_id"`
	Operations []Entry `json:"operations"`
}

// Store reads and writes ledgers in destination directories. The zero
// filename defaults to FileName; tests may point it elsewhere.
type Store struct {
	fileName string
}

// NewStore creates a Store using the default ledger filename.
func NewStore() *Store {
	return &Store{fileName: FileName}
}

// Path returns the ledger path for a destination directory.
func (s *Store) Path(dir string) string {
	return filepath.Join(dir, s.fileName)
}

// Save writes a fresh ledger containing entries to dir, replacing any
// existing ledger, and returns the ledger path. The store itself accepts
// empty entry lists; callers are expected not to save empty batches.
func (s *Store) Save(entries []Entry, dir string) (string, error) {
	ledger := Ledger{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Version:    Version,
		RunID:      uuid.NewString(),
		Operations: entries,
	}

	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode history ledger: %w", err)
	}

	path := s.Path(dir)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write history ledger: %w", err)
	}

	return path, nil
}

// Load reads the ledger for dir. An absent, unreadable, or malformed
// ledger is treated as no history and returns nil; corruption never
// propagates as an error to the caller.
func (s *Store) Load(dir string) *Ledger {
	data, err := os.ReadFile(s.Path(dir))
	if err != nil {
		return nil
	}

	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil
	}

	return &ledger
}

// Delete removes the ledger for dir and reports whether a file was
// actually removed.
func (s *Store) Delete(dir string) bool {
	err := os.Remove(s.Path(dir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}
