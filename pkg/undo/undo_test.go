package undo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0ui-labs/folder-extractor-sub000/internal/testutil"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/abort"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/history"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/mover"
)

func TestUndo_NoHistory(t *testing.T) {
	res := New().Undo(t.TempDir(), nil)

	assert.Equal(t, StatusNoHistory, res.Status)
	assert.Zero(t, res.Restored)
}

func TestUndo_EmptyLedger(t *testing.T) {
	tmpDir := t.TempDir()
	store := history.NewStore()
	_, err := store.Save(nil, tmpDir)
	require.NoError(t, err)

	res := New().Undo(tmpDir, nil)

	assert.Equal(t, StatusNoHistory, res.Status)
	// An empty ledger is left in place.
	assert.FileExists(t, store.Path(tmpDir))
}

func TestUndo_RestoresMovedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "dest")
	srcA := filepath.Join(tmpDir, "src", "a.txt")
	srcB := filepath.Join(tmpDir, "src", "nested", "b.txt")
	testutil.CreateFile(t, srcA, "alpha")
	testutil.CreateFile(t, srcB, "beta")

	moveRes, err := mover.New().MoveFiles([]string{srcA, srcB}, dest, mover.Options{})
	require.NoError(t, err)
	require.Equal(t, 2, moveRes.Moved)

	res := New().Undo(dest, nil)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 2, res.Restored)
	assert.Zero(t, res.Errors)

	assert.Equal(t, "alpha", testutil.ReadFile(t, srcA))
	assert.Equal(t, "beta", testutil.ReadFile(t, srcB))
	assert.NoFileExists(t, filepath.Join(dest, "a.txt"))
	assert.NoFileExists(t, filepath.Join(dest, history.FileName))
}

func TestUndo_RestoresDuplicateByCopy(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "dest")
	survivor := filepath.Join(dest, "kept.txt")
	testutil.CreateFile(t, survivor, "payload")

	deletedSrc := filepath.Join(tmpDir, "src", "dup.txt")

	store := history.NewStore()
	_, err := store.Save([]history.Entry{
		history.NewDuplicateEntry(deletedSrc, survivor, history.KindGlobalDuplicate),
	}, dest)
	require.NoError(t, err)

	res := New().Undo(dest, nil)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 1, res.Restored)

	// The survivor stays in place and the deleted source is recreated.
	assert.Equal(t, "payload", testutil.ReadFile(t, survivor))
	assert.Equal(t, "payload", testutil.ReadFile(t, deletedSrc))
	assert.NoFileExists(t, store.Path(dest))
}

func TestUndo_MissingSurvivorIsCountedAndSkipped(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "dest")
	moved := filepath.Join(dest, "moved.txt")
	testutil.CreateFile(t, moved, "m")

	origMoved := filepath.Join(tmpDir, "src", "moved.txt")
	origDup := filepath.Join(tmpDir, "src", "dup.txt")

	store := history.NewStore()
	_, err := store.Save([]history.Entry{
		history.NewEntry(origMoved, moved),
		history.NewDuplicateEntry(origDup, filepath.Join(dest, "gone.txt"), history.KindContentDuplicate),
	}, dest)
	require.NoError(t, err)

	res := New().Undo(dest, nil)

	assert.Equal(t, StatusPartial, res.Status)
	assert.Equal(t, 1, res.Restored)
	assert.Equal(t, 1, res.Errors)

	assert.Equal(t, "m", testutil.ReadFile(t, origMoved))
	assert.NoFileExists(t, origDup)
	// Partial runs still consume the ledger once something was restored.
	assert.NoFileExists(t, store.Path(dest))
}

func TestUndo_AbortKeepsLedger(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "dest")
	movedA := filepath.Join(dest, "a.txt")
	movedB := filepath.Join(dest, "b.txt")
	testutil.CreateFile(t, movedA, "a")
	testutil.CreateFile(t, movedB, "b")

	origA := filepath.Join(tmpDir, "src", "a.txt")
	origB := filepath.Join(tmpDir, "src", "b.txt")

	store := history.NewStore()
	_, err := store.Save([]history.Entry{
		history.NewEntry(origA, movedA),
		history.NewEntry(origB, movedB),
	}, dest)
	require.NoError(t, err)

	signal := &abort.Signal{}
	engine := New(WithAbortSignal(signal))

	// Abort after the first (most recent) entry is restored.
	res := engine.Undo(dest, func(stage string, processed, total int) {
		signal.Set()
	})

	assert.Equal(t, StatusAborted, res.Status)
	assert.True(t, res.Aborted)
	assert.Equal(t, 1, res.Restored)

	// Entries are replayed newest first, so b came back and a did not.
	assert.Equal(t, "b", testutil.ReadFile(t, origB))
	assert.FileExists(t, movedA)
	// The ledger survives so the rest can be undone later.
	assert.FileExists(t, store.Path(dest))
}

func TestUndo_PanickingCallbackDoesNotAbortRun(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "dest")
	moved := filepath.Join(dest, "x.txt")
	testutil.CreateFile(t, moved, "x")

	orig := filepath.Join(tmpDir, "src", "x.txt")

	store := history.NewStore()
	_, err := store.Save([]history.Entry{
		history.NewEntry(orig, moved),
	}, dest)
	require.NoError(t, err)

	var res Result
	require.NotPanics(t, func() {
		res = New().Undo(dest, func(stage string, processed, total int) {
			panic("ui crashed")
		})
	})

	// The run completes normally: file restored, ledger consumed.
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, 1, res.Restored)
	assert.Equal(t, "x", testutil.ReadFile(t, orig))
	assert.NoFileExists(t, store.Path(dest))
}

func TestUndo_ProgressStages(t *testing.T) {
	tmpDir := t.TempDir()
	dest := filepath.Join(tmpDir, "dest")
	moved := filepath.Join(dest, "x.txt")
	testutil.CreateFile(t, moved, "x")

	store := history.NewStore()
	_, err := store.Save([]history.Entry{
		history.NewEntry(filepath.Join(tmpDir, "src", "x.txt"), moved),
	}, dest)
	require.NoError(t, err)

	var stages []string
	New().Undo(dest, func(stage string, processed, total int) {
		stages = append(stages, stage)
		assert.Equal(t, 1, total)
		assert.Equal(t, 1, processed)
	})

	assert.Equal(t, []string{"undoing"}, stages)
}
