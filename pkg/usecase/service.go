// Package usecase provides application-level orchestration: collecting
// files from watched folders, driving the moving engine, persisting
// history and reversing batches.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/0ui-labs/folder-extractor-sub000/pkg/abort"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/aiclassify"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/classifier"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/collector"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/config"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/hasher"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/history"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/mover"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/progress"
	"github.com/0ui-labs/folder-extractor-sub000/pkg/undo"
)

// OperationStats tracks per-run counters and timing. The begin/end scope
// guard fills StartedAt/FinishedAt and the aborted flag on every exit
// path.
type OperationStats struct {
	Processed  int
	Moved      int
	Skipped    int
	Errors     int
	StartedAt  time.Time
	FinishedAt time.Time
	Aborted    bool
}

// Duration returns the wall-clock duration of the operation.
func (s OperationStats) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Options configures a Service.
type Options struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Signal     *abort.Signal
	Classifier aiclassify.Classifier // optional, used by RunClassify
}

// Service orchestrates the move, classify and undo workflows.
type Service struct {
	cfg    *config.Config
	log    zerolog.Logger
	signal *abort.Signal
	ai     aiclassify.Classifier
	mover  *mover.Mover
	engine *undo.Engine
	files  *collector.Collector
}

// New creates a Service. A nil config falls back to defaults; a nil
// signal gets a private one.
func New(opts Options) *Service {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	signal := opts.Signal
	if signal == nil {
		signal = &abort.Signal{}
	}

	h := hasher.New(hasher.WithWorkers(cfg.Workers))
	store := history.NewStore()

	return &Service{
		cfg:    cfg,
		log:    opts.Logger,
		signal: signal,
		ai:     opts.Classifier,
		mover: mover.New(
			mover.WithHasher(h),
			mover.WithHistoryStore(store),
			mover.WithAbortSignal(signal),
			mover.WithLogger(opts.Logger),
		),
		engine: undo.New(
			undo.WithHistoryStore(store),
			undo.WithAbortSignal(signal),
			undo.WithLogger(opts.Logger),
		),
		files: collector.New(collector.Options{
			Include:    cfg.Rules.Include,
			Exclude:    cfg.Rules.Exclude,
			SkipFiles:  append([]string{history.FileName}, cfg.Rules.SkipFiles...),
			SkipDirs:   cfg.Rules.SkipDirs,
			SkipHidden: cfg.Rules.SkipHidden,
		}),
	}
}

// Abort sets the shared abort signal; the running workflow observes it
// within one file's processing time.
func (s *Service) Abort() {
	s.signal.Set()
}

// beginOperation starts stats tracking and returns the end-of-operation
// guard. Call it with defer so timestamps and the aborted flag are
// recorded on every exit path.
func (s *Service) beginOperation(name string, stats *OperationStats) func() {
	stats.StartedAt = time.Now().UTC()
	s.log.Info().Str("operation", name).Msg("operation started")

	return func() {
		stats.FinishedAt = time.Now().UTC()
		stats.Aborted = s.signal.Signaled()
		s.log.Info().
			Str("operation", name).
			Dur("duration", stats.Duration()).
			Int("moved", stats.Moved).
			Int("errors", stats.Errors).
			Bool("aborted", stats.Aborted).
			Msg("operation finished")
	}
}

// MoveRequest contains inputs for the move workflow. Sources may be
// directories (collected under the configured filter rules) or single
// files.
type MoveRequest struct {
	Sources     []string
	Destination string
	Sorted      bool
	DryRun      bool
	OnProgress  progress.StageFunc
}

// MoveExecution contains move workflow outputs.
type MoveExecution struct {
	Destination string
	FileCount   int
	Result      mover.Result
	Stats       OperationStats
}

// RunMove collects files from the request sources and moves them into the
// destination, flat or sorted into type folders.
func (s *Service) RunMove(req MoveRequest) (MoveExecution, error) {
	execution := MoveExecution{Destination: req.Destination}
	defer s.beginOperation("move", &execution.Stats)()

	paths, err := s.collectSources(req.Sources)
	if err != nil {
		return execution, err
	}
	execution.FileCount = len(paths)

	if len(paths) == 0 {
		return execution, nil
	}

	opts := mover.Options{
		DryRun:      req.DryRun,
		Deduplicate: s.cfg.Dedup.SameName,
		GlobalDedup: s.cfg.Dedup.Global,
		OnProgress: func(current, total int, path string, err error) {
			progress.EmitStage(s.log, req.OnProgress, "moving", current, total)
		},
	}

	var result mover.Result
	if req.Sorted {
		result, err = s.mover.MoveFilesSorted(paths, req.Destination, opts)
	} else {
		result, err = s.mover.MoveFiles(paths, req.Destination, opts)
	}

	execution.Result = result
	execution.Stats.Processed = len(paths)
	execution.Stats.Moved = result.Moved
	execution.Stats.Skipped = result.ContentDuplicates + result.GlobalDuplicates
	execution.Stats.Errors = result.Errors

	if err != nil {
		return execution, fmt.Errorf("move batch: %w", err)
	}

	return execution, nil
}

// ClassifyRequest contains inputs for the AI classify-and-file workflow.
type ClassifyRequest struct {
	Sources     []string
	Destination string
	DryRun      bool
	OnProgress  progress.StageFunc
}

// ClassifyExecution contains classify workflow outputs. Results holds one
// engine result per label folder, each with its own ledger.
type ClassifyExecution struct {
	Destination string
	FileCount   int
	Labels      map[string][]string // label -> source files
	Results     map[string]mover.Result
	Stats       OperationStats
}

// RunClassify labels each collected file (via the AI classifier when
// available, otherwise by extension) and files it into
// destination/<label>/. Classification failures fall back to the
// extension classifier, never fail the file.
func (s *Service) RunClassify(ctx context.Context, req ClassifyRequest) (ClassifyExecution, error) {
	execution := ClassifyExecution{
		Destination: req.Destination,
		Labels:      make(map[string][]string),
		Results:     make(map[string]mover.Result),
	}
	defer s.beginOperation("classify", &execution.Stats)()

	paths, err := s.collectSources(req.Sources)
	if err != nil {
		return execution, err
	}
	execution.FileCount = len(paths)

	for i, path := range paths {
		if s.signal.Signaled() {
			break
		}

		label := s.labelFor(ctx, path)
		execution.Labels[label] = append(execution.Labels[label], path)

		progress.EmitStage(s.log, req.OnProgress, "classifying", i+1, len(paths))
	}

	opts := mover.Options{
		DryRun:      req.DryRun,
		Deduplicate: s.cfg.Dedup.SameName,
		GlobalDedup: s.cfg.Dedup.Global,
	}

	for label, group := range execution.Labels {
		result, moveErr := s.mover.MoveFiles(group, filepath.Join(req.Destination, label), opts)
		execution.Results[label] = result

		execution.Stats.Processed += len(group)
		execution.Stats.Moved += result.Moved
		execution.Stats.Skipped += result.ContentDuplicates + result.GlobalDuplicates
		execution.Stats.Errors += result.Errors

		if moveErr != nil {
			return execution, fmt.Errorf("move %s batch: %w", label, moveErr)
		}
	}

	return execution, nil
}

// labelFor picks the folder label for a file: the AI classifier when
// configured, with the extension classifier as fallback on any failure.
func (s *Service) labelFor(ctx context.Context, path string) string {
	name := filepath.Base(path)

	if s.ai == nil {
		return classifier.TypeFolder(name)
	}

	label, err := s.ai.Classify(ctx, name, aiclassify.ReadSnippet(path))
	if err != nil {
		s.log.Warn().Err(err).Str("file", name).Msg("AI classification failed, using extension")
		return classifier.TypeFolder(name)
	}

	return label
}

// UndoRequest contains inputs for the undo workflow.
type UndoRequest struct {
	Destination string
	OnProgress  progress.StageFunc
}

// UndoExecution contains undo workflow outputs.
type UndoExecution struct {
	Destination string
	Result      undo.Result
	Stats       OperationStats
}

// RunUndo reverses the ledger recorded in the request destination.
func (s *Service) RunUndo(req UndoRequest) (UndoExecution, error) {
	execution := UndoExecution{Destination: req.Destination}
	defer s.beginOperation("undo", &execution.Stats)()

	if _, err := os.Stat(req.Destination); err != nil {
		return execution, fmt.Errorf("cannot access directory: %w", err)
	}

	result := s.engine.Undo(req.Destination, req.OnProgress)

	execution.Result = result
	execution.Stats.Processed = result.Restored + result.Errors
	execution.Stats.Moved = result.Restored
	execution.Stats.Errors = result.Errors

	return execution, nil
}

// collectSources expands the request sources: directories are collected
// under the configured filter rules, plain files pass through.
func (s *Service) collectSources(sources []string) ([]string, error) {
	var paths []string

	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("cannot access source %s: %w", src, err)
		}

		if !info.IsDir() {
			paths = append(paths, src)
			continue
		}

		dirPaths, err := s.files.Paths(src)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", src, err)
		}
		paths = append(paths, dirPaths...)
	}

	return paths, nil
}
