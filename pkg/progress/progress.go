// Package progress provides progress-reporting helpers for batch file
// operations. Callbacks are supplied by the surrounding application and
// run synchronously on the calling goroutine; a panicking callback must
// never be allowed to abort the operation that invoked it.
package progress

import "github.com/rs/zerolog"

// FileFunc receives per-file progress from a batch operation. current is
// 1-based; err is non-nil when the file failed.
type FileFunc func(current, total int, path string, err error)

// StageFunc receives workflow stage progress updates. Stage names are
// command-specific and intended for user-facing output.
type StageFunc func(stage string, processed, total int)

// EmitFile calls cb with clamped current/total values, recovering any
// panic raised by the callback and logging it instead. It is a no-op when
// cb is nil or total is non-positive.
func EmitFile(log zerolog.Logger, cb FileFunc, current, total int, path string, err error) {
	if cb == nil || total <= 0 {
		return
	}

	if current < 0 {
		current = 0
	}
	if current > total {
		current = total
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("path", path).Any("panic", r).Msg("progress callback panicked")
		}
	}()

	cb(current, total, path, err)
}

// EmitStage calls cb with a stage label and clamped processed/total
// values, recovering any panic raised by the callback and logging it
// instead. It is a no-op when cb is nil or total is non-positive.
func EmitStage(log zerolog.Logger, cb StageFunc, stage string, processed, total int) {
	if cb == nil || total <= 0 {
		return
	}

	if processed < 0 {
		processed = 0
	}
	if processed > total {
		processed = total
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("stage", stage).Any("panic", r).Msg("progress callback panicked")
		}
	}()

	cb(stage, processed, total)
}
