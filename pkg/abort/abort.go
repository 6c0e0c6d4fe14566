// Package abort provides a cooperative cancellation flag shared between
// a long-running batch and the code that wants to stop it. Engines poll
// the signal between files, so a set signal stops work at the next file
// boundary rather than mid-operation.
package abort

import "sync/atomic"

// Signal is a one-way abort flag safe for concurrent use. The zero value
// is ready to use and not signaled.
type Signal struct {
	flag atomic.Bool
}

// Set marks the signal as aborted.
func (s *Signal) Set() {
	s.flag.Store(true)
}

// Signaled reports whether the signal has been set.
func (s *Signal) Signaled() bool {
	return s.flag.Load()
}

// Reset clears the signal so the owner can be reused for another run.
func (s *Signal) Reset() {
	s.flag.Store(false)
}
