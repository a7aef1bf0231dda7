// Package debounce provides a per-channel coalescing timer utility.
//
// A Scheduler owns a set of named channels. Scheduling work on a channel that
// already has a pending invocation cancels the pending one and re-arms the
// timer, so only the most recent of many rapid triggers executes. The package
// carries no business knowledge; stages use it to rate-limit remote calls
// driven by keystroke-frequency input.
package debounce

import (
	"sync"
	"time"
)

// Scheduler coalesces rapid successive triggers into a single delayed
// invocation per logical channel.
//
// Guarantees:
//   - At most one pending timer exists per channel.
//   - Scheduling again on the same channel before expiry strictly postpones
//     execution; invocations are never queued.
//   - The function that eventually runs is the one passed to the latest
//     Schedule call on that channel.
//
// Scheduler is safe for concurrent use.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

// NewScheduler creates a Scheduler with no pending work.
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms (or re-arms) the timer for the given channel. When the delay
// elapses without another Schedule call on the same channel, fn runs exactly
// once on a timer goroutine. A nil fn or a stopped scheduler is a no-op.
func (s *Scheduler) Schedule(channel string, delay time.Duration, fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if pending, ok := s.timers[channel]; ok {
		pending.Stop()
	}

	s.timers[channel] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, channel)
		stopped := s.stopped
		s.mu.Unlock()

		if !stopped {
			fn()
		}
	})
}

// Cancel drops any pending invocation on the given channel.
func (s *Scheduler) Cancel(channel string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pending, ok := s.timers[channel]; ok {
		pending.Stop()
		delete(s.timers, channel)
	}
}

// Stop cancels all pending invocations and rejects further scheduling.
// Used on session teardown so no timer fires into released state.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for channel, pending := range s.timers {
		pending.Stop()
		delete(s.timers, channel)
	}
}
