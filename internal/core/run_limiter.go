package core

// run_limiter.go serialises validation runs.
//
// A run reads a whole workbook into memory, so the server admits one at a
// time. Requests arriving while a run is active wait up to maxWait for the
// slot, then fail with ErrRunInProgress.
//
// WaitForDrain blocks until the active run completes and is used during
// graceful shutdown.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRunInProgress is returned when the run slot stays occupied for the whole
// wait. Clients should retry after a short delay.
var ErrRunInProgress = errors.New("a validation run is in progress, please try again later")

// DefaultMaxWaitTime is how long to wait for the slot before rejecting.
const DefaultMaxWaitTime = 30 * time.Second

// RunLimiter admits one validation run at a time.
type RunLimiter struct {
	slot    chan struct{}
	maxWait time.Duration

	mu     sync.RWMutex
	active bool
	runs   int64
}

// NewRunLimiter creates a limiter whose waiters give up after maxWait.
func NewRunLimiter(maxWait time.Duration) *RunLimiter {
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &RunLimiter{
		slot:    make(chan struct{}, 1),
		maxWait: maxWait,
	}
}

// Acquire waits for the run slot.
// Returns nil on success, ErrRunInProgress if the wait expires.
// The caller MUST call Release() when the run completes (use defer).
func (l *RunLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.slot <- struct{}{}:
		l.markActive()
		return nil

	case <-waitCtx.Done():
		// Distinguish caller cancellation from our own timeout
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrRunInProgress
	}
}

func (l *RunLimiter) markActive() {
	l.mu.Lock()
	l.active = true
	l.runs++
	l.mu.Unlock()
}

// Release frees the slot.
// Must be called exactly once for each successful Acquire.
func (l *RunLimiter) Release() {
	l.mu.Lock()
	l.active = false
	l.mu.Unlock()

	<-l.slot
}

// Active reports whether a run holds the slot.
func (l *RunLimiter) Active() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until no run is active or ctx is cancelled.
func (l *RunLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if !l.Active() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunLimiterStatus is a snapshot of the limiter's state.
type RunLimiterStatus struct {
	Active    bool  `json:"active"`
	TotalRuns int64 `json:"total_runs"`
}

// Status returns the current limiter state for monitoring.
func (l *RunLimiter) Status() RunLimiterStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return RunLimiterStatus{Active: l.active, TotalRuns: l.runs}
}
