package services

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultChallengeSeconds is the countdown shown on every verification
// screen: 2 minutes 27 seconds.
const DefaultChallengeSeconds = 147

// ChallengeTimer is the per-screen countdown/resend state machine:
// Counting(n) ticks down once per second; at zero the timer enters the
// resend-eligible state and fires the expiry callback exactly once. Reset is
// the only way back into Counting.
type ChallengeTimer struct {
	mu        sync.Mutex
	remaining int
	initial   int
	canResend bool
	fired     bool
	onExpire  func()
}

// NewChallengeTimer creates a timer in Counting(initial). A non-positive
// initial falls back to DefaultChallengeSeconds. onExpire may be nil.
func NewChallengeTimer(initial int, onExpire func()) *ChallengeTimer {
	if initial <= 0 {
		initial = DefaultChallengeSeconds
	}
	return &ChallengeTimer{
		remaining: initial,
		initial:   initial,
		onExpire:  onExpire,
	}
}

// Tick advances the countdown by one second. The only self-transition; once
// the countdown reaches zero further ticks are no-ops.
func (t *ChallengeTimer) Tick() {
	t.mu.Lock()
	var expire func()
	if t.remaining > 0 {
		t.remaining--
		if t.remaining == 0 {
			t.canResend = true
			if !t.fired {
				t.fired = true
				expire = t.onExpire
			}
		}
	}
	t.mu.Unlock()

	// Callback runs outside the lock so it may call Reset.
	if expire != nil {
		expire()
	}
}

// Run drives the timer with one-second ticks until the context is cancelled.
// Cancelling the context is the screen-unmount teardown: no orphaned ticks.
func (t *ChallengeTimer) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Reset re-enters Counting(initial) and clears resend eligibility. Callable
// at any time; the expiry callback becomes eligible to fire again.
func (t *ChallengeTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining = t.initial
	t.canResend = false
	t.fired = false
}

// SecondsRemaining reports the current countdown value.
func (t *ChallengeTimer) SecondsRemaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// CanResend reports whether the resend action is unlocked.
func (t *ChallengeTimer) CanResend() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canResend
}

// FormatCountdown renders seconds as M:SS for the verification screen.
func FormatCountdown(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
