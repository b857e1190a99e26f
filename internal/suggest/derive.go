package suggest

import (
	"context"
	"sync"
	"time"
)

// ShouldFetch reports whether the input warrants a new suggestion fetch given
// the key of the last fetch, and returns the input's key. An input with no
// signal at all (nothing filled in) never fetches.
func ShouldFetch(input Input, lastKey string) (bool, string) {
	key := Key(input)
	if input.EducationLevel == "" &&
		len(input.Interests) == 0 &&
		len(input.Strengths) == 0 &&
		len(input.WorkPreferences) == 0 &&
		input.SelectedField == "" {
		return false, key
	}
	return key != lastKey, key
}

// Debouncer delays suggestion fetches while the user is still typing: each
// Trigger resets the timer, and only the last input within the window fires.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given settle delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the settle delay, cancelling any pending
// trigger. fn runs on the timer goroutine unless ctx is cancelled first.
func (d *Debouncer) Trigger(ctx context.Context, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if ctx.Err() != nil {
			return
		}
		fn()
	})
}

// Stop cancels any pending trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
