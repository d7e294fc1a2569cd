package terminal

import (
	"sync"
	"time"
)

// resizeInterval is the minimum gap between resize notifications while a
// window is being dragged.
const resizeInterval = 16 * time.Millisecond

// throttle ensures a minimum interval between successive operations.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

// wait blocks until the interval since the previous call has passed. It
// returns false without waiting the full interval if done closes first.
func (t *throttle) wait(done <-chan struct{}) bool {
	if t == nil || t.interval <= 0 {
		return true
	}
	for {
		t.mu.Lock()
		wait := time.Until(t.next)
		if wait <= 0 {
			t.next = time.Now().Add(t.interval)
			t.mu.Unlock()
			return true
		}
		t.mu.Unlock()
		timer := time.NewTimer(min(wait, t.interval))
		select {
		case <-done:
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}
