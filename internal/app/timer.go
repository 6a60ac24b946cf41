package app

import (
	"sync"
	"time"
)

// IntervalTimer invokes a callback on a fixed cadence until stopped. Every
// path that ends a session stops its timer; Stop is idempotent so overlapping
// end paths (completion, abort, restart) cannot double-release.
type IntervalTimer struct {
	stop chan struct{}
	once sync.Once
}

// StartInterval launches the periodic callback. The callback runs on its own
// goroutine and must be safe to call concurrently with session operations.
func StartInterval(every time.Duration, fn func()) *IntervalTimer {
	t := &IntervalTimer{stop: make(chan struct{})}
	ticker := time.NewTicker(every)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fn()
			case <-t.stop:
				return
			}
		}
	}()
	return t
}

// Stop cancels the timer. Calling it again is a no-op.
func (t *IntervalTimer) Stop() {
	t.once.Do(func() {
		close(t.stop)
	})
}
