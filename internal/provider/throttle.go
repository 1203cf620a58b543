package provider

import (
	"context"
	"fmt"
	"sync"
	"time"

	"market-pulse/internal/domain"
)

// Throttle is a token bucket that paces requests against one site.
// A nil *Throttle never blocks.
type Throttle struct {
	mu         sync.Mutex
	tokens     int
	burst      int
	interval   time.Duration
	lastRefill time.Time
}

// NewThrottle allows burst requests at once and one more per interval.
func NewThrottle(burst int, interval time.Duration) *Throttle {
	if burst <= 0 {
		burst = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Throttle{
		tokens:     burst,
		burst:      burst,
		interval:   interval,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a request may be sent. A cancelled ctx is reported as a
// network failure since the request never left.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	for {
		t.mu.Lock()
		t.refill(time.Now())
		if t.tokens > 0 {
			t.tokens--
			t.mu.Unlock()
			return nil
		}
		wait := t.interval - time.Since(t.lastRefill)
		t.mu.Unlock()
		if wait <= 0 {
			wait = time.Millisecond
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("throttled request abandoned: %w: %w", domain.ErrNetwork, ctx.Err())
		case <-timer.C:
		}
	}
}

func (t *Throttle) refill(now time.Time) {
	n := int(now.Sub(t.lastRefill) / t.interval)
	if n <= 0 {
		return
	}
	t.tokens += n
	if t.tokens > t.burst {
		t.tokens = t.burst
	}
	t.lastRefill = t.lastRefill.Add(time.Duration(n) * t.interval)
}
