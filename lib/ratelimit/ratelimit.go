package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultLimit  = 450
	DefaultWindow = time.Second * 10

	// bucket granularity; coarser than a millisecond so the bucket map
	// stays small over a full window
	bucketSize = time.Millisecond * 100

	pollInterval = time.Millisecond * 100
)

// Limiter admits at most `limit` requests in any trailing interval of
// length `window`. It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[int64]int
	now     func() time.Time
}

type Status struct {
	Current   int
	Limit     int
	ResetTime time.Time
}

func New(limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		limit:   limit,
		window:  window,
		buckets: map[int64]int{},
		now:     time.Now,
	}
}

func bucketKey(t time.Time) int64 {
	return t.UnixMilli() / bucketSize.Milliseconds()
}

// caller must hold l.mu. The bucket holding the instant now-window is
// kept until it has fully aged out, so the count rounds up rather than
// letting a nearly-window-old admission slip out of the trailing sum.
func (l *Limiter) purgeLocked(now time.Time) {
	oldest := bucketKey(now.Add(-l.window))
	for key := range l.buckets {
		if key < oldest {
			delete(l.buckets, key)
		}
	}
}

// caller must hold l.mu
func (l *Limiter) sumLocked() int {
	total := 0
	for _, n := range l.buckets {
		total += n
	}
	return total
}

// Admit blocks until a permit is available, then reserves it. It only
// fails when ctx is cancelled before a permit opens up.
func (l *Limiter) Admit(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.mu.Lock()
		now := l.now()
		l.purgeLocked(now)
		if l.sumLocked() < l.limit {
			l.buckets[bucketKey(now)]++
			l.mu.Unlock()
			return nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Status reports live usage. Read-only: repeated calls without an
// intervening Admit return the same Current.
func (l *Limiter) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.purgeLocked(now)
	return Status{
		Current:   l.sumLocked(),
		Limit:     l.limit,
		ResetTime: now.Add(-l.window),
	}
}
