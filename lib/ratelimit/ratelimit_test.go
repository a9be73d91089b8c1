package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fake clock so window math is deterministic
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(limit int, window time.Duration) (*Limiter, *clock) {
	c := &clock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	l := New(limit, window)
	l.now = c.Now
	return l, c
}

func TestAdmitWithinLimit(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(5, time.Second*10)

	for i := 0; i < 5; i++ {
		err := l.Admit(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, 5, l.Status().Current)
}

func TestAdmitBlocksAtLimit(t *testing.T) {
	l, _ := newTestLimiter(2, time.Second*10)

	require.NoError(t, l.Admit(context.Background()))
	require.NoError(t, l.Admit(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*250)
	defer cancel()
	err := l.Admit(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWindowExpiryReadmits(t *testing.T) {
	ctx := context.Background()
	l, c := newTestLimiter(3, time.Second*10)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Admit(ctx))
	}
	require.Equal(t, 3, l.Status().Current)

	c.Advance(time.Second*10 + time.Millisecond*200)
	require.Equal(t, 0, l.Status().Current)
	require.NoError(t, l.Admit(ctx))
}

func TestSlidingWindowNeverExceedsLimit(t *testing.T) {
	ctx := context.Background()
	l, c := newTestLimiter(10, time.Second*10)

	// fill half the window, slide forward, then verify the partial
	// expiry still caps admissions at the limit
	for i := 0; i < 6; i++ {
		require.NoError(t, l.Admit(ctx))
		c.Advance(time.Millisecond * 500)
	}
	c.Advance(time.Second * 5)
	for i := 0; i < 4; i++ {
		require.NoError(t, l.Admit(ctx))
	}

	require.Equal(t, 10, l.Status().Current)
	blocked, cancel := context.WithTimeout(context.Background(), time.Millisecond*250)
	defer cancel()
	require.Error(t, l.Admit(blocked))

	// the oldest admissions fall out, the newest remain
	c.Advance(time.Second * 5)
	require.Equal(t, 4, l.Status().Current)
}

func TestAdmissionCountedForFullWindow(t *testing.T) {
	ctx := context.Background()
	l, c := newTestLimiter(1, time.Second*10)

	c.Advance(time.Millisecond * 50)
	require.NoError(t, l.Admit(ctx))

	// 9.999s later the admission is still inside the trailing window
	// and must keep the limiter closed
	c.Advance(time.Millisecond * 9999)
	require.Equal(t, 1, l.Status().Current)

	blocked, cancel := context.WithTimeout(context.Background(), time.Millisecond*250)
	defer cancel()
	require.ErrorIs(t, l.Admit(blocked), context.DeadlineExceeded)

	// once its bucket has fully aged out the permit frees up
	c.Advance(time.Millisecond * 101)
	require.Equal(t, 0, l.Status().Current)
	require.NoError(t, l.Admit(ctx))
}

func TestStatusIdempotent(t *testing.T) {
	l, _ := newTestLimiter(5, time.Second*10)
	require.NoError(t, l.Admit(context.Background()))

	first := l.Status()
	second := l.Status()
	require.Equal(t, first.Current, second.Current)
	require.Equal(t, first.Limit, second.Limit)
}

func TestConcurrentAdmit(t *testing.T) {
	l, _ := newTestLimiter(100, time.Second*10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Admit(context.Background())
		}()
	}
	wg.Wait()

	require.Equal(t, 50, l.Status().Current)
}

func TestDefaults(t *testing.T) {
	l := New(0, 0)
	s := l.Status()
	require.Equal(t, DefaultLimit, s.Limit)
}
