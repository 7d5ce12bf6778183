package ratelimit

import (
	"context"
	"time"
)

// FixedWindow implements a fixed-window rate limiter: a counter per key that
// resets when its window expires. Cheap to store and good enough for form
// submission endpoints where occasional boundary bursts are acceptable.
type FixedWindow struct {
	store  Store
	limit  int
	window time.Duration
}

// NewFixedWindow creates a new fixed window rate limiter.
func NewFixedWindow(store Store, limit int, window time.Duration) (*FixedWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	return &FixedWindow{
		store:  store,
		limit:  limit,
		window: window,
	}, nil
}

// Allow checks if a single request is allowed for the given key, consuming
// one slot when it is.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	current, ttl, err := fw.store.IncrementAndGet(ctx, key, fw.window)
	if err != nil {
		return nil, err
	}

	return fw.result(current, ttl), nil
}

// Status returns the current rate limit status without consuming a slot.
func (fw *FixedWindow) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	current, ttl, err := fw.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Status does not consume, so a full window still admits one more.
	res := fw.result(current, ttl)
	res.Allowed = current < int64(fw.limit)
	return res, nil
}

// Reset resets the rate limit for the given key.
func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}

	return fw.store.Delete(ctx, key)
}

func (fw *FixedWindow) result(current int64, ttl time.Duration) *Result {
	if ttl <= 0 {
		ttl = fw.window
	}

	remaining := fw.limit - int(current)

	return &Result{
		Allowed:   current <= int64(fw.limit),
		Limit:     fw.limit,
		Remaining: max(0, remaining),
		ResetAt:   time.Now().Add(ttl),
	}
}
