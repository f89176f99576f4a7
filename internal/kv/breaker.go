package kv

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerStore wraps another Store with a circuit breaker so a dead
// backend fails fast instead of holding every request on a timeout.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[[]byte]
}

func NewBreakerStore(next Store) *BreakerStore {
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "kv-store",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing key is a valid answer, not a backend failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})
	return &BreakerStore{next: next, cb: cb}
}

func (b *BreakerStore) Get(ctx context.Context, key string) ([]byte, error) {
	return b.cb.Execute(func() ([]byte, error) {
		return b.next.Get(ctx, key)
	})
}

func (b *BreakerStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Set(ctx, key, value, ttl)
	})
	return err
}

func (b *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.Delete(ctx, key)
	})
	return err
}

func (b *BreakerStore) SetAndDelete(ctx context.Context, setKey string, value []byte, ttl time.Duration, delKey string) error {
	_, err := b.cb.Execute(func() ([]byte, error) {
		return nil, b.next.SetAndDelete(ctx, setKey, value, ttl, delKey)
	})
	return err
}
