package slotstore

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Store and throttles its byte throughput with a shared
// token-bucket limiter. Useful in front of the cloud backends to stay under
// provisioned request budgets. Semantics of the inner store are unchanged.
type RateLimited struct {
	inner   Store
	limiter *rate.Limiter
}

// NewRateLimited creates a RateLimited store allowing bytesPerSec of
// combined read and write traffic.
func NewRateLimited(inner Store, bytesPerSec float64) *RateLimited {
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), int(bytesPerSec)),
	}
}

func (s *RateLimited) wait(ctx context.Context, n int) error {
	if n <= 0 {
		n = 1
	}
	if n > s.limiter.Burst() {
		n = s.limiter.Burst()
	}
	return s.limiter.WaitN(ctx, n)
}

// Read implements Store.
func (s *RateLimited) Read(ctx context.Context, domain Domain, key Key) ([]byte, error) {
	if err := s.wait(ctx, UnitSize); err != nil {
		return nil, err
	}
	return s.inner.Read(ctx, domain, key)
}

// Write implements Store.
func (s *RateLimited) Write(ctx context.Context, domain Domain, key Key, data []byte) error {
	if err := s.wait(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Write(ctx, domain, key, data)
}

// ReadAt implements Store.
func (s *RateLimited) ReadAt(ctx context.Context, domain Domain, key Key, off, n int) ([]byte, error) {
	if err := s.wait(ctx, n); err != nil {
		return nil, err
	}
	return s.inner.ReadAt(ctx, domain, key, off, n)
}

// WriteAt implements Store.
func (s *RateLimited) WriteAt(ctx context.Context, domain Domain, key Key, off int, data []byte) error {
	if err := s.wait(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.WriteAt(ctx, domain, key, off, data)
}
