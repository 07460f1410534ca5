// Package ratelimit enforces the per-client write cooldowns. The limiter is a
// fixed window keyed by a hashed client identity plus an action discriminator,
// so posting and commenting throttle independently.
package ratelimit

import (
	"context"
	"time"
)

// MinTTL is the expiration floor written to the backing store. The reference
// key-value store refuses very short TTLs, so the effective window is
// max(cooldown, MinTTL).
const MinTTL = 60 * time.Second

// Limiter grants at most one acquisition per key per cooldown window.
type Limiter interface {
	// TryAcquire returns true when the caller may proceed. A denied call does
	// not extend the existing window.
	TryAcquire(ctx context.Context, key string, cooldown time.Duration) (bool, error)
}

// Noop always grants. Used when no key-value store is configured: the board
// degrades open, trading abuse-resistance for availability.
type Noop struct{}

func (Noop) TryAcquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}
