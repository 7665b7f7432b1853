package ports

import (
	"context"
	"time"
)

// Cache is an optional, best-effort memoization collaborator keyed by
// name+channel. Reads may return a pre-computed verdict payload; writes are
// fire-and-forget and must never block the resolution critical path. The
// core does not own cache state.
type Cache interface {
	// Get returns the cached payload and true on a fresh hit.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores the payload with a TTL. Errors are swallowed by the
	// implementation; correctness never depends on a write landing.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
