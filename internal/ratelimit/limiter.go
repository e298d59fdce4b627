// Package ratelimit provides the fixed-window request limiter behind the
// HTTP middleware, with an in-memory default and a redis-backed variant for
// deployments that front more than one instance.
package ratelimit

import "context"

type Limiter interface {
	// Allow reports whether the caller identified by key may proceed within
	// the current window.
	Allow(ctx context.Context, key string) (bool, error)
}
