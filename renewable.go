package onecache

import (
	"context"
	"time"
)

// BuildFunc produces a fresh value, typically with an upstream call.
type BuildFunc[V any] func(ctx context.Context) (V, error)

// Renewable adapts a build function and a fixed TTL into a Refresher,
// for resources that do not carry an expiry of their own.
//
// Renewable holds no locks, concurrency control is provided by the Store:
// Refresh is only invoked by the current refresh leader under the value
// write lock, and Value is meant to be called from Shared.With.
type Renewable[V any] struct {
	build BuildFunc[V]
	ttl   time.Duration

	value  V
	expiry time.Time
}

// NewRenewable creates a Renewable with a zero expiry, the first Get on a
// store around it triggers a build.
func NewRenewable[V any](ttl time.Duration, build BuildFunc[V]) *Renewable[V] {
	return &Renewable[V]{build: build, ttl: ttl}
}

// Refresh implements Refresher.
func (r *Renewable[V]) Refresh(ctx context.Context) error {
	v, err := r.build(ctx)
	if err != nil {
		return err
	}

	r.value = v
	r.expiry = time.Now().Add(r.ttl)

	return nil
}

// Expiry implements Refresher.
func (r *Renewable[V]) Expiry() time.Time {
	return r.expiry
}

// Value returns the last built value.
func (r *Renewable[V]) Value() V {
	return r.value
}
