package onecache

import "time"

// Shared is a concurrently readable handle to the cached value.
//
// All handles obtained from the same Store reference the same guarded
// state, a handle stays valid across refresh cycles and observes later
// updates. The zero value of Shared is not usable.
type Shared[T Refresher] struct {
	store *Store[T]
}

// With runs fn with the cached value under a shared lock.
//
// fn must not mutate the value, retain it beyond the call, or call back
// into the store.
func (h Shared[T]) With(fn func(value T)) {
	h.store.valueMu.RLock()
	defer h.store.valueMu.RUnlock()

	fn(h.store.value)
}

// Expiry returns the tracked expiry of the cached value.
func (h Shared[T]) Expiry() time.Time {
	return h.store.Expiry()
}
