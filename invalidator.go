package onecache

import (
	"fmt"
	"sync"
	"time"
)

// Invalidator is a registry of store expiration triggers.
type Invalidator struct {
	sync.Mutex

	// SkipInterval defines minimal duration between two invalidations (flood protection).
	SkipInterval time.Duration

	// Callbacks contains a list of functions to call on invalidate.
	Callbacks []func()

	lastRun time.Time
}

// Attach registers a store to be expired on Invalidate.
func Attach[T Refresher](i *Invalidator, s *Store[T]) {
	i.Lock()
	defer i.Unlock()

	i.Callbacks = append(i.Callbacks, s.ExpireNow)
}

// Invalidate marks attached stores stale.
func (i *Invalidator) Invalidate() error {
	if i.Callbacks == nil {
		return ErrNothingToInvalidate
	}

	i.Lock()
	defer i.Unlock()

	if i.SkipInterval == 0 {
		i.SkipInterval = 15 * time.Second
	}

	if time.Since(i.lastRun) < i.SkipInterval {
		return fmt.Errorf("%w at %s, %s did not pass",
			ErrAlreadyInvalidated, i.lastRun.String(), i.SkipInterval.String())
	}

	i.lastRun = time.Now()
	for _, cb := range i.Callbacks {
		cb()
	}

	return nil
}
