package onecache

import (
	"context"
	"sync"
	"time"

	"github.com/bool64/ctxd"
	"github.com/bool64/stats"
)

// Refresher is a resource that can re-fetch itself and reports its own expiry.
type Refresher interface {
	// Refresh fetches or recomputes the resource in place.
	// On success the time reported by Expiry must advance.
	Refresh(ctx context.Context) error

	// Expiry returns the time after which the current value is stale.
	// It is only meaningful after construction or a successful Refresh.
	Expiry() time.Time
}

// Config is optional configuration for New.
type Config struct {
	// Name is added to logs and stats.
	Name string

	// WaitTimeout bounds how long Get blocks while another caller is
	// refreshing the value, default 1s.
	WaitTimeout time.Duration

	// Logger collects messages with context, can be nil.
	Logger ctxd.Logger

	// Stats tracks stats, can be nil.
	Stats stats.Tracker
}

// Store caches a single value of T and guarantees at most one Refresh
// in flight at any time.
//
// A *Store is a shared handle, copies of the pointer reference the same
// guarded state. Please use New to create instance.
type Store[T Refresher] struct {
	// valueMu guards value, expiryMu guards expiry. The guards are
	// separate on purpose, matching the behavior of the reference
	// implementation: the refresh leader commits expiry while holding
	// the value write lock, but a reader checking expiry and reading
	// the value does so under two independent critical sections.
	valueMu  sync.RWMutex
	expiryMu sync.RWMutex

	value  T
	expiry time.Time

	// gateMu guards inflight, latch and poisoned.
	// The latch is closed when the current refresh cycle completes,
	// waking all waiters at once.
	gateMu   sync.Mutex
	inflight bool
	latch    chan struct{}
	poisoned bool

	waitTimeout time.Duration
	now         func() time.Time

	config Config
	log    ctxd.Logger
	stat   stats.Tracker
}

// New creates a Store around an already populated value.
//
// The expiry of the value is read immediately to seed the staleness check,
// so a value constructed with a zero expiry is refreshed on first Get.
func New[T Refresher](value T, cfg ...Config) *Store[T] {
	config := Config{}

	if len(cfg) >= 1 {
		config = cfg[0]
	}

	if config.WaitTimeout == 0 {
		config.WaitTimeout = time.Second
	}

	s := &Store[T]{
		value:       value,
		expiry:      value.Expiry(),
		waitTimeout: config.WaitTimeout,
		now:         time.Now,
		config:      config,
	}

	s.log = config.Logger
	if s.log == nil {
		s.log = ctxd.NoOpLogger{}
	}

	s.stat = config.Stats
	if s.stat == nil {
		s.stat = stats.NoOp{}
	}

	return s
}

// WithTimeout overrides the follower wait bound and returns the same store.
func (s *Store[T]) WithTimeout(d time.Duration) *Store[T] {
	s.waitTimeout = d

	return s
}

// Get returns a read handle to the current value, refreshing it first if
// it has expired.
//
// An unexpired value is returned immediately without coordination.
// On expiry exactly one of the concurrent callers invokes Refresh, the
// others wait for it to finish, bounded by Config.WaitTimeout, and then
// receive whatever value the store holds. A Refresh error is returned
// only to the caller that ran the refresh, waiters cannot distinguish a
// failed cycle from a successful one.
func (s *Store[T]) Get(ctx context.Context) (Shared[T], error) {
	// Fast path, shared lock only.
	if !BypassCache(ctx) {
		s.expiryMu.RLock()
		fresh := s.expiry.After(s.now())
		s.expiryMu.RUnlock()

		if fresh {
			s.stat.Add(ctx, MetricHit, 1, "name", s.config.Name)

			return s.shared(), nil
		}
	}

	s.stat.Add(ctx, MetricExpired, 1, "name", s.config.Name)

	// Contending for refresh leadership.
	s.gateMu.Lock()

	if s.poisoned {
		s.gateMu.Unlock()

		return Shared[T]{}, ErrLockCorrupted
	}

	leader := !s.inflight
	if leader {
		s.inflight = true
		s.latch = make(chan struct{})
	}
	s.gateMu.Unlock()

	if leader {
		if err := s.refresh(ctx); err != nil {
			return Shared[T]{}, err
		}
	} else {
		s.log.Debug(ctx, "waiting for refreshed value", "name", s.config.Name)
		s.stat.Add(ctx, MetricWait, 1, "name", s.config.Name)
	}

	// The leader rejoins the waiters to pick up the final value, its own
	// cycle is finished so it only waits if a new cycle started already.
	return s.await(ctx)
}

// refresh runs a refresh cycle as its leader.
//
// The gate is released exactly once whatever the outcome. A panicking
// Refresh poisons the store, all subsequent Get calls fail with
// ErrLockCorrupted, and the panic is re-raised on the leader's goroutine.
func (s *Store[T]) refresh(ctx context.Context) (err error) {
	defer func() {
		rec := recover()

		s.gateMu.Lock()
		s.inflight = false

		if rec != nil {
			s.poisoned = true
		}

		close(s.latch)
		s.gateMu.Unlock()

		if rec != nil {
			s.log.Error(ctx, "refresh terminated abnormally",
				"name", s.config.Name,
				"panic", rec)

			panic(rec)
		}
	}()

	s.log.Debug(ctx, "refreshing expired value", "name", s.config.Name)
	s.stat.Add(ctx, MetricRefresh, 1, "name", s.config.Name)

	s.valueMu.Lock()

	err = s.value.Refresh(ctx)
	if err == nil {
		// Expiry is committed only on success, a failed cycle leaves the
		// store stale so that the next Get starts a new cycle.
		s.expiryMu.Lock()
		s.expiry = s.value.Expiry()
		s.expiryMu.Unlock()
	}

	s.valueMu.Unlock()

	if err != nil {
		s.stat.Add(ctx, MetricFailed, 1, "name", s.config.Name)

		return ctxd.WrapError(ctx, err, "failed to refresh value", "name", s.config.Name)
	}

	return nil
}

// await blocks until no refresh is in flight, re-checking the gate after
// every wake-up, and returns a handle to whatever value is present.
func (s *Store[T]) await(ctx context.Context) (Shared[T], error) {
	timer := time.NewTimer(s.waitTimeout)
	defer timer.Stop()

	for {
		s.gateMu.Lock()

		if s.poisoned {
			s.gateMu.Unlock()

			return Shared[T]{}, ErrLockCorrupted
		}

		inflight := s.inflight
		latch := s.latch
		s.gateMu.Unlock()

		if !inflight {
			return s.shared(), nil
		}

		select {
		case <-latch:
		case <-timer.C:
			s.stat.Add(ctx, MetricWaitTimeout, 1, "name", s.config.Name)

			return Shared[T]{}, ErrWaitTimeout
		case <-ctx.Done():
			return Shared[T]{}, ctxd.WrapError(ctx, ctx.Err(),
				"interrupted while waiting for refresh", "name", s.config.Name)
		}
	}
}

// ExpireNow marks the cached value stale, the next Get starts a refresh.
func (s *Store[T]) ExpireNow() {
	s.expiryMu.Lock()
	s.expiry = s.now()
	s.expiryMu.Unlock()
}

// Expiry returns the tracked expiry of the cached value.
func (s *Store[T]) Expiry() time.Time {
	s.expiryMu.RLock()
	defer s.expiryMu.RUnlock()

	return s.expiry
}

func (s *Store[T]) shared() Shared[T] {
	return Shared[T]{store: s}
}
