package onecache

// SentinelError is an error.
type SentinelError string

const (
	// ErrWaitTimeout indicates a caller gave up waiting for an in-flight refresh.
	ErrWaitTimeout = SentinelError("timeout while waiting for refresh")

	// ErrLockCorrupted indicates shared state was left inconsistent
	// by a refresh that terminated abnormally.
	ErrLockCorrupted = SentinelError("corrupted lock")

	// ErrNothingToInvalidate indicates no stores were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}
