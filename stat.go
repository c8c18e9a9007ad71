package onecache

// Metrics reported to stats.Tracker with "name" label of store instance.
const (
	// MetricHit is a counter of fast path reads of a fresh value.
	MetricHit = "cache_hit"

	// MetricExpired is a counter of reads that found the value stale.
	MetricExpired = "cache_expired"

	// MetricRefresh is a counter of started refreshes.
	MetricRefresh = "cache_refresh"

	// MetricFailed is a counter of failed refreshes.
	MetricFailed = "cache_refresh_failed"

	// MetricWait is a counter of callers that waited for an in-flight refresh.
	MetricWait = "cache_wait"

	// MetricWaitTimeout is a counter of waits that exceeded the timeout.
	MetricWaitTimeout = "cache_wait_timeout"
)
