// Package onecache holds a single expensive-to-produce value and coalesces
// concurrent refreshes of an expired value into one execution.
//
// Features:
//
//  - At most one refresh in flight per store, racing callers share its outcome.
//  - Fresh reads take a shared lock only, they never wait for a refresh.
//  - Follower wait is bounded by a configurable timeout.
//  - Refresh failure surfaces only to the caller that ran the refresh,
//    other callers keep the stale value until a later cycle succeeds.
//  - Allows logging, stats collection.
//  - Propagates context to allow better control of the underlying resource.
package onecache
