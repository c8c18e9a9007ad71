package onecache

import "context"

type bypassCtxKey struct{}

// WithBypassCache returns context with cached value bypassed.
//
// With such context Store.Get treats the value as expired and triggers
// a refresh regardless of the tracked expiry.
func WithBypassCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassCtxKey{}, true)
}

// BypassCache returns true if cached value is bypassed in context.
func BypassCache(ctx context.Context) bool {
	_, ok := ctx.Value(bypassCtxKey{}).(bool)

	return ok
}
