// Package httputil provides HTTP utilities for the level service client.
//
// # Overview
//
//   - [Cache]: File-based response caching with TTL and key namespaces
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores responses in the filesystem (~/.cache/fcblocks/ by
// default). Levels and designs are immutable once published, so a long TTL
// is safe and repeated conversions do not hit the service.
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	designs := cache.Namespace("design:")
//	var doc string
//	if ok, _ := designs.Get("1234", &doc); !ok {
//	    doc = fetch()
//	    designs.Set("1234", doc)
//	}
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError].
// Callers wrap transient failures (network errors, 5xx responses) and leave
// permanent ones (404, malformed input) unwrapped.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetchOnce(ctx)
//	})
package httputil
