// Package resource bounds the resources a sequence server spends on its
// storage backends.
//
//   - Memory: block caches reserve bytes before admitting an entry
//     (non-blocking, fail-fast).
//   - Fetch concurrency: cache fills and ranged reads against remote
//     stores hold a slot while in flight.
//   - IO: an optional token bucket caps backend read throughput.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:     512 << 20,
//	    MaxConcurrentFetches: 8,
//	})
//
//	if err := rc.AcquireFetch(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseFetch()
//
// All methods are safe for concurrent use, and a nil *Controller is a
// valid controller without limits.
package resource
