// Package faultline provides a scoped telemetry ingestion and query core
// for Go.
//
// Faultline is a library — not a service. Import it into your application
// to get queue-decoupled event ingestion and authorization-scoped,
// cursor-paginated reads over an Organization → Project → Stack → Event
// hierarchy.
//
// Key features:
//   - Ingestion gateway with single-pass gzip normalization and
//     fire-and-forget enqueue (accepted only after the broker took it)
//   - Generic ownership-scoped repository: capability-based scope checks,
//     uniform not-found for unauthorized reads, batch write validation
//   - Opaque date cursors with lossless, order-preserving encoding
//   - Optional scope-keyed result caching with TTL and invalidation
//   - Per-project submission rate limiting and HMAC-signed API tokens
//   - Composable store pattern with multiple backends (Mongo, Postgres,
//     Redis, Memory)
//
// Quick start:
//
//	f, err := faultline.New(
//	    faultline.WithStore(memoryStore),
//	    faultline.WithQueue(memoryQueue),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = f.Submit(ctx, ingest.Submission{
//	    Data:      payload,
//	    ProjectID: "proj_01h...",
//	})
//
//	events, err := f.Events().GetByStackID(ctx, stackID, opts)
package faultline
