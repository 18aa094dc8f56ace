// Package schedule defers agent invocations to a future point in time.
//
// The package only accepts a timestamp and hands the invocation back to its
// dispatcher when the time arrives; delivery is best-effort at-most-once.
// Two backends are provided: an in-process timer scheduler and a Redis
// sorted-set scheduler that survives process restarts.
package schedule
