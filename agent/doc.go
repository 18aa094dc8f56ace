// Package agent turns declared agent classes into invocable, addressable
// units: it registers class declarations, derives their wire schemas, resolves
// live instances with deterministic ids and dispatches wire-encoded
// invocations onto them.
//
// Registration is a one-time startup phase; after it completes the registry
// is read-only and invocations may run concurrently. The registry is a plain
// value owned by the container bootstrap and passed explicitly - there is no
// process-wide singleton.
package agent
