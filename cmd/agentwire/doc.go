// Command agentwire is the demo host: it registers the built-in example
// agent classes, exports their type descriptors and serves Prometheus
// metrics for a running container.
package main
