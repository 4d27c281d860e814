/*
Package observability turns engine lifecycle events into logs and Prometheus metrics.

Hooks from several sources can be merged with Combine and passed to the engine
through runtime.WithLifecycleHooks.
*/
package observability
