/*
Package observability provides monitoring for the storefront engine.

It turns engine lifecycle events into Prometheus metrics and structured log
lines. Both are exposed as domain.LifecycleHooks and can be combined with
domain.ChainHooks.
*/
package observability
