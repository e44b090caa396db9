/*
Package observability provides tools for monitoring the Turing engine.

It includes Prometheus metrics fed by lifecycle hooks, debug hooks that trace
every step through slog, and a helper to fan out several hook sets to a single
engine.
*/
package observability
