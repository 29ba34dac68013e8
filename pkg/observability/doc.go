/*
Package observability provides Prometheus instrumentation for the port editor and
the reference port service.

Metrics.Hooks returns editor lifecycle hooks that count dialog opens and apply
outcomes and observe submit latency. Metrics.Middleware records per-route request
counts for the HTTP server.
*/
package observability
