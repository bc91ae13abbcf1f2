// Package tracing wraps OpenTelemetry so that the history engine can emit
// spans around compression and persistence without every package importing
// the upstream SDK. Without an installed provider all spans are no-ops.
package tracing
