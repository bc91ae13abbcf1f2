// Package idgen generates identifiers for history nodes and compression
// requests. It lives under `internal` so that callers treat identifiers as
// opaque strings and tests can swap the generator for a deterministic one.
package idgen
