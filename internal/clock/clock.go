// Package clock wraps time.Now so history timestamps can be pinned in tests.
package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc; timestamps are always UTC.
func Now() time.Time { return NowFunc().UTC() }

// Fixed returns a NowFunc replacement that starts at t and advances by step
// on every call, so consecutive history nodes get distinct creation times.
func Fixed(t time.Time, step time.Duration) func() time.Time {
	current := t.Add(-step)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}
