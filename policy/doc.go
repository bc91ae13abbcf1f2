// Package policy describes which transient canvas fields are dropped when a
// history graph is prepared for storage.
package policy
