// Package model contains the in-memory representation of canvas snapshots
// (the flow sub-package) and of the undo/redo history tree built from them
// (the history sub-package).
package model
