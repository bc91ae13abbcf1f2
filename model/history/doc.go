// Package history implements the non-linear undo/redo model of the flow
// editor.
//
// History is a tree rather than a stack: undoing and then performing a new
// action starts a new branch next to the old one instead of discarding it.
// A Graph holds every recorded transition keyed by id plus a cursor naming
// the transition whose After state is currently displayed.
//
//	g := history.New(flow.Empty())
//	_, err := g.Append("add node", g.Current().After, next, nil)
//	g.Undo()
//	g.Redo()
//
// A Graph is owned by a single editor session and is not safe for concurrent
// mutation. Traversal helpers (BuildPathTo, SetCursorTo, BranchPoints) never
// fail on unknown ids because they are typically driven by stale UI state.
package history
