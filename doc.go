// Package flowhistory provides a non-linear undo/redo history for flow
// editors.
//
// Every transition applied to the canvas is recorded as a node of a history
// tree; undo and redo move a cursor along the tree and appending after an
// undo starts a new branch instead of discarding the old one. Graphs are
// persisted through pluggable stores and compressed on a background worker
// once they grow past a size limit.
//
// Host applications interact with the engine via the Service facade:
//
//	srv := flowhistory.New()
//	session := srv.NewSession("flow-1", flow.Empty())
//	_, _ = session.Append("Add node", before, after, nil)
//	session.Undo()
//	_, _ = session.Save(ctx)
//	defer srv.Shutdown(ctx)
//
// For more details see the individual sub-packages.
package flowhistory
