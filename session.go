package flowhistory

import (
	"context"
	"sync"

	"github.com/viant/flowhistory/internal/clock"
	"github.com/viant/flowhistory/model/flow"
	"github.com/viant/flowhistory/model/history"
	"github.com/viant/flowhistory/progress"
	"github.com/viant/flowhistory/service/dao"
	"github.com/viant/flowhistory/service/diff"
)

// Cursor move kinds reported to metrics.
const (
	moveUndo = "undo"
	moveRedo = "redo"
	moveJump = "jump"
)

// Session owns the history graph of one flow being edited. Calls are
// serialised so a save may snapshot the graph while the editor keeps working.
// Appended states and returned nodes are copies; modifying them does not
// affect the history.
type Session struct {
	flowID   string
	service  *Service
	progress *progress.Progress

	mu       sync.Mutex
	graph    *history.Graph
	onChange func(*history.Node)
}

func newSession(service *Service, flowID string, g *history.Graph) *Session {
	return &Session{
		flowID:   flowID,
		service:  service,
		graph:    g,
		progress: progress.New(flowID, clock.Now()),
	}
}

// FlowID returns the flow the session edits.
func (s *Session) FlowID() string {
	return s.flowID
}

// Append records a transition from before to after and moves the cursor to it.
func (s *Session) Append(label string, before, after *flow.State, metadata map[string]interface{}) (*history.Node, error) {
	s.mu.Lock()
	node, err := s.graph.Append(label, before, after, metadata)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	node = node.Clone()
	cb := s.onChange
	s.mu.Unlock()

	s.service.metrics.Transition()
	s.progress.Update(progress.Delta{Transitions: 1}, clock.Now())
	if cb != nil {
		cb(node)
	}
	return node, nil
}

// Undo moves the cursor to the parent node; nil at the root.
func (s *Session) Undo() *history.Node {
	return s.move(moveUndo, progress.Delta{Undos: 1}, func(g *history.Graph) *history.Node {
		return g.Undo()
	})
}

// Redo moves the cursor to childID, or to the child picked by the redo
// strategy when no id is given; nil when there is nothing to redo.
func (s *Session) Redo(childID ...string) *history.Node {
	return s.move(moveRedo, progress.Delta{Redos: 1}, func(g *history.Graph) *history.Node {
		return g.Redo(childID...)
	})
}

// JumpTo moves the cursor to any node; nil for an unknown id.
func (s *Session) JumpTo(id string) *history.Node {
	return s.move(moveJump, progress.Delta{Jumps: 1}, func(g *history.Graph) *history.Node {
		return g.JumpTo(id)
	})
}

func (s *Session) move(kind string, delta progress.Delta, fn func(g *history.Graph) *history.Node) *history.Node {
	s.mu.Lock()
	node := fn(s.graph)
	if node == nil {
		s.mu.Unlock()
		return nil
	}
	node = node.Clone()
	cb := s.onChange
	s.mu.Unlock()

	s.service.metrics.CursorMove(kind)
	s.progress.Update(delta, clock.Now())
	if cb != nil {
		cb(node)
	}
	return node
}

// Current returns the node at the cursor.
func (s *Session) Current() *history.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Current().Clone()
}

// CanUndo reports whether the cursor has a parent.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.CanUndo()
}

// CanRedo reports whether the cursor has a child.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.CanRedo()
}

// Path returns the transitions leading from the root to the cursor, root
// excluded, in application order.
func (s *Session) Path() []*history.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := history.BuildPathTo(s.graph, s.graph.Cursor)
	ret := make([]*history.Node, len(path))
	for i, node := range path {
		ret[i] = node.Clone()
	}
	return ret
}

// Branches returns the ids of nodes with more than one child.
func (s *Session) Branches() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return history.BranchPoints(s.graph)
}

// Leaves returns the tip of every branch.
func (s *Session) Leaves() []*history.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	leaves := history.Leaves(s.graph)
	ret := make([]*history.Node, len(leaves))
	for i, node := range leaves {
		ret[i] = node.Clone()
	}
	return ret
}

// Snapshot returns a deep copy of the whole graph.
func (s *Session) Snapshot() *history.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Clone()
}

// Save persists a snapshot of the graph. The session stays usable while the
// snapshot is optimized, compressed and stored.
func (s *Session) Save(ctx context.Context) (*dao.Record, error) {
	snapshot := s.Snapshot()
	record, err := s.service.persister.Save(ctx, s.flowID, snapshot)
	if err != nil {
		return nil, err
	}
	s.progress.Update(progress.Delta{Saves: 1}, clock.Now())
	return record, nil
}

// Diff renders the change recorded by node id; an empty id selects the cursor.
func (s *Session) Diff(id string) (string, diff.Stats, error) {
	s.mu.Lock()
	if id == "" {
		id = s.graph.Cursor
	}
	node := s.graph.Node(id).Clone()
	s.mu.Unlock()
	return diff.Entry(node)
}

// OnChange registers a listener receiving the cursor node after every append
// or cursor move. Passing nil disables it; only one listener can be active.
func (s *Session) OnChange(fn func(node *history.Node)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Progress returns the session activity counters.
func (s *Session) Progress() progress.Counters {
	return s.progress.Snapshot()
}
