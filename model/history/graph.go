package history

import (
	"fmt"

	"github.com/viant/flowhistory/internal/clock"
	"github.com/viant/flowhistory/internal/idgen"
	"github.com/viant/flowhistory/model/flow"
)

// Graph is the undo/redo tree plus the cursor marking the displayed state.
// Nodes are never removed while a graph is live.
type Graph struct {
	Nodes  map[string]*Node `json:"nodes" yaml:"nodes"`
	Cursor string           `json:"cursor" yaml:"cursor"`
	Root   string           `json:"root" yaml:"root"`

	redo RedoStrategy
}

// New creates a graph whose root node captures the initial canvas state.
func New(initial *flow.State, options ...Option) *Graph {
	if initial == nil {
		initial = flow.Empty()
	}
	initial = snapshot(initial)
	g := &Graph{Nodes: make(map[string]*Node)}
	for _, option := range options {
		option(g)
	}
	if g.Root == "" {
		g.Root = idgen.New()
	}
	g.Nodes[g.Root] = &Node{
		ID:          g.Root,
		ChildrenIDs: []string{},
		Label:       RootLabel,
		Before:      initial,
		After:       initial,
		CreatedAt:   clock.Now(),
	}
	g.Cursor = g.Root
	return g
}

// SetRedoStrategy replaces the redo strategy; nil restores the default.
func (g *Graph) SetRedoStrategy(strategy RedoStrategy) {
	g.redo = strategy
}

func (g *Graph) redoStrategy() RedoStrategy {
	if g.redo == nil {
		return MostRecentChild
	}
	return g.redo
}

// Node returns the node with the given id or nil.
func (g *Graph) Node(id string) *Node {
	if g == nil || g.Nodes == nil {
		return nil
	}
	return g.Nodes[id]
}

// Current returns the node at the cursor.
func (g *Graph) Current() *Node {
	return g.Node(g.Cursor)
}

// RootNode returns the root node.
func (g *Graph) RootNode() *Node {
	return g.Node(g.Root)
}

// IsRoot returns true when n is the graph root. A parentless node other than
// the root is corruption, not a second root.
func (g *Graph) IsRoot(n *Node) bool {
	return g != nil && n != nil && n.ID == g.Root
}

// Len returns the number of nodes including the root.
func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}

// Append records a transition as a new child of the cursor and moves the
// cursor onto it. The caller is expected to have applied after to the live
// canvas already; before must match the state at the cursor, otherwise the
// canvas has diverged and ErrInvalidState is returned without touching the
// graph. Only the previous cursor node is modified: it gains one child id.
// The graph stores copies of before, after and metadata.
func (g *Graph) Append(label string, before, after *flow.State, metadata map[string]interface{}) (*Node, error) {
	current := g.Current()
	if current == nil {
		return nil, fmt.Errorf("%w: cursor %q does not exist", ErrInvalidState, g.Cursor)
	}
	if after == nil {
		return nil, fmt.Errorf("%w: transition %q has no resulting state", ErrInvalidState, label)
	}
	if !flow.Equal(before, current.After) {
		return nil, fmt.Errorf("%w: before state of %q does not match cursor %s", ErrInvalidState, label, current.ID)
	}
	id := idgen.New()
	if _, exists := g.Nodes[id]; exists {
		return nil, fmt.Errorf("%w: duplicate node id %s", ErrInvalidState, id)
	}
	node := &Node{
		ID:          id,
		ParentID:    current.ID,
		ChildrenIDs: []string{},
		Label:       label,
		Before:      snapshot(before),
		After:       snapshot(after),
		CreatedAt:   clock.Now(),
		Metadata:    copyMetadata(metadata),
	}
	g.Nodes[id] = node
	current.ChildrenIDs = append(current.ChildrenIDs, id)
	g.Cursor = id
	return node, nil
}

// Undo moves the cursor to the parent of the current node and returns it.
// At the root it is a no-op returning nil.
func (g *Graph) Undo() *Node {
	current := g.Current()
	if current == nil || g.IsRoot(current) {
		return nil
	}
	parent := g.Node(current.ParentID)
	if parent == nil {
		return nil
	}
	g.Cursor = parent.ID
	return parent
}

// Redo moves the cursor to a child of the current node. With an explicit
// childID the child must belong to the cursor; without one the redo strategy
// chooses. Returns nil when there is nothing to redo.
func (g *Graph) Redo(childID ...string) *Node {
	current := g.Current()
	if current == nil || len(current.ChildrenIDs) == 0 {
		return nil
	}
	var target string
	if len(childID) > 0 && childID[0] != "" {
		if !current.HasChild(childID[0]) {
			return nil
		}
		target = childID[0]
	} else {
		target = g.redoStrategy().Select(g, current)
	}
	child := g.Node(target)
	if child == nil {
		return nil
	}
	g.Cursor = child.ID
	return child
}

// JumpTo moves the cursor to any existing node. Unknown ids are a no-op
// returning nil.
func (g *Graph) JumpTo(id string) *Node {
	node := g.Node(id)
	if node == nil {
		return nil
	}
	g.Cursor = id
	return node
}

// CanUndo returns true when the cursor is not at the root and its parent
// exists.
func (g *Graph) CanUndo() bool {
	current := g.Current()
	return current != nil && !g.IsRoot(current) && g.Node(current.ParentID) != nil
}

// CanRedo returns true when the cursor has at least one child.
func (g *Graph) CanRedo() bool {
	current := g.Current()
	return current != nil && len(current.ChildrenIDs) > 0
}

// Clone returns a deep copy sharing no node or snapshot with g.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	ret := &Graph{Nodes: make(map[string]*Node, len(g.Nodes)), Cursor: g.Cursor, Root: g.Root, redo: g.redo}
	for id, node := range g.Nodes {
		ret.Nodes[id] = node.Clone()
	}
	return ret
}

// snapshot detaches a state from the caller. A present structural hash is
// recomputed so it always describes the stored content.
func snapshot(state *flow.State) *flow.State {
	ret := state.Clone()
	if ret != nil && ret.StructuralHash != "" {
		ret.WithHash()
	}
	return ret
}

func copyMetadata(metadata map[string]interface{}) map[string]interface{} {
	if metadata == nil {
		return nil
	}
	ret := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		ret[k] = v
	}
	return ret
}
