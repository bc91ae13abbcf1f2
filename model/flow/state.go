package flow

import (
	"encoding/json"
	"fmt"
)

type (
	// Position is a node's canvas coordinate.
	Position struct {
		X float64 `json:"x" yaml:"x"`
		Y float64 `json:"y" yaml:"y"`
	}

	// Node is a single canvas node. Selected, Dragging, Width and Height are
	// transient canvas fields; they never take part in structural equality.
	Node struct {
		ID       string                 `json:"id" yaml:"id"`
		Type     string                 `json:"type,omitempty" yaml:"type,omitempty"`
		Position Position               `json:"position" yaml:"position"`
		Data     map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
		Selected bool                   `json:"selected,omitempty" yaml:"selected,omitempty"`
		Dragging bool                   `json:"dragging,omitempty" yaml:"dragging,omitempty"`
		Width    *float64               `json:"width,omitempty" yaml:"width,omitempty"`
		Height   *float64               `json:"height,omitempty" yaml:"height,omitempty"`
	}

	// Edge connects a source handle to a target handle.
	Edge struct {
		ID           string                 `json:"id" yaml:"id"`
		Source       string                 `json:"source" yaml:"source"`
		SourceHandle string                 `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
		Target       string                 `json:"target" yaml:"target"`
		TargetHandle string                 `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
		Type         string                 `json:"type,omitempty" yaml:"type,omitempty"`
		Data         map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	}

	// Viewport is the pan/zoom state.
	Viewport struct {
		X    float64 `json:"x" yaml:"x"`
		Y    float64 `json:"y" yaml:"y"`
		Zoom float64 `json:"zoom" yaml:"zoom"`
	}

	// State is a snapshot of the canvas.
	State struct {
		Nodes          []*Node   `json:"nodes" yaml:"nodes"`
		Edges          []*Edge   `json:"edges" yaml:"edges"`
		Viewport       *Viewport `json:"viewport,omitempty" yaml:"viewport,omitempty"`
		StructuralHash string    `json:"structuralHash,omitempty" yaml:"structuralHash,omitempty"`
	}
)

// NewState returns a snapshot of the supplied nodes and edges with its
// structural hash already computed.
func NewState(nodes []*Node, edges []*Edge) *State {
	if nodes == nil {
		nodes = []*Node{}
	}
	if edges == nil {
		edges = []*Edge{}
	}
	return (&State{Nodes: nodes, Edges: edges}).WithHash()
}

// Empty returns an empty canvas snapshot.
func Empty() *State {
	return NewState(nil, nil)
}

// Node returns the node with the given id or nil.
func (s *State) Node(id string) *Node {
	if s == nil {
		return nil
	}
	for _, n := range s.Nodes {
		if n != nil && n.ID == id {
			return n
		}
	}
	return nil
}

// Edge returns the edge with the given id or nil.
func (s *State) Edge(id string) *Edge {
	if s == nil {
		return nil
	}
	for _, e := range s.Edges {
		if e != nil && e.ID == id {
			return e
		}
	}
	return nil
}

// Clone returns a deep copy of the snapshot.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		// every field is JSON-native; a failure here means a caller stored an
		// unsupported value inside Data
		panic(fmt.Sprintf("flow: clone state: %v", err))
	}
	ret := &State{}
	if err = json.Unmarshal(data, ret); err != nil {
		panic(fmt.Sprintf("flow: clone state: %v", err))
	}
	return ret
}
