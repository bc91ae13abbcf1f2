package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPathTo(t *testing.T) {
	g := New(canvas(0))
	a := apply(t, g, "a", canvas(1))
	b := apply(t, g, "b", canvas(2))

	testCases := []struct {
		name   string
		target string
		expect []*Node
	}{
		{name: "root is excluded", target: g.Root, expect: []*Node{}},
		{name: "inner node", target: a.ID, expect: []*Node{a}},
		{name: "leaf", target: b.ID, expect: []*Node{a, b}},
		{name: "unknown id", target: "nope", expect: []*Node{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, BuildPathTo(g, tc.target))
		})
	}
}

func TestBuildPathTo_Corrupted(t *testing.T) {
	g := New(canvas(0), WithRootID("root"))
	g.Nodes["x"] = &Node{ID: "x", ParentID: "y"}
	g.Nodes["y"] = &Node{ID: "y", ParentID: "x"}

	path := BuildPathTo(g, "x")
	assert.Len(t, path, MaxPathSteps, "cyclic walk stops at the safety ceiling")

	g.Nodes["orphan"] = &Node{ID: "orphan", ParentID: "gone"}
	assert.Len(t, BuildPathTo(g, "orphan"), 1)
}

func TestGraph_StrayParentlessNode(t *testing.T) {
	g := New(canvas(0), WithRootID("root"))
	g.Nodes["stray"] = &Node{ID: "stray", ChildrenIDs: []string{"leaf"}}
	g.Nodes["leaf"] = &Node{ID: "leaf", ParentID: "stray", ChildrenIDs: []string{}}

	path := BuildPathTo(g, "leaf")
	require.Len(t, path, 2)
	assert.Equal(t, "stray", path[0].ID)
	assert.NotEqual(t, g.Root, path[0].ParentID, "path does not start below the root")
	assert.False(t, g.IsRoot(g.Node("stray")))
	assert.True(t, g.IsRoot(g.RootNode()))

	g.JumpTo("leaf")
	assert.True(t, g.CanUndo())
	assert.Equal(t, "stray", g.Undo().ID)
	assert.False(t, g.CanUndo(), "stray node has no parent to return to")
	assert.Nil(t, g.Undo())
	assert.Equal(t, "stray", g.Cursor)
	assert.ErrorIs(t, g.Validate(), ErrInvalidGraph)
}

func TestGraph_Validate(t *testing.T) {
	g := New(canvas(0))
	a := apply(t, g, "a", canvas(1))
	apply(t, g, "b", canvas(2))
	require.NoError(t, g.Validate())

	data, err := json.Marshal(g)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		corrupt func(g *Graph)
	}{
		{name: "missing root", corrupt: func(g *Graph) { delete(g.Nodes, g.Root) }},
		{name: "missing cursor", corrupt: func(g *Graph) { g.Cursor = "gone" }},
		{name: "dangling parent", corrupt: func(g *Graph) { g.Nodes[a.ID].ParentID = "gone" }},
		{name: "unlisted child", corrupt: func(g *Graph) { g.RootNode().ChildrenIDs = nil }},
		{name: "duplicate child", corrupt: func(g *Graph) {
			root := g.RootNode()
			root.ChildrenIDs = append(root.ChildrenIDs, a.ID)
		}},
		{name: "root with parent", corrupt: func(g *Graph) { g.RootNode().ParentID = a.ID }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			restored := &Graph{}
			require.NoError(t, json.Unmarshal(data, restored))
			require.NoError(t, restored.Validate())
			tc.corrupt(restored)
			assert.ErrorIs(t, restored.Validate(), ErrInvalidGraph)
		})
	}
}

func TestGraph_JSONRoundTripKeepsBehaviour(t *testing.T) {
	g := New(canvas(0))
	a := apply(t, g, "a", canvas(1))
	data, err := json.Marshal(g)
	require.NoError(t, err)

	restored := &Graph{}
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, a.ID, restored.Cursor)
	assert.Equal(t, restored.Root, restored.Undo().ID)
	assert.Equal(t, a.ID, restored.Redo().ID, "decoded graphs use the default redo strategy")
}
