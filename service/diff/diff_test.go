package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flowhistory/model/flow"
	"github.com/viant/flowhistory/model/history"
)

func TestEntry(t *testing.T) {
	initial := flow.NewState([]*flow.Node{{ID: "a", Position: flow.Position{X: 0, Y: 0}}}, nil)
	g := history.New(initial)

	moved := flow.NewState([]*flow.Node{{ID: "a", Position: flow.Position{X: 40, Y: 0}}}, nil)
	node, err := g.Append("Move node a", initial, moved, nil)
	require.NoError(t, err)

	connected := flow.NewState(
		[]*flow.Node{{ID: "a", Position: flow.Position{X: 40, Y: 0}}, {ID: "b", Position: flow.Position{X: 90, Y: 0}}},
		[]*flow.Edge{{ID: "a-b", Source: "a", Target: "b"}},
	)
	grown, err := g.Append("Connect a to b", moved, connected, nil)
	require.NoError(t, err)

	var testCases = []struct {
		description string
		node        *history.Node
		empty       bool
		contains    []string
	}{
		{description: "root has no change", node: g.RootNode(), empty: true},
		{description: "move", node: node, contains: []string{"--- a/Move node a", "+++ b/Move node a", `+        "x": 40`}},
		{description: "connect", node: grown, contains: []string{`+      "id": "b"`, `+      "source": "a"`}},
	}

	for _, testCase := range testCases {
		patch, stats, err := Entry(testCase.node)
		require.NoError(t, err, testCase.description)
		if testCase.empty {
			assert.Empty(t, patch, testCase.description)
			assert.True(t, stats.Empty(), testCase.description)
			continue
		}
		assert.False(t, stats.Empty(), testCase.description)
		assert.GreaterOrEqual(t, stats.Hunks, 1, testCase.description)
		assert.Greater(t, stats.Insertions, 0, testCase.description)
		for _, fragment := range testCase.contains {
			assert.True(t, strings.Contains(patch, fragment), "%s: missing %q in\n%s", testCase.description, fragment, patch)
		}
	}
}

func TestEntry_NilNode(t *testing.T) {
	_, _, err := Entry(nil)
	assert.ErrorIs(t, err, ErrNoNode)
}

func TestStates_NilBefore(t *testing.T) {
	patch, stats, err := States(nil, flow.Empty(), "", 0)
	require.NoError(t, err)
	assert.Contains(t, patch, "+++ b/state")
	assert.Equal(t, 0, stats.Deletions)
	assert.Greater(t, stats.Insertions, 0)
}
