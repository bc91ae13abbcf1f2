package history

import "sort"

// MaxPathSteps bounds every parent walk. The tree invariant forbids cycles;
// the bound only keeps a corrupted graph from hanging the caller.
const MaxPathSteps = 10000

// BuildPathTo returns the transitions leading from the root to targetID,
// root first. The root itself is excluded: the path of the root is empty and
// the length of any path equals the number of transitions since the root.
// Unknown ids yield an empty path. The walk ends only at g.Root; on a
// corrupted graph it stops after MaxPathSteps steps or at the first missing
// parent, so the first element of the result is then not a child of the root.
func BuildPathTo(g *Graph, targetID string) []*Node {
	var reversed []*Node
	node := g.Node(targetID)
	for steps := 0; node != nil && !g.IsRoot(node) && steps < MaxPathSteps; steps++ {
		reversed = append(reversed, node)
		node = g.Node(node.ParentID)
	}
	ret := make([]*Node, len(reversed))
	for i, n := range reversed {
		ret[len(reversed)-1-i] = n
	}
	return ret
}

// SetCursorTo moves the cursor only when targetID exists, reporting whether
// it did. Used when restoring a session whose saved cursor may be gone.
func SetCursorTo(g *Graph, targetID string) bool {
	if g.Node(targetID) == nil {
		return false
	}
	g.Cursor = targetID
	return true
}

// IsBranchPoint returns true when the node has more than one child.
func IsBranchPoint(g *Graph, id string) bool {
	node := g.Node(id)
	return node != nil && len(node.ChildrenIDs) > 1
}

// BranchPoints returns the ids of every node with more than one child,
// oldest first.
func BranchPoints(g *Graph) []string {
	var nodes []*Node
	if g != nil {
		for _, node := range g.Nodes {
			if len(node.ChildrenIDs) > 1 {
				nodes = append(nodes, node)
			}
		}
	}
	sortByCreation(nodes)
	ret := make([]string, 0, len(nodes))
	for _, node := range nodes {
		ret = append(ret, node.ID)
	}
	return ret
}

// Leaves returns the tip of every branch, oldest first.
func Leaves(g *Graph) []*Node {
	var ret []*Node
	if g != nil {
		for _, node := range g.Nodes {
			if len(node.ChildrenIDs) == 0 {
				ret = append(ret, node)
			}
		}
	}
	sortByCreation(ret)
	return ret
}

func sortByCreation(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].CreatedAt.Equal(nodes[j].CreatedAt) {
			return nodes[i].ID < nodes[j].ID
		}
		return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
	})
}
