package history

import "fmt"

// Validate checks the tree invariant of a graph restored from storage: the
// root exists and has no parent, the cursor exists, parent and child links
// agree, and every node is reachable from the root exactly once.
func (g *Graph) Validate() error {
	if g == nil || len(g.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidGraph)
	}
	root := g.RootNode()
	if root == nil {
		return fmt.Errorf("%w: root %q missing", ErrInvalidGraph, g.Root)
	}
	if root.ParentID != "" {
		return fmt.Errorf("%w: root %s has parent %s", ErrInvalidGraph, root.ID, root.ParentID)
	}
	if g.Current() == nil {
		return fmt.Errorf("%w: cursor %q missing", ErrInvalidGraph, g.Cursor)
	}
	for id, node := range g.Nodes {
		if node == nil || node.ID != id {
			return fmt.Errorf("%w: node key %s does not match its id", ErrInvalidGraph, id)
		}
		if id == g.Root {
			continue
		}
		parent := g.Node(node.ParentID)
		if parent == nil {
			return fmt.Errorf("%w: node %s has unknown parent %q", ErrInvalidGraph, id, node.ParentID)
		}
		if !parent.HasChild(id) {
			return fmt.Errorf("%w: parent %s does not list child %s", ErrInvalidGraph, parent.ID, id)
		}
	}
	visited := make(map[string]bool, len(g.Nodes))
	queue := []string{g.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			return fmt.Errorf("%w: node %s reached twice", ErrInvalidGraph, id)
		}
		visited[id] = true
		node := g.Node(id)
		if node == nil {
			return fmt.Errorf("%w: child %s missing", ErrInvalidGraph, id)
		}
		for _, child := range node.ChildrenIDs {
			if c := g.Node(child); c == nil || c.ParentID != id {
				return fmt.Errorf("%w: child %s of %s does not point back", ErrInvalidGraph, child, id)
			}
			queue = append(queue, child)
		}
	}
	if len(visited) != len(g.Nodes) {
		return fmt.Errorf("%w: %d node(s) unreachable from root", ErrInvalidGraph, len(g.Nodes)-len(visited))
	}
	return nil
}
