package history

// RedoStrategy picks which child Redo moves to when the caller does not name
// one. Alternative UIs (an explicit branch picker, say) can supply their own
// without touching the mutation logic.
type RedoStrategy interface {
	// Select returns the id of the child of n to redo into, or "" for none.
	Select(g *Graph, n *Node) string
}

// RedoStrategyFunc adapts a function to RedoStrategy.
type RedoStrategyFunc func(g *Graph, n *Node) string

// Select calls f.
func (f RedoStrategyFunc) Select(g *Graph, n *Node) string { return f(g, n) }

type mostRecentChild struct{}

// Select returns the last appended child.
func (mostRecentChild) Select(_ *Graph, n *Node) string {
	if n == nil || len(n.ChildrenIDs) == 0 {
		return ""
	}
	return n.ChildrenIDs[len(n.ChildrenIDs)-1]
}

type firstChild struct{}

// Select returns the oldest child.
func (firstChild) Select(_ *Graph, n *Node) string {
	if n == nil || len(n.ChildrenIDs) == 0 {
		return ""
	}
	return n.ChildrenIDs[0]
}

var (
	// MostRecentChild redoes into the most recently created branch. Appends
	// push to the end of ChildrenIDs, so that is the last element.
	MostRecentChild RedoStrategy = mostRecentChild{}

	// FirstChild redoes into the oldest branch.
	FirstChild RedoStrategy = firstChild{}
)

// Strategy names accepted by StrategyByName.
const (
	StrategyMostRecent = "mostRecent"
	StrategyFirst      = "first"
)

// StrategyByName resolves a configured strategy name; unknown or empty names
// resolve to MostRecentChild.
func StrategyByName(name string) RedoStrategy {
	switch name {
	case StrategyFirst:
		return FirstChild
	default:
		return MostRecentChild
	}
}
