package history

// Option customises a Graph created by New.
type Option func(g *Graph)

// WithRedoStrategy sets the strategy used by Redo without an explicit child.
func WithRedoStrategy(strategy RedoStrategy) Option {
	return func(g *Graph) {
		g.redo = strategy
	}
}

// WithRootID pins the root node id, mostly useful in tests.
func WithRootID(id string) Option {
	return func(g *Graph) {
		if id != "" {
			g.Root = id
		}
	}
}
