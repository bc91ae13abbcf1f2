// Package optimizer prepares history graphs for storage and measures their
// serialized size.
package optimizer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/flowhistory/model/flow"
	"github.com/viant/flowhistory/model/history"
	"github.com/viant/flowhistory/policy"
	"go.uber.org/zap"
)

// DefaultLimitBytes is the serialized size above which a graph is compressed.
const DefaultLimitBytes = 1048576

// UseDefaultLimit passed as a limit selects the service limit. Zero is a real
// limit: every non-empty graph exceeds it.
const UseDefaultLimit = -1

// Service applies a storage policy to history graphs
type Service struct {
	policy *policy.Policy
	limit  int
	logger *zap.Logger
}

// OptimizeForStorage returns a deep copy of g with the service policy applied.
// The input graph is never modified.
func (s *Service) OptimizeForStorage(g *history.Graph) *history.Graph {
	return s.apply(g, s.policy)
}

// Optimize is OptimizeForStorage honouring a policy embedded in ctx.
func (s *Service) Optimize(ctx context.Context, g *history.Graph) *history.Graph {
	if p, ok := policy.FromContext(ctx); ok {
		return s.apply(g, p)
	}
	return s.apply(g, s.policy)
}

func (s *Service) apply(g *history.Graph, p *policy.Policy) *history.Graph {
	ret := g.Clone()
	if ret == nil || p.IsPassThrough() {
		return ret
	}
	dataKeys := p.DataKeys()
	for _, node := range ret.Nodes {
		strip(node.Before, p, dataKeys)
		strip(node.After, p, dataKeys)
	}
	s.logger.Debug("optimized history graph", zap.Int("nodes", ret.Len()), zap.Strings("stripped", p.StripNodeFields), zap.Bool("viewport", p.StripViewport))
	return ret
}

func strip(state *flow.State, p *policy.Policy, dataKeys []string) {
	if state == nil {
		return
	}
	if p.StripViewport {
		state.Viewport = nil
	}
	for _, node := range state.Nodes {
		if node == nil {
			continue
		}
		if p.Strips(policy.FieldSelected) {
			node.Selected = false
		}
		if p.Strips(policy.FieldDragging) {
			node.Dragging = false
		}
		if p.Strips(policy.FieldWidth) {
			node.Width = nil
		}
		if p.Strips(policy.FieldHeight) {
			node.Height = nil
		}
		for _, key := range dataKeys {
			delete(node.Data, key)
		}
		if node.Data != nil && len(node.Data) == 0 {
			node.Data = nil
		}
	}
	if len(dataKeys) > 0 && state.StructuralHash != "" {
		state.StructuralHash = state.Hash()
	}
}

// CalculateSize returns the length in bytes of the JSON encoding of g.
// Map keys are encoded in sorted order so the size is deterministic.
func (s *Service) CalculateSize(g *history.Graph) (int, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return 0, fmt.Errorf("failed to encode history graph: %w", err)
	}
	return len(data), nil
}

// ExceedsLimit reports whether the serialized size of g is strictly greater
// than limitBytes; a negative limit selects the service limit. For a fixed
// graph the result is monotonic in any limitBytes >= 0.
func (s *Service) ExceedsLimit(g *history.Graph, limitBytes int) (bool, error) {
	if limitBytes < 0 {
		limitBytes = s.limit
	}
	size, err := s.CalculateSize(g)
	if err != nil {
		return false, err
	}
	return size > limitBytes, nil
}

// Limit returns the service default limit.
func (s *Service) Limit() int {
	return s.limit
}

// New creates an optimizer service
func New(options ...Option) *Service {
	ret := &Service{limit: DefaultLimitBytes, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	if ret.limit < 0 {
		ret.limit = DefaultLimitBytes
	}
	return ret
}
