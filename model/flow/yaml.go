package flow

import (
	"fmt"

	"github.com/viant/flowhistory/internal/yml"
)

// DecodeYAML reads a canvas snapshot written in YAML (the format used for
// canvas fixtures and node templates) and computes its structural hash.
// Validation errors name the offending line.
func DecodeYAML(data []byte) (*State, error) {
	root, err := yml.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode flow state: %w", err)
	}
	ret := &State{}
	if err = root.Decode(ret); err != nil {
		return nil, fmt.Errorf("failed to decode flow state: %w", err)
	}
	if ret.Nodes == nil {
		ret.Nodes = []*Node{}
	}
	if ret.Edges == nil {
		ret.Edges = []*Edge{}
	}
	err = root.Lookup("nodes").Items(func(i int, item *yml.Node) error {
		if n := ret.Nodes[i]; n == nil || n.ID == "" {
			return item.Errorf("node #%d has no id", i)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = root.Lookup("edges").Items(func(i int, item *yml.Node) error {
		e := ret.Edges[i]
		if e == nil || e.ID == "" {
			return item.Errorf("edge #%d has no id", i)
		}
		if ret.Node(e.Source) == nil || ret.Node(e.Target) == nil {
			return item.Errorf("edge %s references unknown node", e.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret.WithHash(), nil
}
