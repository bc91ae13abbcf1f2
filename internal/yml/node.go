// Package yml provides navigation helpers over parsed YAML documents so
// decoders can report problems with their source line.
package yml

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	Node yaml.Node
)

// Parse parses data and returns the document's top-level node.
func Parse(data []byte) (*Node, error) {
	doc := &yaml.Node{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return (*Node)(NewMap()), nil
		}
		return (*Node)(doc.Content[0]), nil
	}
	return (*Node)(doc), nil
}

// Lookup returns the value of a mapping key or nil.
func (n *Node) Lookup(name string) *Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == name {
			return (*Node)(n.Content[i+1])
		}
	}
	return nil
}

// Items calls callback for each element of a sequence.
func (n *Node) Items(callback func(index int, node *Node) error) error {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	for i := 0; i < len(n.Content); i++ {
		if err := callback(i, (*Node)(n.Content[i])); err != nil {
			return err
		}
	}
	return nil
}

// Pairs calls callback for each key/value of a mapping.
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := callback(n.Content[i].Value, (*Node)(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// Decode decodes the node into v.
func (n *Node) Decode(v interface{}) error {
	return (*yaml.Node)(n).Decode(v)
}

// Errorf formats an error prefixed with the node position.
func (n *Node) Errorf(format string, args ...interface{}) error {
	if n == nil {
		return fmt.Errorf(format, args...)
	}
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

// NewMap creates an empty mapping node.
func NewMap() *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}
}
