package history

import (
	"time"

	"github.com/viant/flowhistory/model/flow"
)

// RootLabel labels the root node of every graph.
const RootLabel = "Initial state"

// Node is one recorded transition. The root node has an empty ParentID and
// identical Before and After snapshots.
type Node struct {
	ID          string                 `json:"id" yaml:"id"`
	ParentID    string                 `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	ChildrenIDs []string               `json:"childrenIds" yaml:"childrenIds"`
	Label       string                 `json:"label" yaml:"label"`
	Before      *flow.State            `json:"before" yaml:"before"`
	After       *flow.State            `json:"after" yaml:"after"`
	CreatedAt   time.Time              `json:"createdAt" yaml:"createdAt"`
	Metadata    map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// HasChild returns true when id is a direct child of n.
func (n *Node) HasChild(id string) bool {
	if n == nil {
		return false
	}
	for _, c := range n.ChildrenIDs {
		if c == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the node including its snapshots.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	ret := *n
	ret.ChildrenIDs = append([]string{}, n.ChildrenIDs...)
	ret.Before = n.Before.Clone()
	ret.After = n.After.Clone()
	ret.Metadata = copyMetadata(n.Metadata)
	return &ret
}
