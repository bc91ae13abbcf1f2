// Package diff renders the change recorded by a history node as a unified
// diff of its before and after snapshots, for history previews.
package diff

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
	"github.com/viant/flowhistory/model/flow"
	"github.com/viant/flowhistory/model/history"
)

// DefaultContext is the number of unchanged lines around each hunk.
const DefaultContext = 3

// ErrNoNode is returned for a nil node.
var ErrNoNode = errors.New("diff: no history node")

// Stats captures basic statistics about a unified-diff output.
type Stats struct {
	Hunks      int
	Insertions int
	Deletions  int
}

// Empty reports whether the diff holds no change.
func (s Stats) Empty() bool {
	return s.Insertions == 0 && s.Deletions == 0
}

// Entry diffs the before and after snapshots of node. The root node, whose
// snapshots are identical, yields an empty patch.
func Entry(node *history.Node) (string, Stats, error) {
	if node == nil {
		return "", Stats{}, ErrNoNode
	}
	return States(node.Before, node.After, node.Label, DefaultContext)
}

// States diffs two snapshots rendered as indented JSON.
func States(before, after *flow.State, label string, contextLines int) (string, Stats, error) {
	if contextLines <= 0 {
		contextLines = DefaultContext
	}
	if label == "" {
		label = "state"
	}
	oldContent, err := render(before)
	if err != nil {
		return "", Stats{}, err
	}
	newContent, err := render(after)
	if err != nil {
		return "", Stats{}, err
	}
	if oldContent == newContent {
		return "", Stats{}, nil
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: "a/" + label,
		ToFile:   "b/" + label,
		Context:  contextLines,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", Stats{}, fmt.Errorf("diff generation: %w", err)
	}
	fileDiff, err := sgdiff.ParseFileDiff([]byte(patch))
	if err != nil {
		return "", Stats{}, fmt.Errorf("failed to parse diff: %w", err)
	}
	stat := fileDiff.Stat()
	return patch, Stats{
		Hunks:      len(fileDiff.Hunks),
		Insertions: int(stat.Added + stat.Changed),
		Deletions:  int(stat.Deleted + stat.Changed),
	}, nil
}

func render(state *flow.State) (string, error) {
	if state == nil {
		return "", nil
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render state: %w", err)
	}
	return string(data) + "\n", nil
}
