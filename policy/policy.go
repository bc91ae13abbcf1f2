package policy

import (
	"context"
	"strings"
)

// Strippable node fields. Data entries are addressed as "data.<key>".
const (
	FieldSelected = "selected"
	FieldDragging = "dragging"
	FieldWidth    = "width"
	FieldHeight   = "height"

	DataPrefix = "data."
)

// Policy lists the fields removed from every snapshot before storage.
//
// A nil *Policy keeps everything, which is the default: restoring a graph
// stored without a policy yields exactly what was saved.
type Policy struct {
	StripNodeFields []string
	StripViewport   bool
}

// Config represents the serialisable form of a Policy.
type Config struct {
	StripNodeFields []string `json:"stripNodeFields,omitempty" yaml:"stripNodeFields,omitempty"`
	StripViewport   bool     `json:"stripViewport,omitempty" yaml:"stripViewport,omitempty"`
}

// FromConfig converts a stored Config back to a runtime Policy.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		StripNodeFields: append([]string(nil), c.StripNodeFields...),
		StripViewport:   c.StripViewport,
	}
}

// IsPassThrough reports whether the policy removes nothing.
func (p *Policy) IsPassThrough() bool {
	return p == nil || (len(p.StripNodeFields) == 0 && !p.StripViewport)
}

// Strips reports whether field is listed. Matching is case-insensitive.
func (p *Policy) Strips(field string) bool {
	if p == nil {
		return false
	}
	normalized := strings.ToLower(field)
	for _, candidate := range p.StripNodeFields {
		if normalized == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}

// DataKeys returns the data keys addressed by "data.<key>" entries.
func (p *Policy) DataKeys() []string {
	if p == nil {
		return nil
	}
	var ret []string
	for _, candidate := range p.StripNodeFields {
		if len(candidate) > len(DataPrefix) && strings.EqualFold(candidate[:len(DataPrefix)], DataPrefix) {
			ret = append(ret, candidate[len(DataPrefix):])
		}
	}
	return ret
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx; it overrides the optimizer's own policy
// for operations running with that context.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the embedded policy, if any.
func FromContext(ctx context.Context) (*Policy, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(ctxKey).(*Policy)
	return p, ok
}
