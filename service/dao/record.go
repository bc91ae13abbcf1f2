package dao

import (
	"fmt"
	"strings"
	"time"
)

// Record encodings.
const (
	EncodingJSON       = "json"
	EncodingCompressed = "compressed"
)

// ParameterEncoding filters List results by Record.Encoding.
const ParameterEncoding = "Encoding"

// Record is the persisted form of one flow's history graph.
type Record struct {
	FlowID   string `json:"flowId" yaml:"flowId"`
	Encoding string `json:"encoding" yaml:"encoding"`
	// Codec names the compression codec when Encoding is compressed.
	Codec   string    `json:"codec,omitempty" yaml:"codec,omitempty"`
	Payload string    `json:"payload" yaml:"payload"`
	Size    int       `json:"size" yaml:"size"`
	Cursor  string    `json:"cursor" yaml:"cursor"`
	SavedAt time.Time `json:"savedAt" yaml:"savedAt"`
}

// RecordKey returns the key a record is stored under.
func RecordKey(r *Record) string {
	return r.FlowID
}

// Clone returns a copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	ret := *r
	return &ret
}

// Validate checks the record can be stored.
func (r *Record) Validate() error {
	if r == nil {
		return ErrNilEntity
	}
	return ValidateID(r.FlowID)
}

// ValidateID rejects empty flow ids and ids that could address a location
// outside a backend's namespace.
func ValidateID(id string) error {
	if id == "" {
		return ErrInvalidID
	}
	if strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
