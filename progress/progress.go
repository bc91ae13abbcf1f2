package progress

import (
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by a session.
type Delta struct {
	Transitions int
	Undos       int
	Redos       int
	Jumps       int
	Saves       int
}

// Counters is a point-in-time copy of a tracker.
type Counters struct {
	FlowID    string
	StartedAt time.Time

	Transitions int
	Undos       int
	Redos       int
	Jumps       int
	Saves       int
	UpdatedAt   time.Time
}

// Moves returns the number of cursor moves of any kind.
func (c Counters) Moves() int {
	return c.Undos + c.Redos + c.Jumps
}

// Progress keeps the counters of one session. It is safe for concurrent use;
// a nil *Progress ignores updates.
type Progress struct {
	mu       sync.Mutex
	counters Counters
	onChange func(Counters)
}

// New creates a tracker for flowID.
func New(flowID string, startedAt time.Time) *Progress {
	return &Progress{counters: Counters{FlowID: flowID, StartedAt: startedAt, UpdatedAt: startedAt}}
}

// Update applies the supplied delta. A registered onChange callback is
// invoked with a copy of the counters outside the critical section.
func (p *Progress) Update(d Delta, at time.Time) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.counters.Transitions += d.Transitions
	p.counters.Undos += d.Undos
	p.counters.Redos += d.Redos
	p.counters.Jumps += d.Jumps
	p.counters.Saves += d.Saves
	p.counters.UpdatedAt = at
	snapshot := p.counters
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Counters {
	if p == nil {
		return Counters{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counters
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it; only one callback can be active.
func (p *Progress) OnChange(cb func(Counters)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.onChange = cb
	p.mu.Unlock()
}
