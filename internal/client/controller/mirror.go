package controller

import (
	"sync"

	"github.com/mod7ex/chrome-ext-test/internal/protocol"
)

// Snapshot is what subscribers receive on every change.
type Snapshot struct {
	State protocol.State
	Busy  bool
}

// Mirror is the popup's copy of the last acknowledged state. It is safe for
// concurrent use. Subscribers are called outside the state lock, one
// delivery at a time, and never see an older snapshot after a newer one.
// They must not change the mirror themselves.
type Mirror struct {
	mu       sync.Mutex
	state    protocol.State
	inflight int
	mutating bool
	// gen counts forced writes and started mutations. A read reply is only
	// applied when gen did not move while the read was out.
	gen    uint64
	seq    uint64
	subs   map[int]func(Snapshot)
	nextID int

	deliverMu sync.Mutex
	delivered uint64
}

// ticket identifies one request between begin and end.
type ticket struct {
	gen      uint64
	mutating bool
	// stale is set for a read started while a mutation was in flight; the
	// store may answer it from either side of that mutation.
	stale bool
}

func NewMirror() *Mirror {
	return &Mirror{subs: make(map[int]func(Snapshot))}
}

func (m *Mirror) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Mirror) State() protocol.State {
	return m.Snapshot().State
}

func (m *Mirror) Busy() bool {
	return m.Snapshot().Busy
}

// Subscribe registers fn and returns a function that removes it.
func (m *Mirror) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Set replaces the state and notifies subscribers. Replies of reads still in
// flight are discarded.
func (m *Mirror) Set(st protocol.State) {
	m.mu.Lock()
	m.state = st
	m.gen++
	m.notifyLocked()
}

// begin marks a request in flight. A mutating request is refused while
// another request is in flight; reads may overlap anything.
func (m *Mirror) begin(mutating bool) (ticket, bool) {
	m.mu.Lock()
	if mutating && m.inflight > 0 {
		m.mu.Unlock()
		return ticket{}, false
	}
	if mutating {
		m.gen++
		m.mutating = true
	}
	t := ticket{gen: m.gen, mutating: mutating, stale: !mutating && m.mutating}
	m.inflight++
	m.notifyLocked()
	return t, true
}

// end closes the request t; st is the reply state, or nil when none arrived.
// A mutation's reply always wins. A read's reply is dropped when it may
// predate the state already held.
func (m *Mirror) end(t ticket, st *protocol.State) {
	m.mu.Lock()
	if m.inflight > 0 {
		m.inflight--
	}
	if t.mutating {
		m.mutating = false
	}
	if st != nil && (t.mutating || (!t.stale && t.gen == m.gen)) {
		m.state = *st
	}
	m.notifyLocked()
}

func (m *Mirror) snapshotLocked() Snapshot {
	return Snapshot{State: m.state, Busy: m.inflight > 0}
}

// notifyLocked releases m.mu before calling subscribers. Snapshots that lost
// the race to a newer one are not delivered.
func (m *Mirror) notifyLocked() {
	m.seq++
	seq := m.seq
	snap := m.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	m.deliverMu.Lock()
	defer m.deliverMu.Unlock()
	if seq <= m.delivered {
		return
	}
	m.delivered = seq
	for _, fn := range subs {
		fn(snap)
	}
}
