package controller

import (
	"sync"
	"testing"

	"github.com/mod7ex/chrome-ext-test/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirror_SubscribeAndSet(t *testing.T) {
	m := NewMirror()

	var got []Snapshot
	unsubscribe := m.Subscribe(func(s Snapshot) { got = append(got, s) })

	st := protocol.State{Secret: "x", Initialized: true}
	m.Set(st)
	require.Len(t, got, 1)
	assert.Equal(t, st, got[0].State)

	unsubscribe()
	m.Set(protocol.State{})
	assert.Len(t, got, 1)
}

func TestMirror_BeginEnd(t *testing.T) {
	m := NewMirror()

	r1, ok := m.begin(false)
	require.True(t, ok)
	assert.True(t, m.Busy())
	r2, ok := m.begin(false)
	assert.True(t, ok, "reads may overlap")
	_, ok = m.begin(true)
	assert.False(t, ok, "mutations may not")

	m.end(r1, nil)
	m.end(r2, &protocol.State{Initialized: true})
	assert.False(t, m.Busy())
	assert.True(t, m.State().Initialized)

	// unbalanced end stays at zero
	m.end(r1, nil)
	_, ok = m.begin(true)
	require.True(t, ok)
}

func TestMirror_ReadDuringMutationIsDropped(t *testing.T) {
	acked := protocol.State{Secret: "new", Initialized: true, Authenticated: true}
	old := protocol.State{Secret: "old", Initialized: true, Authenticated: true}

	t.Run("read reply after mutation reply", func(t *testing.T) {
		m := NewMirror()
		m.Set(old)
		w, _ := m.begin(true)
		r, ok := m.begin(false)
		require.True(t, ok)

		m.end(w, &acked)
		m.end(r, &old)
		assert.Equal(t, acked, m.State())
	})

	t.Run("read reply before mutation reply", func(t *testing.T) {
		m := NewMirror()
		m.Set(old)
		w, _ := m.begin(true)
		r, _ := m.begin(false)

		m.end(r, &old)
		m.end(w, &acked)
		assert.Equal(t, acked, m.State())
	})

	t.Run("failed mutation keeps prior state", func(t *testing.T) {
		m := NewMirror()
		m.Set(old)
		w, _ := m.begin(true)
		r, _ := m.begin(false)

		m.end(w, nil)
		m.end(r, &acked)
		assert.Equal(t, old, m.State())
		assert.False(t, m.Busy())
	})

	t.Run("read after the mutation is applied", func(t *testing.T) {
		m := NewMirror()
		w, _ := m.begin(true)
		m.end(w, &old)

		r, _ := m.begin(false)
		m.end(r, &acked)
		assert.Equal(t, acked, m.State())
	})

	t.Run("forced write discards pending read", func(t *testing.T) {
		m := NewMirror()
		r, _ := m.begin(false)
		m.Set(acked)
		m.end(r, &old)
		assert.Equal(t, acked, m.State())
	})
}

func TestMirror_DeliversSnapshotsInOrder(t *testing.T) {
	m := NewMirror()

	var mu sync.Mutex
	var last uint64
	inOrder := true
	m.Subscribe(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		n := uint64(len(s.State.Secret))
		if n < last {
			inOrder = false
		}
		last = n
	})

	// each write grows the secret by one, so its length orders the snapshots
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.mu.Lock()
			m.state = protocol.State{Secret: m.state.Secret + "x"}
			m.notifyLocked()
		}()
	}
	wg.Wait()

	assert.True(t, inOrder, "subscriber saw an older snapshot after a newer one")
	assert.Len(t, m.State().Secret, 100)
}

func TestMirror_SubscriberMayReadMirror(t *testing.T) {
	m := NewMirror()
	var seen protocol.State
	m.Subscribe(func(Snapshot) { seen = m.State() })

	m.Set(protocol.State{Secret: "abc"})
	assert.Equal(t, "abc", seen.Secret)
}

func TestMirror_Concurrent(t *testing.T) {
	m := NewMirror()
	m.Subscribe(func(Snapshot) {})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r, ok := m.begin(false); ok {
				m.end(r, &protocol.State{Initialized: true})
			}
			_ = m.Snapshot()
		}()
	}
	wg.Wait()

	assert.False(t, m.Busy())
}
