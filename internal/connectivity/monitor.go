// Package connectivity tracks whether the process believes it can reach
// the server. The host pushes transitions in; nothing here polls.
package connectivity

import "sync"

// Event is a connectivity transition.
type Event int

const (
	WentOffline Event = iota
	WentOnline
)

func (e Event) String() string {
	if e == WentOnline {
		return "online"
	}
	return "offline"
}

// Monitor holds the process-wide online flag and notifies subscribers of
// transitions. The zero value is not usable; call New.
type Monitor struct {
	mu     sync.RWMutex
	online bool
	nextID int
	subs   map[int]func(Event)
}

// New returns a Monitor starting in the given state.
func New(initialOnline bool) *Monitor {
	return &Monitor{
		online: initialOnline,
		subs:   make(map[int]func(Event)),
	}
}

// Online reports the current belief.
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Subscribe registers fn for future transitions and returns a function
// that removes it. Calling the returned function more than once is safe.
func (m *Monitor) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

// SetOnline records the host's view. Subscribers run synchronously, outside
// the lock, and only when the state actually changes.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	ev := WentOffline
	if online {
		ev = WentOnline
	}
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
