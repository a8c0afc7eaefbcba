package event

import "sync"

// Group collects subscriptions and teardown functions registered by one
// owner so that they can be released together. Components that are created
// and destroyed repeatedly (cells during scrolling) register every listener
// through a Group and call Release exactly once on destruction.
type Group struct {
	mu       sync.Mutex
	releases []func()
	released bool
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{}
}

// Subscribe registers handler on bus and records the matching unsubscribe.
// Subscriptions made after Release are ignored.
func (g *Group) Subscribe(bus *Bus, eventType string, handler Handler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.released {
		return
	}
	id := bus.Subscribe(eventType, handler)
	g.releases = append(g.releases, func() { bus.Unsubscribe(id) })
}

// Add records an arbitrary teardown function, such as the remover returned
// by an element listener registration. When the group was already released,
// fn runs immediately.
func (g *Group) Add(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	if g.released {
		g.mu.Unlock()
		fn()
		return
	}
	g.releases = append(g.releases, fn)
	g.mu.Unlock()
}

// Release runs every recorded teardown in reverse registration order.
// Calling it more than once is a no-op.
func (g *Group) Release() {
	g.mu.Lock()
	if g.released {
		g.mu.Unlock()
		return
	}
	g.released = true
	releases := g.releases
	g.releases = nil
	g.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}

// Len returns the number of teardowns still held.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.releases)
}

// Released reports whether Release has run.
func (g *Group) Released() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.released
}
