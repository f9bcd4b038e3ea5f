// Package sequence orders asynchronous fetch results. A caller takes a ticket
// before sending a request and asks the guard whether the response may still
// replace state once it arrives.
package sequence

import "sync"

// Guard is safe for concurrent use. The zero value is ready.
type Guard struct {
	mu       sync.Mutex
	issued   uint64
	accepted uint64
	floor    uint64
}

func (g *Guard) Issue() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

// Accept records ticket as the current state if it is newer than anything
// accepted so far and not below the floor. It reports whether it did.
func (g *Guard) Accept(ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if ticket <= g.accepted || ticket < g.floor {
		return false
	}
	g.accepted = ticket
	return true
}

// Raise invalidates every ticket issued so far. Used after a local change
// that responses already in flight cannot know about.
func (g *Guard) Raise() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.floor = g.issued + 1
}

func (g *Guard) Accepted() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.accepted
}
