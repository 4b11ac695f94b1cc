package lifecycle

import "sync"

// Group collects the subscriptions owned by one controller. Members are only
// ever cancelled together through Clear. The zero value is ready to use.
type Group struct {
	mu   sync.Mutex
	subs []Subscription
}

// Add appends s and drops members that are already cancelled, such as
// bridged calls that have delivered. Nil subscriptions are ignored.
func (g *Group) Add(s Subscription) {
	if s == nil {
		return
	}
	g.mu.Lock()
	live := g.subs[:0]
	for _, m := range g.subs {
		if !m.Cancelled() {
			live = append(live, m)
		}
	}
	g.subs = append(live, s)
	g.mu.Unlock()
}

// Clear cancels every member in registration order and empties the group.
// The group can be added to again afterwards. Clearing an empty group is a no-op.
func (g *Group) Clear() {
	g.mu.Lock()
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()

	// cancel outside the lock: a member's onCancel may add to or clear this group
	for _, s := range subs {
		s.Cancel()
	}
}

// Len reports the number of members currently held.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}
