package lifecycle

import "sync"

// Serial holds the newest of a series of subscriptions that produce the same
// data, such as repeated reads of one list. Setting a new member cancels the
// one it replaces, so only the newest can still deliver. The zero value is
// ready to use.
type Serial struct {
	mu  sync.Mutex
	cur Subscription
}

// Set makes s the current member, cancels the previous one and returns s.
func (s *Serial) Set(sub Subscription) Subscription {
	s.mu.Lock()
	prev := s.cur
	s.cur = sub
	s.mu.Unlock()

	if prev != nil && prev != sub {
		prev.Cancel()
	}
	return sub
}
