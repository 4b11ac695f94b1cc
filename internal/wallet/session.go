package wallet

import "sync"

// Session owns the process-wide open wallet handle.
type Session struct {
	mu sync.Mutex
	w  Wallet
}

// Replace installs w and returns the handle it displaced, if any.
func (s *Session) Replace(w Wallet) Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.w
	s.w = w
	return prev
}

// Current returns the open wallet or ErrNoWallet.
func (s *Session) Current() (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return nil, ErrNoWallet
	}
	return s.w, nil
}

// Close closes and forgets the open wallet. Closing an empty session is a no-op.
func (s *Session) Close() error {
	prev := s.Replace(nil)
	if prev == nil {
		return nil
	}
	return nativeErr("closeWallet", prev.Close())
}
