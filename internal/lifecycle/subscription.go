// Package lifecycle holds the cancellation primitives that tie event
// registrations and bridged calls to the visible lifetime of a screen.
package lifecycle

import (
	"go.uber.org/atomic"
)

// Subscription is one registration on an event channel or one in-flight
// bridged call. Cancel is safe from any goroutine and may be called any
// number of times. Deliveries run on the UI thread; a Cancel issued on that
// thread fully separates earlier deliveries from later ones.
type Subscription interface {
	Cancel()
	Cancelled() bool
}

// Handle is the Subscription handed out by the event bus and the task bridge.
type Handle struct {
	cancelled atomic.Bool
	onCancel  func()
}

var _ Subscription = (*Handle)(nil)

// NewHandle returns an active handle. onCancel runs once, on the first Cancel.
func NewHandle(onCancel func()) *Handle {
	return &Handle{onCancel: onCancel}
}

// Noop returns a handle that is already cancelled.
func Noop() *Handle {
	h := &Handle{}
	h.cancelled.Store(true)
	return h
}

func (h *Handle) Cancel() {
	if !h.cancelled.CompareAndSwap(false, true) {
		return
	}
	if h.onCancel != nil {
		h.onCancel()
	}
}

func (h *Handle) Cancelled() bool {
	return h.cancelled.Load()
}

// Deliver runs fn unless the handle has been cancelled and reports whether it ran.
// The check happens immediately before the call, so a delivery that starts after
// Cancel has returned never reaches fn.
//
// Deliver must only be called on the UI thread. A Cancel from another
// goroutine can return while fn is still running; cancels that must not
// overlap a delivery are issued on the UI thread, where they cannot. fn is
// not run under a lock so it may cancel its own handle.
func (h *Handle) Deliver(fn func()) bool {
	if h.cancelled.Load() {
		return false
	}
	fn()
	return true
}
