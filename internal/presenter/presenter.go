// Package presenter holds the lifecycle shared by every screen presenter.
//
// A presenter is unbound until Bind attaches its view, then alternates between
// active (after Resume) and inactive (after Pause) until Detach destroys it.
// Every subscription it tracks is cancelled on Pause or Detach, so no callback
// reaches the view of a destroyed presenter. All methods must be called on the
// UI thread.
package presenter

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/jask/beamwallet/internal/lifecycle"
	"github.com/jask/beamwallet/internal/wallet"
)

// ErrLifecycleViolation describes a view access after Detach. It is logged,
// never returned.
var ErrLifecycleViolation = errors.New("view accessed after detach")

// MvpView is the part of every screen a presenter may drive.
type MvpView interface {
	HideInputMethod()
	ShowStatus(status wallet.Status)
	ShowMessage(text string)
}

// Controller is what the host uses to drive a presenter through its lifecycle.
type Controller interface {
	Resume()
	Pause()
	Detach()
}

// Hooks are the screen-specific parts of the lifecycle.
type Hooks interface {
	ViewIsReady()
	OnResume()
}

type state int

const (
	unbound state = iota
	inactive
	active
	destroyed
)

func (s state) String() string {
	switch s {
	case unbound:
		return "unbound"
	case inactive:
		return "inactive"
	case active:
		return "active"
	default:
		return "destroyed"
	}
}

// Base implements Controller for a view of type V. Screens embed it and pass
// themselves as Hooks.
type Base[V MvpView] struct {
	log   zerolog.Logger
	view  V
	bound bool
	hooks Hooks
	state state
	subs  lifecycle.Group
}

func NewBase[V MvpView](log zerolog.Logger) Base[V] {
	return Base[V]{log: log}
}

// Bind attaches the view and runs ViewIsReady, which may already track
// subscriptions. Binding twice, or after Detach, is ignored.
func (b *Base[V]) Bind(view V, hooks Hooks) {
	if b.state != unbound {
		b.log.Debug().Stringer("state", b.state).Msg("ignoring bind")
		return
	}
	b.view = view
	b.bound = true
	b.hooks = hooks
	b.state = inactive
	if hooks != nil {
		hooks.ViewIsReady()
	}
}

func (b *Base[V]) Resume() {
	if b.state != inactive {
		b.log.Debug().Stringer("state", b.state).Msg("ignoring resume")
		return
	}
	b.state = active
	if b.hooks != nil {
		b.hooks.OnResume()
	}
}

func (b *Base[V]) Pause() {
	if b.state == active {
		b.state = inactive
	}
	b.subs.Clear()
}

func (b *Base[V]) Detach() {
	b.subs.Clear()
	var zero V
	b.view = zero
	b.bound = false
	b.hooks = nil
	b.state = destroyed
}

// Active reports whether the presenter is between Resume and Pause.
func (b *Base[V]) Active() bool { return b.state == active }

// View returns the bound view, or false once detached.
func (b *Base[V]) View() (V, bool) {
	return b.view, b.bound
}

// WithView runs fn with the view if one is bound. A call after Detach is
// logged and skipped.
func (b *Base[V]) WithView(fn func(V)) bool {
	if !b.bound {
		b.log.Debug().Err(ErrLifecycleViolation).Stringer("state", b.state).Msg("dropping view update")
		return false
	}
	fn(b.view)
	return true
}

// Track adds sub to the presenter's group. Without a bound view it is
// cancelled right away.
func (b *Base[V]) Track(sub lifecycle.Subscription) {
	if sub == nil {
		return
	}
	if !b.bound {
		sub.Cancel()
		return
	}
	b.subs.Add(sub)
}

// Tracked is the number of live subscriptions.
func (b *Base[V]) Tracked() int { return b.subs.Len() }

func (b *Base[V]) Logger() zerolog.Logger { return b.log }

// Fail shows the error status for err and reports whether there was one.
// Rejected input also shows its reason.
func (b *Base[V]) Fail(err error) bool {
	if err == nil {
		return false
	}
	var ie *wallet.InputError
	if errors.As(err, &ie) {
		b.WithView(func(v V) { v.ShowMessage(ie.Error()) })
	} else {
		b.log.Warn().Err(err).Msg("operation failed")
	}
	b.WithView(func(v V) { v.ShowStatus(wallet.StatusError) })
	return true
}
