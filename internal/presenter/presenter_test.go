package presenter_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/beamwallet/internal/eventbus"
	"github.com/jask/beamwallet/internal/presenter"
	"github.com/jask/beamwallet/internal/wallet"
)

type spyView struct {
	mu       sync.Mutex
	statuses []wallet.Status
	messages []string
	hidden   int
}

func (v *spyView) HideInputMethod() { v.mu.Lock(); v.hidden++; v.mu.Unlock() }
func (v *spyView) ShowStatus(s wallet.Status) {
	v.mu.Lock()
	v.statuses = append(v.statuses, s)
	v.mu.Unlock()
}
func (v *spyView) ShowMessage(text string) {
	v.mu.Lock()
	v.messages = append(v.messages, text)
	v.mu.Unlock()
}

func (v *spyView) calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.statuses) + len(v.messages) + v.hidden
}

// counter shows a message for every tx-changed event while active.
type counter struct {
	presenter.Base[*spyView]
	bus     *eventbus.Bus
	ready   int
	resumed int
}

func newCounter(bus *eventbus.Bus) *counter {
	return &counter{Base: presenter.NewBase[*spyView](zerolog.Nop()), bus: bus}
}

func (c *counter) ViewIsReady() { c.ready++ }

func (c *counter) OnResume() {
	c.resumed++
	c.Track(c.bus.OnTrigger(eventbus.TransactionChanged, func() {
		c.WithView(func(v *spyView) { v.ShowMessage("tx") })
	}))
}

func TestBindRunsReadyOnce(t *testing.T) {
	t.Parallel()

	c := newCounter(eventbus.New(zerolog.Nop()))
	view := &spyView{}
	c.Bind(view, c)
	c.Bind(view, c)
	require.Equal(t, 1, c.ready)

	got, ok := c.View()
	require.True(t, ok)
	require.Same(t, view, got)
}

func TestNoDeliveryAfterDetach(t *testing.T) {
	t.Parallel()

	bus := eventbus.New(zerolog.Nop())
	c := newCounter(bus)
	view := &spyView{}
	c.Bind(view, c)
	c.Resume()

	bus.Publish(eventbus.TransactionChanged, nil)
	require.Equal(t, 1, view.calls())

	c.Detach()
	bus.Publish(eventbus.TransactionChanged, nil)
	require.Equal(t, 1, view.calls())
	require.Zero(t, bus.Subscribers(eventbus.TransactionChanged))

	_, ok := c.View()
	require.False(t, ok)
	require.False(t, c.WithView(func(*spyView) { t.Fatal("view used after detach") }))

	// a destroyed presenter never becomes active again
	c.Resume()
	require.False(t, c.Active())
	require.Equal(t, 1, c.resumed)
}

func TestResumePauseCyclesDoNotDuplicate(t *testing.T) {
	t.Parallel()

	bus := eventbus.New(zerolog.Nop())
	c := newCounter(bus)
	view := &spyView{}
	c.Bind(view, c)

	for i := 0; i < 2; i++ {
		c.Resume()
		require.Equal(t, 1, c.Tracked())
		c.Pause()
		require.Zero(t, c.Tracked())
	}
	c.Resume()
	bus.Publish(eventbus.TransactionChanged, nil)
	require.Equal(t, []string{"tx"}, view.messages)
	require.Equal(t, 3, c.resumed)
}

func TestPausedPresenterIgnoresEvents(t *testing.T) {
	t.Parallel()

	bus := eventbus.New(zerolog.Nop())
	c := newCounter(bus)
	view := &spyView{}
	c.Bind(view, c)
	c.Resume()
	c.Pause()
	c.Pause()

	bus.Publish(eventbus.TransactionChanged, nil)
	require.Zero(t, view.calls())
}

func TestTrackWithoutViewCancels(t *testing.T) {
	t.Parallel()

	bus := eventbus.New(zerolog.Nop())
	c := newCounter(bus)
	sub := bus.OnTrigger(eventbus.AddressChanged, func() {})
	c.Track(sub)
	require.True(t, sub.Cancelled())

	c.Bind(&spyView{}, c)
	c.Detach()
	sub = bus.OnTrigger(eventbus.AddressChanged, func() {})
	c.Track(sub)
	require.True(t, sub.Cancelled())
}

func TestFail(t *testing.T) {
	t.Parallel()

	c := newCounter(eventbus.New(zerolog.Nop()))
	view := &spyView{}
	c.Bind(view, c)

	require.False(t, c.Fail(nil))
	require.True(t, c.Fail(wallet.ValidatePassword("")))
	require.True(t, c.Fail(&wallet.NativeCallError{Op: "openWallet", Err: errors.New("boom")}))

	require.Equal(t, []string{"password: must not be blank"}, view.messages)
	require.Equal(t, []wallet.Status{wallet.StatusError, wallet.StatusError}, view.statuses)

	c.Detach()
	require.True(t, c.Fail(errors.New("late")))
	require.Len(t, view.statuses, 2)
}
