// Package screentest wires a UI loop, bridge and bus for presenter tests.
package screentest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jask/beamwallet/internal/async"
	"github.com/jask/beamwallet/internal/eventbus"
	"github.com/jask/beamwallet/internal/uithread"
)

type Harness struct {
	Loop   *uithread.Loop
	Bridge *async.Bridge
	Bus    *eventbus.Bus
}

// New returns a harness whose bridge has the given number of workers. Zero
// workers makes every bridged call finish inside the Loop.Call that starts it.
func New(t *testing.T, workers int) *Harness {
	t.Helper()
	loop := uithread.NewLoop(zerolog.Nop())
	h := &Harness{
		Loop:   loop,
		Bridge: async.New(loop, workers, zerolog.Nop()),
		Bus:    eventbus.New(zerolog.Nop()),
	}
	t.Cleanup(func() {
		_ = h.Bridge.Stop(context.Background())
		loop.Close()
	})
	return h
}

// Do runs fn on the UI thread and waits until every task it queued has run.
func (h *Harness) Do(fn func()) {
	h.Loop.Call(fn)
	h.Loop.Flush()
}

// Publish publishes on the UI thread, the way engine notifications arrive.
func (h *Harness) Publish(ch eventbus.Channel, payload any) {
	h.Do(func() { h.Bus.Publish(ch, payload) })
}
