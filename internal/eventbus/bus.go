// Package eventbus fans native wallet notifications out to the screens that
// are currently listening.
//
// The bus delivers synchronously on the publishing goroutine. It does not hop
// threads: publishers that are not on the UI thread go through NativeListener,
// which re-posts each notification onto the UI thread first.
package eventbus

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/jask/beamwallet/internal/lifecycle"
)

// Handler receives the payload published on a channel.
type Handler func(payload any)

type subscriber struct {
	id     uint64
	handle *lifecycle.Handle
	fn     Handler
}

// Bus is the process-scoped set of notification channels. Construct one per
// process and pass it to whoever needs it; tests build their own.
type Bus struct {
	log zerolog.Logger

	mu     sync.RWMutex
	subs   [numChannels][]*subscriber
	nextID uint64
}

func New(log zerolog.Logger) *Bus {
	return &Bus{log: log.With().Str("component", "eventbus").Logger()}
}

// Subscribe registers fn on ch and returns its cancellation handle. The same
// fn may be registered several times; every registration is independent.
func (b *Bus) Subscribe(ch Channel, fn Handler) lifecycle.Subscription {
	if !ch.Valid() || fn == nil {
		b.log.Warn().Stringer("channel", ch).Msg("ignoring subscription")
		return lifecycle.Noop()
	}

	b.mu.Lock()
	b.nextID++
	s := &subscriber{id: b.nextID, fn: fn}
	s.handle = lifecycle.NewHandle(func() { b.remove(ch, s.id) })
	b.subs[ch] = append(b.subs[ch], s)
	b.mu.Unlock()

	return s.handle
}

// OnTrigger subscribes a payload-free callback.
func (b *Bus) OnTrigger(ch Channel, fn func()) lifecycle.Subscription {
	if fn == nil {
		return lifecycle.Noop()
	}
	return b.Subscribe(ch, func(any) { fn() })
}

// OnSyncProgress subscribes to SyncProgressUpdated with a typed callback.
func (b *Bus) OnSyncProgress(fn func(SyncProgress)) lifecycle.Subscription {
	if fn == nil {
		return lifecycle.Noop()
	}
	return b.Subscribe(SyncProgressUpdated, func(payload any) {
		p, ok := payload.(SyncProgress)
		if !ok {
			b.log.Warn().Type("payload", payload).Msg("unexpected sync progress payload")
			return
		}
		fn(p)
	})
}

// Publish delivers payload to every subscriber registered on ch at the moment
// of the call, in registration order, on the calling goroutine. Subscribers
// cancelled before their turn are skipped.
func (b *Bus) Publish(ch Channel, payload any) {
	if !ch.Valid() {
		b.log.Warn().Stringer("channel", ch).Msg("publish on unknown channel")
		return
	}

	b.mu.RLock()
	if len(b.subs[ch]) == 0 {
		b.mu.RUnlock()
		return
	}
	snapshot := make([]*subscriber, len(b.subs[ch]))
	copy(snapshot, b.subs[ch])
	b.mu.RUnlock()

	for _, s := range snapshot {
		s.handle.Deliver(func() { s.fn(payload) })
	}
}

// Subscribers reports how many live registrations ch has.
func (b *Bus) Subscribers(ch Channel) int {
	if !ch.Valid() {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[ch])
}

func (b *Bus) remove(ch Channel, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	cur := b.subs[ch]
	next := make([]*subscriber, 0, len(cur))
	for _, s := range cur {
		if s.id != id {
			next = append(next, s)
		}
	}
	b.subs[ch] = next
}
