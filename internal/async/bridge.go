// Package async runs blocking wallet calls away from the UI thread and hands
// their outcome back on it.
package async

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/jask/beamwallet/internal/lifecycle"
	"github.com/jask/beamwallet/internal/uithread"
)

// ErrWorkPanicked marks an outcome whose work closure panicked.
var ErrWorkPanicked = errors.New("work panicked")

// Outcome is the single result of one bridged call.
type Outcome[T any] struct {
	Value T
	Err   error
}

func (o Outcome[T]) Failed() bool { return o.Err != nil }

// Bridge schedules work on a worker pool, or inline on the caller when it has
// no workers, and delivers outcomes through the UI dispatcher. Both modes give
// the same guarantees: the outcome arrives on the UI thread at most once, and
// never after the returned subscription was cancelled.
type Bridge struct {
	ui   uithread.Dispatcher
	pool *workerpool.WorkerPool
	log  zerolog.Logger

	mu      sync.Mutex
	stopped bool
}

// New returns a bridge with the given number of workers. workers <= 0 runs
// every call synchronously on the goroutine that calls Run.
func New(ui uithread.Dispatcher, workers int, log zerolog.Logger) *Bridge {
	b := &Bridge{
		ui:  ui,
		log: log.With().Str("component", "async").Logger(),
	}
	if workers > 0 {
		b.pool = workerpool.New(workers)
	}
	return b
}

// Inline reports whether calls run on the caller instead of a worker.
func (b *Bridge) Inline() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pool == nil || b.stopped
}

// Stop stops accepting pool work and waits for running calls until ctx is
// done. Calls that never return are abandoned; their results are never
// delivered. Runs after Stop execute inline.
func (b *Bridge) Stop(ctx context.Context) error {
	b.mu.Lock()
	if b.stopped || b.pool == nil {
		b.stopped = true
		b.mu.Unlock()
		return nil
	}
	b.stopped = true
	pool := b.pool
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		pool.Stop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		b.log.Warn().Msg("abandoning native calls still running at shutdown")
		return ctx.Err()
	}
}

// submit hands job to the pool, or runs it on the caller once the bridge has
// no pool. The lock is held across Submit so Stop cannot close the pool's
// queue between the check and the send.
func (b *Bridge) submit(job func()) {
	b.mu.Lock()
	if b.pool == nil || b.stopped {
		b.mu.Unlock()
		job()
		return
	}
	b.pool.Submit(job)
	b.mu.Unlock()
}

// slot holds one call's delivery state.
type slot struct {
	handle    *lifecycle.Handle
	delivered atomic.Bool
}

// Run starts work and returns a subscription for its outcome. deliver is
// called on the UI thread exactly once unless the subscription is cancelled
// first, in which case the work still completes but its result is dropped.
// The subscription reports cancelled once the outcome has been delivered.
// There is no ordering between separate Run calls.
func Run[T any](b *Bridge, work func() (T, error), deliver func(Outcome[T])) lifecycle.Subscription {
	s := &slot{handle: lifecycle.NewHandle(nil)}

	b.submit(func() {
		v, err := call(work)
		if errors.Is(err, ErrWorkPanicked) {
			b.log.Error().Err(err).Msg("bridged call panicked")
		}
		if s.handle.Cancelled() {
			b.log.Debug().Msg("discarding result of cancelled call")
			return
		}
		b.ui.Post(func() {
			if !s.delivered.CompareAndSwap(false, true) {
				return
			}
			ok := s.handle.Deliver(func() {
				if deliver != nil {
					deliver(Outcome[T]{Value: v, Err: err})
				}
			})
			if !ok {
				b.log.Debug().Msg("discarding result cancelled before delivery")
			}
			// a delivered call is finished; its owner's group may drop it
			s.handle.Cancel()
		})
	})
	return s.handle
}

// Do is Run for calls that produce no value.
func Do(b *Bridge, work func() error, deliver func(error)) lifecycle.Subscription {
	return Run(b, func() (struct{}, error) {
		return struct{}{}, work()
	}, func(o Outcome[struct{}]) {
		if deliver != nil {
			deliver(o.Err)
		}
	})
}

func call[T any](work func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, fmt.Errorf("%w: %v", ErrWorkPanicked, r)
		}
	}()
	return work()
}
