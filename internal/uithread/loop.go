// Package uithread models the single UI-affine thread: every controller
// callback, view call and event delivery to a controller runs on it.
package uithread

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ef-ds/deque"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// Dispatcher schedules work on the UI-affine thread. Post never blocks the caller.
type Dispatcher interface {
	Post(fn func())
}

// Loop is a Dispatcher that drains a FIFO queue from one goroutine. Tasks
// posted from a single goroutine run in the order they were posted.
type Loop struct {
	log  zerolog.Logger
	exec func(fn func())

	mu      sync.Mutex
	cond    *sync.Cond
	queue   *deque.Deque
	started bool
	closed  bool
	busy    bool
	done    chan struct{}

	inTask atomic.Bool
}

var _ Dispatcher = (*Loop)(nil)

// NewLoop returns a started loop that runs tasks on its own goroutine.
func NewLoop(log zerolog.Logger) *Loop {
	l := newLoop(log, func(fn func()) { fn() })
	l.Start()
	return l
}

// NewProgramLoop returns a loop whose tasks are forwarded into a bubbletea
// program as TaskMsg values, so they execute inside the program's Update.
// send is typically (*tea.Program).Send. The loop is not started: call Start
// once the program exists.
func NewProgramLoop(log zerolog.Logger, send func(tea.Msg)) *Loop {
	return newLoop(log, func(fn func()) { send(TaskMsg{fn: fn}) })
}

func newLoop(log zerolog.Logger, exec func(fn func())) *Loop {
	l := &Loop{
		log:   log.With().Str("component", "uithread").Logger(),
		exec:  exec,
		queue: deque.New(),
		done:  make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Start launches the draining goroutine. Calling it again is a no-op.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.closed {
		return
	}
	l.started = true
	go l.run()
}

// Post queues fn. Tasks posted after Close are dropped.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		l.log.Debug().Msg("task posted after close dropped")
		return
	}
	l.queue.PushBack(fn)
	l.mu.Unlock()
	l.cond.Broadcast()
}

// Call posts fn and waits for it to finish. It must not be called from a task.
func (l *Loop) Call(fn func()) {
	ran := make(chan struct{})
	l.Post(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// Flush waits until every task queued so far has run. It must not be called
// from a task.
func (l *Loop) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for (l.queue.Len() > 0 || l.busy) && !l.exited() {
		l.cond.Wait()
	}
}

// InTask reports whether the loop goroutine is currently running a task.
func (l *Loop) InTask() bool {
	return l.inTask.Load()
}

// Close drains the remaining tasks, stops the loop and waits for it to exit.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return
	}
	l.closed = true
	started := l.started
	l.mu.Unlock()
	l.cond.Broadcast()

	if !started {
		close(l.done)
		return
	}
	<-l.done
}

func (l *Loop) exited() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func (l *Loop) run() {
	defer func() {
		close(l.done)
		l.cond.Broadcast()
	}()
	for {
		l.mu.Lock()
		for l.queue.Len() == 0 && !l.closed {
			l.cond.Wait()
		}
		if l.queue.Len() == 0 && l.closed {
			l.mu.Unlock()
			return
		}
		v, _ := l.queue.PopFront()
		l.busy = true
		l.mu.Unlock()

		l.runTask(v.(func()))

		l.mu.Lock()
		l.busy = false
		l.mu.Unlock()
		l.cond.Broadcast()
	}
}

func (l *Loop) runTask(fn func()) {
	l.inTask.Store(true)
	defer l.inTask.Store(false)
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("ui task panicked")
		}
	}()
	l.exec(fn)
}
