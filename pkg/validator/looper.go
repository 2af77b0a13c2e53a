package validator

import (
	"context"
	"sync"
)

// Executor runs callbacks on the goroutine that owns the UI.
type Executor interface {
	Post(fn func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Post(fn func()) { f(fn) }

// inlineExecutor runs callbacks on the posting goroutine.
var inlineExecutor = ExecutorFunc(func(fn func()) { fn() })

// Looper is a message queue drained by a single goroutine calling Loop. It
// plays the role of a UI main loop for hosts that have none.
//
//	looper := validator.NewLooper(16)
//	go looper.Loop(ctx)
//	v := validator.New(form, validator.WithExecutor(looper))
type Looper struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLooper creates a looper whose queue holds up to buffer pending callbacks.
// Post blocks while the queue is full.
func NewLooper(buffer int) *Looper {
	if buffer < 0 {
		buffer = 0
	}
	return &Looper{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. Callbacks posted after Close are dropped.
func (l *Looper) Post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Loop runs posted callbacks in order until ctx is done or the looper is closed.
func (l *Looper) Loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.queue:
			fn()
		}
	}
}

// Drain runs every callback already queued without waiting for new ones and
// returns how many ran. Useful for hosts that pump the queue from their own loop.
func (l *Looper) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.queue:
			fn()
			n++
		default:
			return n
		}
	}
}

// Close stops Loop. Pending callbacks are discarded.
func (l *Looper) Close() {
	l.once.Do(func() { close(l.done) })
}
