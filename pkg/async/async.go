package async

import (
	"context"
	"sync/atomic"
)

// Future is the eventual result of a computation running on another goroutine.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the computation finishes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// Wait is Await bounded by ctx. The computation keeps running when ctx ends
// first.
func (f *Future[U]) Wait(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// IsComplete reports without blocking whether the computation has finished.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed once the computation has finished.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// Task is a Future owned by one caller, who may cancel it. Cancellation is
// cooperative: fn observes it through its context, and the owner checks
// Cancelled before using a result that arrives anyway.
type Task[U any] struct {
	*Future[U]
	cancel    context.CancelFunc
	cancelled atomic.Bool
}

// Go starts fn on its own goroutine with a context derived from ctx. fn runs
// even when ctx is already done, so it always observes the cancellation
// itself.
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Task[U] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[U]{Future: &Future[U]{done: make(chan struct{})}, cancel: cancel}

	go func() {
		defer close(t.done)
		defer cancel()
		t.result, t.err = fn(ctx)
	}()

	return t
}

// Cancel marks the task cancelled and cancels its context. It returns false
// when the task already finished or was cancelled before.
func (t *Task[U]) Cancel() bool {
	if t.IsComplete() || !t.cancelled.CompareAndSwap(false, true) {
		return false
	}
	t.cancel()
	return true
}

// Cancelled reports whether Cancel succeeded on this task.
func (t *Task[U]) Cancelled() bool {
	return t.cancelled.Load()
}
