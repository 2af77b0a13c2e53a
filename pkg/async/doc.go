// Package async runs a computation on a background goroutine and hands its
// result back through a Future.
//
// Go starts a function as a *Task, a Future with a single owner that can be
// cancelled. The function sees the cancellation through its context; the
// owner checks Cancelled before using a result that was produced anyway.
// The validator uses one Task per asynchronous pass and cancels it when a
// newer pass supersedes it:
//
//	task := async.Go(ctx, func(ctx context.Context) (*Report, error) {
//	    return evaluate(ctx, p)
//	})
//
//	// a newer request supersedes this one
//	task.Cancel()
//
//	report, err := task.Wait(ctx)
//	if task.Cancelled() {
//	    return // discard
//	}
package async
