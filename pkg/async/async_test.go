package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/async"
)

func TestFuture(t *testing.T) {
	t.Parallel()

	t.Run("await returns result and error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		task := async.Go(context.Background(), func(context.Context) (string, error) {
			return fmt.Sprintf("fields: %d", 3), boom
		})
		res, err := task.Await()
		assert.Equal(t, "fields: 3", res)
		assert.ErrorIs(t, err, boom)
		assert.True(t, task.IsComplete())
	})

	t.Run("wait is bounded by its context", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		task := async.Go(context.Background(), func(context.Context) (int, error) {
			<-release
			return 7, nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := task.Wait(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.False(t, task.IsComplete())

		close(release)
		<-task.Done()
		res, err := task.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, res)
	})
}

func TestTask(t *testing.T) {
	t.Parallel()

	t.Run("completes without cancellation", func(t *testing.T) {
		t.Parallel()
		task := async.Go(context.Background(), func(context.Context) (string, error) {
			return "done", nil
		})
		res, err := task.Await()
		require.NoError(t, err)
		assert.Equal(t, "done", res)
		assert.False(t, task.Cancelled())
		assert.False(t, task.Cancel(), "completed task cannot be cancelled")
	})

	t.Run("cancel propagates to the running function", func(t *testing.T) {
		t.Parallel()
		started := make(chan struct{})
		task := async.Go(context.Background(), func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})
		<-started
		assert.True(t, task.Cancel())
		assert.False(t, task.Cancel(), "second cancel is a no-op")
		assert.True(t, task.Cancelled())

		_, err := task.Await()
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("parent cancellation does not mark the task cancelled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		task := async.Go(ctx, func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
		cancel()
		_, err := task.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, task.Cancelled())
	})
	t.Run("function runs with an already cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ran atomic.Bool
		task := async.Go(ctx, func(ctx context.Context) (int, error) {
			ran.Store(true)
			return 0, ctx.Err()
		})
		_, err := task.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, ran.Load())
	})
}
