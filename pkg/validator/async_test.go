package validator_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// blockingChecker holds every lookup until its context is done or release
// is closed.
type blockingChecker struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func newBlockingChecker() *blockingChecker {
	return &blockingChecker{started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (c *blockingChecker) Exists(ctx context.Context, _ string) (bool, error) {
	c.calls.Add(1)
	c.started <- struct{}{}
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-c.release:
		return false, nil
	}
}

func TestValidateAsync(t *testing.T) {
	t.Parallel()

	t.Run("delivers through the executor", func(t *testing.T) {
		t.Parallel()
		looper := validator.NewLooper(8)
		t.Cleanup(looper.Close)

		name := editText("name", "Jane")
		form := validator.NewForm().Field("name", name, validator.NotEmpty{})
		action := &valuesAction{}
		v, rec := newValidator(t, form,
			validator.WithExecutor(looper),
			validator.WithValidatedAction(action),
		)

		require.NoError(t, v.ValidateAsync(context.Background()))
		assert.Zero(t, rec.calls(), "nothing runs before the looper is drained")

		require.Eventually(t, func() bool {
			looper.Drain()
			return rec.successes() == 1
		}, time.Second, 5*time.Millisecond)

		assert.Equal(t, []any{name}, action.all())
		assert.False(t, v.IsValidating())
	})

	t.Run("second call supersedes the first", func(t *testing.T) {
		t.Parallel()
		looper := validator.NewLooper(8)
		t.Cleanup(looper.Close)

		form := validator.NewForm().Field("name", editText("name", ""), validator.NotEmpty{})
		v, rec := newValidator(t, form, validator.WithExecutor(looper))

		require.NoError(t, v.ValidateAsync(context.Background()))
		require.NoError(t, v.ValidateAsync(context.Background()))

		require.Eventually(t, func() bool {
			looper.Drain()
			return !v.IsValidating()
		}, time.Second, 5*time.Millisecond)
		looper.Drain()
		assert.Equal(t, 1, rec.calls())
		assert.Equal(t, 1, rec.failures())
	})

	t.Run("cancel drops the result", func(t *testing.T) {
		t.Parallel()
		checker := newBlockingChecker()
		form := validator.NewForm().
			Field("user", editText("user", "jane"), validator.Unique{Checker: checker})
		v, rec := newValidator(t, form)

		require.NoError(t, v.ValidateAsync(context.Background()))
		<-checker.started
		assert.True(t, v.IsValidating())

		assert.True(t, v.CancelAsync())
		assert.False(t, v.IsValidating())
		assert.False(t, v.CancelAsync())

		assert.Never(t, func() bool { return rec.calls() > 0 }, 100*time.Millisecond, 10*time.Millisecond)
	})

	t.Run("restart cancels the running pass", func(t *testing.T) {
		t.Parallel()
		checker := newBlockingChecker()
		form := validator.NewForm().
			Field("user", editText("user", "jane"), validator.Unique{Checker: checker})
		v, rec := newValidator(t, form)

		require.NoError(t, v.ValidateAsync(context.Background()))
		<-checker.started
		require.NoError(t, v.ValidateAsync(context.Background()))
		<-checker.started
		close(checker.release)

		require.Eventually(t, func() bool { return rec.successes() == 1 }, time.Second, 5*time.Millisecond)
		assert.Never(t, func() bool { return rec.calls() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
		assert.Equal(t, int32(2), checker.calls.Load())
	})

	t.Run("configuration errors are returned synchronously", func(t *testing.T) {
		t.Parallel()
		form := validator.NewForm().Field("name", editText("name", ""), validator.NotEmpty{})
		v, err := validator.New(form)
		require.NoError(t, err)

		assert.ErrorIs(t, v.ValidateAsync(context.Background()), validator.ErrNoListener)
		assert.False(t, v.IsValidating())

		require.NoError(t, v.SetListener(&recorder{}))
		assert.ErrorIs(t, v.ValidateTillAsync(context.Background(), "name"), validator.ErrUnorderedFields)
		assert.False(t, v.IsValidating())
	})

	t.Run("validate till", func(t *testing.T) {
		t.Parallel()
		form := validator.NewForm().
			Field("a", editText("a", "ok"), validator.Order{Value: 1}, validator.NotEmpty{}).
			Field("b", editText("b", ""), validator.Order{Value: 2}, validator.NotEmpty{})
		v, rec := newValidator(t, form)

		require.NoError(t, v.ValidateTillAsync(context.Background(), "a"))
		require.Eventually(t, func() bool { return rec.calls() == 1 }, time.Second, 5*time.Millisecond)
		assert.Equal(t, 1, rec.failures())
		assert.True(t, rec.lastFailure().IsEmpty())
	})

	t.Run("caller context cancels the pass", func(t *testing.T) {
		t.Parallel()
		checker := newBlockingChecker()
		form := validator.NewForm().
			Field("user", editText("user", "jane"), validator.Unique{Checker: checker})
		v, rec := newValidator(t, form)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, v.ValidateAsync(ctx))
		<-checker.started
		cancel()

		require.Eventually(t, func() bool { return !v.IsValidating() }, time.Second, 5*time.Millisecond)
		assert.Never(t, func() bool { return rec.calls() > 0 }, 50*time.Millisecond, 10*time.Millisecond)
	})
}
