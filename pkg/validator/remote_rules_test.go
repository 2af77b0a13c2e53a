package validator_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// MockChecker is a mock implementation of validator.Checker.
type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Exists(ctx context.Context, value string) (bool, error) {
	args := m.Called(ctx, value)
	return args.Bool(0), args.Error(1)
}

func TestUnique(t *testing.T) {
	t.Parallel()

	t.Run("free value passes", func(t *testing.T) {
		t.Parallel()
		checker := new(MockChecker)
		checker.On("Exists", mock.Anything, "jane").Return(false, nil).Once()

		rule := bind(t, validator.Unique{Checker: checker})
		cr, ok := rule.(validator.ContextRule)
		require.True(t, ok)
		assert.True(t, cr.ValidContext(context.Background(), "  jane "))
		checker.AssertExpectations(t)
	})

	t.Run("taken value fails", func(t *testing.T) {
		t.Parallel()
		checker := new(MockChecker)
		checker.On("Exists", mock.Anything, "admin").Return(true, nil).Once()

		rule := bind(t, validator.Unique{Checker: checker})
		assert.False(t, rule.Valid("admin"))
		assert.Equal(t, "is already taken", rule.Message())
		checker.AssertExpectations(t)
	})

	t.Run("lookup error fails", func(t *testing.T) {
		t.Parallel()
		checker := new(MockChecker)
		checker.On("Exists", mock.Anything, "x").Return(false, errors.New("connection refused")).Once()

		assert.False(t, bind(t, validator.Unique{Checker: checker}).Valid("x"))
		checker.AssertExpectations(t)
	})

	t.Run("lookup is bounded by timeout", func(t *testing.T) {
		t.Parallel()
		slow := validator.CheckerFunc(func(ctx context.Context, _ string) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		})
		rule := bind(t, validator.Unique{Checker: slow, Timeout: 10 * time.Millisecond})

		start := time.Now()
		assert.False(t, rule.Valid("x"))
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("checker is required", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Unique{}.Bind(nil)
		assert.ErrorIs(t, err, validator.ErrInvalidAnnotation)
	})
}

func TestUniquePassAttributes(t *testing.T) {
	t.Parallel()

	keys := make(chan []string, 2)
	checker := validator.CheckerFunc(func(ctx context.Context, _ string) (bool, error) {
		var got []string
		for _, a := range logger.AttrsFromContext(ctx) {
			got = append(got, a.Key)
		}
		keys <- got
		return false, nil
	})

	form := validator.NewForm().Field("user", editText("user", "jane"), validator.Unique{Checker: checker})
	v, rec := newValidator(t, form)

	require.NoError(t, v.Validate(context.Background()))
	assert.Equal(t, []string{"async"}, <-keys)

	require.NoError(t, v.ValidateAsync(context.Background()))
	assert.Equal(t, []string{"pass", "async"}, <-keys)
	require.Eventually(t, func() bool { return rec.successes() == 2 }, time.Second, 5*time.Millisecond)
}

func TestUniqueLogsLookupErrors(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
	checker := validator.CheckerFunc(func(context.Context, string) (bool, error) {
		return false, errors.New("connection refused")
	})

	form := validator.NewForm().Field("user", editText("user", "jane"), validator.Unique{Checker: checker})
	v, rec := newValidator(t, form, validator.WithLogger(log))
	require.NoError(t, v.Validate(context.Background()))
	assert.Equal(t, []string{"is already taken"}, rec.lastFailure().Get("user"))

	var entry map[string]any
	for line := range strings.Lines(buf.String()) {
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		if e["msg"] == "unique lookup failed" {
			entry = e
		}
	}
	require.NotNil(t, entry, buf.String())
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "connection refused", entry["error"])
	assert.Equal(t, false, entry["async"])
	assert.Equal(t, "validator", entry["component"])
}
