package validator_test

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// recorder is a goroutine-safe Listener remembering every callback.
type recorder struct {
	mu        sync.Mutex
	succeeded int
	failed    []validator.ValidationErrors
}

func (r *recorder) OnValidationSucceeded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.succeeded++
}

func (r *recorder) OnValidationFailed(errs validator.ValidationErrors) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, errs)
}

func (r *recorder) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.succeeded + len(r.failed)
}

func (r *recorder) failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.failed)
}

func (r *recorder) successes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.succeeded
}

// lastFailure returns the errors of the latest failed callback, or nil.
func (r *recorder) lastFailure() validator.ValidationErrors {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.failed) == 0 {
		return nil
	}
	return r.failed[len(r.failed)-1]
}

// valuesAction collects the values passed to the validated action.
type valuesAction struct {
	mu     sync.Mutex
	values []any
}

func (a *valuesAction) OnAllRulesPassed(value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.values = append(a.values, value)
}

func (a *valuesAction) all() []any {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]any(nil), a.values...)
}

// MockObserver is a mock implementation of validator.Observer.
type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) ObserveRule(kind string, passed bool) {
	m.Called(kind, passed)
}

func (m *MockObserver) ObservePass(mode validator.Mode, outcome validator.Outcome, took time.Duration) {
	m.Called(mode, outcome, took)
}
