package validator

import "time"

// Listener receives the terminal outcome of a validation pass. Exactly one
// method is called per completed pass.
type Listener interface {
	OnValidationSucceeded()
	OnValidationFailed(errs ValidationErrors)
}

// ListenerFuncs adapts plain functions to Listener. Nil functions are skipped.
type ListenerFuncs struct {
	Succeeded func()
	Failed    func(errs ValidationErrors)
}

func (l ListenerFuncs) OnValidationSucceeded() {
	if l.Succeeded != nil {
		l.Succeeded()
	}
}

func (l ListenerFuncs) OnValidationFailed(errs ValidationErrors) {
	if l.Failed != nil {
		l.Failed(errs)
	}
}

// ValidatedAction is notified with the live value of every field that passed
// all of its rules.
type ValidatedAction interface {
	OnAllRulesPassed(value any)
}

// ValidatedActionFunc adapts a function to ValidatedAction.
type ValidatedActionFunc func(value any)

func (f ValidatedActionFunc) OnAllRulesPassed(value any) { f(value) }

// ErrorDisplayAction shows the first failure message on widgets implementing
// widget.ErrorDisplay and clears it once the field passes.
//
//	v := validator.New(form,
//	    validator.WithValidatedAction(validator.ErrorDisplayAction{}),
//	    validator.WithListener(validator.ErrorDisplayListener(nil)),
//	)
type ErrorDisplayAction struct{}

func (ErrorDisplayAction) OnAllRulesPassed(value any) {
	if d, ok := value.(interface{ SetError(string) }); ok {
		d.SetError("")
	}
}

// ErrorDisplayListener sets the first message of each failed widget field
// through SetError and then calls next, which may be nil.
func ErrorDisplayListener(next Listener) Listener {
	return ListenerFuncs{
		Succeeded: func() {
			if next != nil {
				next.OnValidationSucceeded()
			}
		},
		Failed: func(errs ValidationErrors) {
			for _, e := range errs {
				if d, ok := e.View.(interface{ SetError(string) }); ok {
					d.SetError(e.Message())
				}
			}
			if next != nil {
				next.OnValidationFailed(errs)
			}
		},
	}
}

// Outcome classifies a finished pass for observers.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

// Observer receives instrumentation events. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveRule(kind string, passed bool)
	ObservePass(mode Mode, outcome Outcome, took time.Duration)
}
