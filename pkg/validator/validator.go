package validator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Validator evaluates the rules of one form. Rule chains are built on first
// use and cached for the validator lifetime. At most one asynchronous pass is
// in flight; starting another cancels it.
type Validator struct {
	id         string
	form       *Form
	registry   *Registry
	log        *slog.Logger
	observer   Observer
	translator *i18n.Translator
	language   string

	mu       sync.Mutex
	mode     Mode
	listener Listener
	action   ValidatedAction
	executor Executor
	adapters map[reflect.Type]map[reflect.Type]ViewDataAdapter
	set      *ruleSet
	task     *async.Task[*Report]
	// gen identifies the current asynchronous pass. Results of older
	// generations are dropped.
	gen uint64
}

// New creates a validator for form. The default mode is Burst.
func New(form *Form, opts ...Option) (*Validator, error) {
	if form == nil {
		return nil, fmt.Errorf("%w: form", ErrNilArgument)
	}

	v := &Validator{
		id:       uuid.NewString(),
		form:     form,
		mode:     Burst,
		executor: inlineExecutor,
		log:      logger.Discard(),
		language: i18n.DefaultLanguage,
		adapters: make(map[reflect.Type]map[reflect.Type]ViewDataAdapter),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = NewRegistry()
	}
	v.log = v.log.With(logger.Component("validator"), logger.ValidatorID(v.id))
	return v, nil
}

// ID identifies the validator in logs.
func (v *Validator) ID() string { return v.id }

// SetListener replaces the listener.
func (v *Validator) SetListener(l Listener) error {
	if l == nil {
		return fmt.Errorf("%w: listener", ErrNilArgument)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listener = l
	return nil
}

// SetValidatedAction replaces the per-field action. Nil disables it.
func (v *Validator) SetValidatedAction(a ValidatedAction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.action = a
}

// SetMode switches between Burst and Immediate for subsequent passes.
func (v *Validator) SetMode(m Mode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = m
}

// Mode returns the current evaluation mode.
func (v *Validator) Mode() Mode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mode
}

// RegisterAdapter adds an adapter used when the registry has none for a
// (widget type, data type) pair. It affects chains not built yet.
func (v *Validator) RegisterAdapter(widgetType reflect.Type, adapter ViewDataAdapter) error {
	if widgetType == nil {
		return fmt.Errorf("%w: widget type", ErrNilArgument)
	}
	if adapter == nil {
		return fmt.Errorf("%w: adapter", ErrNilArgument)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	byData, ok := v.adapters[widgetType]
	if !ok {
		byData = make(map[reflect.Type]ViewDataAdapter)
		v.adapters[widgetType] = byData
	}
	byData[adapter.DataType()] = adapter
	return nil
}

// Must be called with lock held.
func (v *Validator) localAdapter(widgetType, dataType reflect.Type) (ViewDataAdapter, bool) {
	a, ok := v.adapters[widgetType][dataType]
	return a, ok
}

// rules returns the cached chains, building them on first use. A failed build
// is not cached.
func (v *Validator) rules(addingQuickRules bool) (*ruleSet, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.set == nil {
		set, err := build(v.form, v.registry, v.localAdapter, v.log)
		if err != nil {
			v.log.Error("building rules failed", logger.Error(err))
			return nil, err
		}
		v.set = set
		v.log.Debug("rules built", logger.Count("fields", len(set.active())), slog.Bool("ordered", set.ordered))
	}
	if !addingQuickRules && len(v.set.active()) == 0 {
		return nil, ErrNoRules
	}
	return v.set, nil
}

// RemoveRules drops every rule of the named field. The next pass no longer
// evaluates it.
func (v *Validator) RemoveRules(name string) error {
	if _, ok := newContext(v.form, v.log).Field(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if _, err := v.rules(true); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.set = v.set.without(name)
	return nil
}

// Put adds quick rules to a declared field. When the form is ordered the field
// must be part of the ordered set.
func (v *Validator) Put(name string, rules ...Rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: quick rules", ErrNilArgument)
	}
	field, ok := newContext(v.form, v.log).Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if _, err := v.rules(true); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.set.ordered && !v.set.contains(name) {
		return fmt.Errorf("%w: %q", ErrUnorderedField, name)
	}
	v.set = v.set.with(field, rules)
	return nil
}

type request struct {
	target string
	till   bool
}

// prepare resolves everything a pass needs. Every configuration error
// surfaces here, before any rule runs.
func (v *Validator) prepare(req request) (pass, Listener, error) {
	set, err := v.rules(false)
	if err != nil {
		return pass{}, nil, err
	}

	v.mu.Lock()
	mode, listener, action := v.mode, v.listener, v.action
	v.mu.Unlock()

	if req.till && !set.ordered {
		return pass{}, nil, fmt.Errorf("%w to validate till a field", ErrUnorderedFields)
	}
	if mode == Immediate && !set.ordered {
		return pass{}, nil, fmt.Errorf("%w in %s mode", ErrUnorderedFields, mode)
	}
	if listener == nil {
		return pass{}, nil, ErrNoListener
	}

	target := req.target
	if req.till {
		if !set.has(target) {
			return pass{}, nil, fmt.Errorf("%w: %q has no rules", ErrUnknownField, target)
		}
	} else {
		active := set.active()
		target = active[len(active)-1].name
	}

	p := pass{
		set:        set,
		target:     target,
		mode:       mode,
		translator: v.translator,
		language:   v.language,
		observer:   v.observer,
		log:        v.log,
	}
	if action != nil {
		p.notify = action.OnAllRulesPassed
	}
	return p, listener, nil
}

// Validate runs a pass on the calling goroutine and calls the listener before
// returning. Configuration errors are returned and no callback is made.
func (v *Validator) Validate(ctx context.Context) error {
	return v.validate(ctx, request{})
}

// ValidateTill validates the fields up to and including name. Failures of
// later fields only set Report.HasMoreErrors, which makes the pass fail.
// Requires ordered fields.
func (v *Validator) ValidateTill(ctx context.Context, name string) error {
	return v.validate(ctx, request{target: name, till: true})
}

func (v *Validator) validate(ctx context.Context, req request) error {
	p, listener, err := v.prepare(req)
	if err != nil {
		return err
	}

	ctx = logger.ContextWithAttrs(ctx, slog.Bool("async", false))
	start := time.Now()
	report, err := evaluate(ctx, p)
	took := time.Since(start)
	if err != nil {
		v.observePass(p.mode, OutcomeCancelled, took)
		return err
	}
	v.finishPass(ctx, p.mode, report, took)
	deliver(listener, report)
	return nil
}

// ValidateAsync starts a pass on a background goroutine and returns
// immediately. Configuration errors are returned synchronously. An in-flight
// pass is cancelled first; its result is never delivered. Callbacks run
// through the executor.
func (v *Validator) ValidateAsync(ctx context.Context) error {
	return v.validateAsync(ctx, request{})
}

// ValidateTillAsync is the asynchronous form of ValidateTill.
func (v *Validator) ValidateTillAsync(ctx context.Context, name string) error {
	return v.validateAsync(ctx, request{target: name, till: true})
}

func (v *Validator) validateAsync(ctx context.Context, req request) error {
	p, listener, err := v.prepare(req)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.task != nil {
		v.task.Cancel()
		v.log.DebugContext(ctx, "in-flight validation cancelled")
	}
	v.gen++
	gen := v.gen
	exec := v.executor
	ctx = logger.ContextWithAttrs(ctx, logger.Pass(gen), slog.Bool("async", true))

	if notify := p.notify; notify != nil {
		p.notify = func(value any) {
			exec.Post(func() { notify(value) })
		}
	}

	v.task = async.Go(ctx, func(ctx context.Context) (*Report, error) {
		start := time.Now()
		report, err := evaluate(ctx, p)
		took := time.Since(start)
		if err != nil {
			v.finishAsync(gen)
			v.observePass(p.mode, OutcomeCancelled, took)
			return nil, err
		}
		exec.Post(func() {
			if !v.finishAsync(gen) {
				v.observePass(p.mode, OutcomeCancelled, took)
				return
			}
			v.finishPass(ctx, p.mode, report, took)
			deliver(listener, report)
		})
		return report, nil
	})
	return nil
}

// finishAsync clears the in-flight task if gen is still current.
func (v *Validator) finishAsync(gen uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		return false
	}
	v.task = nil
	return true
}

// IsValidating reports whether an asynchronous pass has not delivered yet.
func (v *Validator) IsValidating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.task != nil
}

// CancelAsync cancels the in-flight asynchronous pass. It reports whether a
// pass was cancelled before delivering its result.
func (v *Validator) CancelAsync() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.task == nil {
		return false
	}
	v.task.Cancel()
	v.task = nil
	v.gen++
	return true
}

func (v *Validator) finishPass(ctx context.Context, mode Mode, report *Report, took time.Duration) {
	outcome := OutcomeSucceeded
	if !report.Succeeded() {
		outcome = OutcomeFailed
	}
	v.observePass(mode, outcome, took)
	v.log.DebugContext(ctx, "validation finished",
		logger.Mode(mode.String()),
		slog.String("outcome", string(outcome)),
		logger.Count("errors", len(report.Errors)),
		slog.Bool("has_more_errors", report.HasMoreErrors),
		logger.Duration(took),
	)
}

func (v *Validator) observePass(mode Mode, outcome Outcome, took time.Duration) {
	if v.observer != nil {
		v.observer.ObservePass(mode, outcome, took)
	}
}

func deliver(l Listener, report *Report) {
	if report.Succeeded() {
		l.OnValidationSucceeded()
		return
	}
	l.OnValidationFailed(report.Errors)
}
