package validator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// pass is the input of one evaluation.
type pass struct {
	set *ruleSet
	// target is the last field whose failures are reported.
	target string
	mode   Mode
	// notify delivers a field value to the validated action, nil when unset.
	notify     func(value any)
	translator *i18n.Translator
	language   string
	observer   Observer
	log        *slog.Logger
}

// evaluate runs the chains of p.set in order. The context is checked between
// fields and once more at the end; a cancelled pass returns the context error
// and no report.
func evaluate(ctx context.Context, p pass) (*Report, error) {
	report := &Report{}
	addToReport := true

	for _, f := range p.set.active() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if opts, ok := p.set.optional[f.name]; ok && isAbsent(f, opts) {
			p.log.DebugContext(ctx, "optional field absent, skipped", logger.Field(f.name))
			continue
		}

		chain := p.set.chains[f.name]
		var failed []Rule
		fieldFailed := false
		for i, e := range chain {
			ok := check(ctx, p, f, e)
			if p.observer != nil {
				p.observer.ObserveRule(e.kind, ok)
			}
			if !ok {
				fieldFailed = true
				if addToReport {
					failed = append(failed, e.rule)
				} else {
					report.HasMoreErrors = true
				}
			}
			if f.name == p.target && i == len(chain)-1 {
				addToReport = false
			}
		}

		if len(failed) > 0 {
			report.Errors = append(report.Errors, newValidationError(f, failed, p))
		}
		if fieldFailed && p.mode == Immediate {
			break
		}
		if len(failed) == 0 && !report.HasMoreErrors && p.notify != nil {
			p.notify(f.Value())
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

func check(ctx context.Context, p pass, f *Field, e chainEntry) bool {
	data, err := dataFor(f, e)
	if err != nil {
		var convErr *ConversionError
		if errors.As(err, &convErr) {
			p.log.DebugContext(ctx, "conversion failed",
				logger.Field(f.name), logger.Rule(e.kind), logger.Error(err))
		}
		return false
	}
	if cr, ok := e.rule.(ContextRule); ok {
		return cr.ValidContext(ctx, data)
	}
	return e.rule.Valid(data)
}

// dataFor extracts the value a rule consumes: through the adapter for widget
// fields, directly for plain fields and quick rules.
func dataFor(f *Field, e chainEntry) (any, error) {
	if e.dataType == nil {
		return f.Value(), nil
	}
	if f.IsView() {
		if e.adapter == nil {
			return nil, conversionError(f.view, e.dataType, fmt.Errorf("no adapter"))
		}
		return e.adapter.Data(f.view)
	}

	v := f.Value()
	if e.dataType == anyType {
		return v, nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return nil, &ConversionError{View: f.name, DataType: e.dataType, Err: fmt.Errorf("nil value")}
	case rv.Type().AssignableTo(e.dataType):
		return v, nil
	case rv.Type().ConvertibleTo(e.dataType) && rv.Kind() == e.dataType.Kind():
		return rv.Convert(e.dataType).Interface(), nil
	default:
		return nil, &ConversionError{View: f.name, DataType: e.dataType, Err: fmt.Errorf("field holds %s", rv.Type())}
	}
}

// isAbsent reports whether any absence test of an optional field succeeds.
// Plain fields are absent while they hold the zero value.
func isAbsent(f *Field, opts []optionalEntry) bool {
	if !f.IsView() {
		return f.isZero()
	}
	for _, o := range opts {
		if d, ok := o.adapter.(AbsenceDetector); ok && d.IsAbsent(f.view, o.annotation) {
			return true
		}
	}
	return false
}

func newValidationError(f *Field, failed []Rule, p pass) ValidationError {
	msgs := make([]string, 0, len(failed))
	for _, r := range failed {
		msgs = append(msgs, translate(p.translator, p.language, r))
	}
	return ValidationError{Field: f.name, View: f.view, FailedRules: failed, Messages: msgs}
}
