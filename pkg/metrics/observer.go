package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

const namespace = "formkit"

// Observer implements validator.Observer on top of Prometheus collectors.
type Observer struct {
	passes        *prometheus.CounterVec
	passDuration  *prometheus.HistogramVec
	ruleEvaluated *prometheus.CounterVec
}

var _ validator.Observer = (*Observer)(nil)

// NewObserver creates the collectors and registers them with reg.
// A nil reg leaves the collectors unregistered, which is handy in tests.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_passes_total",
				Help:      "Total number of finished validation passes",
			},
			[]string{"mode", "outcome"}, // burst|immediate, succeeded|failed|cancelled
		),
		passDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_pass_duration_seconds",
				Help:      "Duration of a validation pass in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"mode"},
		),
		ruleEvaluated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_evaluations_total",
				Help:      "Total number of rule evaluations by rule kind",
			},
			[]string{"kind", "result"}, // pass or fail
		),
	}
	if reg == nil {
		return o, nil
	}

	var err error
	if o.passes, err = register(reg, o.passes); err != nil {
		return nil, err
	}
	if o.passDuration, err = register(reg, o.passDuration); err != nil {
		return nil, err
	}
	if o.ruleEvaluated, err = register(reg, o.ruleEvaluated); err != nil {
		return nil, err
	}
	return o, nil
}

// MustNewObserver is like NewObserver but panics on registration errors.
func MustNewObserver(reg prometheus.Registerer) *Observer {
	o, err := NewObserver(reg)
	if err != nil {
		panic(err)
	}
	return o
}

// ObserveRule counts a single rule evaluation.
func (o *Observer) ObserveRule(kind string, passed bool) {
	result := "fail"
	if passed {
		result = "pass"
	}
	o.ruleEvaluated.WithLabelValues(kind, result).Inc()
}

// ObservePass counts a finished pass and records its duration.
func (o *Observer) ObservePass(mode validator.Mode, outcome validator.Outcome, took time.Duration) {
	o.passes.WithLabelValues(mode.String(), string(outcome)).Inc()
	o.passDuration.WithLabelValues(mode.String()).Observe(took.Seconds())
}

// Collectors returns the underlying collectors, e.g. for a custom registry.
func (o *Observer) Collectors() []prometheus.Collector {
	return []prometheus.Collector{o.passes, o.passDuration, o.ruleEvaluated}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}
