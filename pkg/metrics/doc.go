// Package metrics exports validator instrumentation to Prometheus.
//
// An Observer counts finished passes by mode and outcome, records pass
// latency, and counts individual rule evaluations by rule kind:
//
//	obs, err := metrics.NewObserver(prometheus.DefaultRegisterer)
//	if err != nil {
//		return err
//	}
//	v, err := validator.New(form,
//		validator.WithListener(listener),
//		validator.WithObserver(obs),
//	)
//
// Collectors are registered once per Registerer. Registering a second
// Observer against the same Registerer reuses the collectors that are
// already there, so several validators can share one set of series.
package metrics
