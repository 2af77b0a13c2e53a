package validator

import (
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry shares a registry between validators. Without it each
// validator builds its own stock registry.
func WithRegistry(r *Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

func WithMode(m Mode) Option {
	return func(v *Validator) {
		v.mode = m
	}
}

func WithListener(l Listener) Option {
	return func(v *Validator) {
		v.listener = l
	}
}

func WithValidatedAction(a ValidatedAction) Option {
	return func(v *Validator) {
		v.action = a
	}
}

// WithExecutor sets where listener and validated action callbacks of
// asynchronous passes run. Defaults to the background goroutine itself.
func WithExecutor(e Executor) Option {
	return func(v *Validator) {
		if e != nil {
			v.executor = e
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// WithObserver installs an instrumentation observer, e.g. metrics.Observer.
func WithObserver(o Observer) Option {
	return func(v *Validator) {
		v.observer = o
	}
}

// WithTranslator localizes failure messages into the validator language.
func WithTranslator(tr *i18n.Translator) Option {
	return func(v *Validator) {
		v.translator = tr
	}
}

func WithLanguage(lang string) Option {
	return func(v *Validator) {
		if lang != "" {
			v.language = lang
		}
	}
}

// WithConfig applies mode and language from cfg.
func WithConfig(cfg Config) Option {
	return func(v *Validator) {
		v.mode = cfg.Mode
		if cfg.Language != "" {
			v.language = cfg.Language
		}
	}
}
