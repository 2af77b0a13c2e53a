package validator

import (
	"reflect"
	"strings"
	"time"
)

// DefaultDateLayout is used by Future and Past when no layout is set.
const DefaultDateLayout = time.DateOnly

// Future requires a date after the current time.
type Future struct {
	// Layout is a time.Parse layout, DefaultDateLayout when empty.
	Layout   string `yaml:"layout"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (Future) Kind() string           { return "future" }
func (Future) DataType() reflect.Type { return stringType }

func (a Future) Bind(*Context) (Rule, error) {
	layout := layoutOrDefault(a.Layout)
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be a date in the future", map[string]any{"layout": layout})
	return newPredicate(m, func(s string) bool {
		t, ok := parseDate(layout, s)
		return ok && t.After(time.Now())
	}), nil
}

// Past requires a date before the current time.
type Past struct {
	Layout   string `yaml:"layout"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (Past) Kind() string           { return "past" }
func (Past) DataType() reflect.Type { return stringType }

func (a Past) Bind(*Context) (Rule, error) {
	layout := layoutOrDefault(a.Layout)
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be a date in the past", map[string]any{"layout": layout})
	return newPredicate(m, func(s string) bool {
		t, ok := parseDate(layout, s)
		return ok && t.Before(time.Now())
	}), nil
}

func layoutOrDefault(layout string) string {
	if layout == "" {
		return DefaultDateLayout
	}
	return layout
}

// parseDate reads dates in the local time zone, as typed by the user.
func parseDate(layout, value string) (time.Time, bool) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(value), time.Local)
	return t, err == nil
}
