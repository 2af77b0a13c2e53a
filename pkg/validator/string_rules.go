package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// NotEmpty requires non-blank text.
type NotEmpty struct {
	// Trim ignores surrounding whitespace.
	Trim bool `yaml:"trim"`
	// EmptyText is a placeholder value treated as empty, e.g. "Select…".
	EmptyText string `yaml:"empty_text"`
	Sequence  int    `yaml:"sequence"`
	Message   string `yaml:"message"`
}

func (NotEmpty) Kind() string           { return "not_empty" }
func (NotEmpty) DataType() reflect.Type { return stringType }

func (a NotEmpty) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message, "This field is required", nil)
	return newPredicate(m, func(s string) bool {
		if a.Trim {
			s = strings.TrimSpace(s)
		}
		return s != "" && s != a.EmptyText
	}), nil
}

// Length bounds the number of characters. Zero Max means unbounded.
type Length struct {
	Min      int    `yaml:"min"`
	Max      int    `yaml:"max"`
	Trim     bool   `yaml:"trim"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (Length) Kind() string           { return "length" }
func (Length) DataType() reflect.Type { return stringType }

func (a Length) Bind(*Context) (Rule, error) {
	if a.Min < 0 || (a.Max > 0 && a.Max < a.Min) {
		return nil, fmt.Errorf("%w: length min %d max %d", ErrInvalidAnnotation, a.Min, a.Max)
	}

	key, fallback := a.Kind(), fmt.Sprintf("must be between %d and %d characters", a.Min, a.Max)
	switch {
	case a.Max == 0:
		key, fallback = "length_min", fmt.Sprintf("must be at least %d characters", a.Min)
	case a.Min == a.Max:
		key, fallback = "length_exact", fmt.Sprintf("must be exactly %d characters", a.Min)
	}
	m := newMeta(key, a.Sequence, a.Message, fallback, map[string]any{"min": a.Min, "max": a.Max})

	return newPredicate(m, func(s string) bool {
		if a.Trim {
			s = strings.TrimSpace(s)
		}
		n := utf8.RuneCountInString(s)
		return n >= a.Min && (a.Max == 0 || n <= a.Max)
	}), nil
}
