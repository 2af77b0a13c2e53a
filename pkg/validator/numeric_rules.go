package validator

import (
	"fmt"
	"math"
	"reflect"
)

// Min requires an integer greater than or equal to Value.
type Min struct {
	Value    int    `yaml:"value"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (Min) Kind() string           { return "min" }
func (Min) DataType() reflect.Type { return intType }

func (a Min) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message,
		fmt.Sprintf("must be greater than or equal to %d", a.Value), map[string]any{"min": a.Value})
	return newPredicate(m, func(n int) bool { return n >= a.Value }), nil
}

// Max requires an integer less than or equal to Value.
type Max struct {
	Value    int    `yaml:"value"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (Max) Kind() string           { return "max" }
func (Max) DataType() reflect.Type { return intType }

func (a Max) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message,
		fmt.Sprintf("must be less than or equal to %d", a.Value), map[string]any{"max": a.Value})
	return newPredicate(m, func(n int) bool { return n <= a.Value }), nil
}

// DecimalMin requires a number greater than (or equal to, when Inclusive) Value.
type DecimalMin struct {
	Value     float64 `yaml:"value"`
	Inclusive bool    `yaml:"inclusive"`
	Sequence  int     `yaml:"sequence"`
	Message   string  `yaml:"message"`
}

func (DecimalMin) Kind() string           { return "decimal_min" }
func (DecimalMin) DataType() reflect.Type { return float64Type }

func (a DecimalMin) Bind(*Context) (Rule, error) {
	if math.IsNaN(a.Value) {
		return nil, fmt.Errorf("%w: decimal min is NaN", ErrInvalidAnnotation)
	}
	key, fallback := a.Kind(), fmt.Sprintf("must be greater than %g", a.Value)
	if a.Inclusive {
		key, fallback = "decimal_min_inclusive", fmt.Sprintf("must be greater than or equal to %g", a.Value)
	}
	m := newMeta(key, a.Sequence, a.Message, fallback, map[string]any{"min": a.Value})
	return newPredicate(m, func(f float64) bool {
		if math.IsNaN(f) {
			return false
		}
		return f > a.Value || (a.Inclusive && f == a.Value)
	}), nil
}

// DecimalMax requires a number less than (or equal to, when Inclusive) Value.
type DecimalMax struct {
	Value     float64 `yaml:"value"`
	Inclusive bool    `yaml:"inclusive"`
	Sequence  int     `yaml:"sequence"`
	Message   string  `yaml:"message"`
}

func (DecimalMax) Kind() string           { return "decimal_max" }
func (DecimalMax) DataType() reflect.Type { return float64Type }

func (a DecimalMax) Bind(*Context) (Rule, error) {
	if math.IsNaN(a.Value) {
		return nil, fmt.Errorf("%w: decimal max is NaN", ErrInvalidAnnotation)
	}
	key, fallback := a.Kind(), fmt.Sprintf("must be less than %g", a.Value)
	if a.Inclusive {
		key, fallback = "decimal_max_inclusive", fmt.Sprintf("must be less than or equal to %g", a.Value)
	}
	m := newMeta(key, a.Sequence, a.Message, fallback, map[string]any{"max": a.Value})
	return newPredicate(m, func(f float64) bool {
		if math.IsNaN(f) {
			return false
		}
		return f < a.Value || (a.Inclusive && f == a.Value)
	}), nil
}
