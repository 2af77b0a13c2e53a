package validator

import (
	"reflect"

	"github.com/dmitrymomot/formkit/pkg/widget"
)

// AssertTrue requires a true value, e.g. a checked check box.
type AssertTrue struct {
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (AssertTrue) Kind() string           { return "assert_true" }
func (AssertTrue) DataType() reflect.Type { return boolType }

func (a AssertTrue) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be true", nil)
	return newPredicate(m, func(b bool) bool { return b }), nil
}

// AssertFalse requires a false value.
type AssertFalse struct {
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (AssertFalse) Kind() string           { return "assert_false" }
func (AssertFalse) DataType() reflect.Type { return boolType }

func (a AssertFalse) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be false", nil)
	return newPredicate(m, func(b bool) bool { return !b }), nil
}

// Checked requires a checked widget, or an unchecked one when Unchecked is set.
// On a radio group it requires any button to be checked.
type Checked struct {
	Unchecked bool   `yaml:"unchecked"`
	Sequence  int    `yaml:"sequence"`
	Message   string `yaml:"message"`
}

func (Checked) Kind() string           { return "checked" }
func (Checked) DataType() reflect.Type { return boolType }

func (a Checked) Bind(*Context) (Rule, error) {
	key, fallback := a.Kind(), "must be checked"
	if a.Unchecked {
		key, fallback = "unchecked", "must not be checked"
	}
	m := newMeta(key, a.Sequence, a.Message, fallback, nil)
	return newPredicate(m, func(b bool) bool { return b != a.Unchecked }), nil
}

// Select requires a spinner selection other than DefaultSelection, which is
// usually a "Select…" placeholder at position 0.
type Select struct {
	DefaultSelection int    `yaml:"default_selection"`
	Sequence         int    `yaml:"sequence"`
	Message          string `yaml:"message"`
}

func (Select) Kind() string           { return "select" }
func (Select) DataType() reflect.Type { return intType }

func (a Select) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must select a value", nil)
	return newPredicate(m, func(pos int) bool {
		return pos != a.DefaultSelection && pos != widget.InvalidPosition
	}), nil
}
