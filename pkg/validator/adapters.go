package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/widget"
)

// ViewDataAdapter extracts a typed value from a widget.
type ViewDataAdapter interface {
	// Data returns a value of DataType or a *ConversionError.
	Data(view widget.View) (any, error)
	DataType() reflect.Type
}

// AbsenceDetector is implemented by adapters able to tell that a widget holds
// no value. Optional fields are skipped while their widget is absent.
type AbsenceDetector interface {
	IsAbsent(view widget.View, annotation Annotation) bool
}

// NewAdapter builds an adapter for widgets of type V producing values of type D.
//
//	validator.NewAdapter(func(e *widget.EditText) (bool, error) {
//	    return strconv.ParseBool(e.Text())
//	})
func NewAdapter[V widget.View, D any](fn func(view V) (D, error)) ViewDataAdapter {
	return &funcAdapter[V, D]{fn: fn}
}

type funcAdapter[V widget.View, D any] struct {
	fn func(V) (D, error)
}

func (a *funcAdapter[V, D]) Data(view widget.View) (any, error) {
	v, ok := view.(V)
	if !ok {
		return nil, conversionError(view, a.DataType(), fmt.Errorf("unexpected widget %T", view))
	}
	d, err := a.fn(v)
	if err != nil {
		return nil, conversionError(view, a.DataType(), err)
	}
	return d, nil
}

func (a *funcAdapter[V, D]) DataType() reflect.Type { return reflect.TypeFor[D]() }

func conversionError(view widget.View, t reflect.Type, err error) *ConversionError {
	id := ""
	if view != nil {
		id = view.ID()
	}
	return &ConversionError{View: id, DataType: t, Err: err}
}

// textAdapter reads a TextInput and parses its content.
type textAdapter struct {
	dataType reflect.Type
	parse    func(string) (any, error)
}

func (a *textAdapter) Data(view widget.View) (any, error) {
	in, ok := view.(widget.TextInput)
	if !ok {
		return nil, conversionError(view, a.dataType, fmt.Errorf("%T is not a text input", view))
	}
	v, err := a.parse(in.Text())
	if err != nil {
		return nil, conversionError(view, a.dataType, err)
	}
	return v, nil
}

func (a *textAdapter) DataType() reflect.Type { return a.dataType }

// IsAbsent reports blank text as absent.
func (a *textAdapter) IsAbsent(view widget.View, _ Annotation) bool {
	in, ok := view.(widget.TextInput)
	return ok && strings.TrimSpace(in.Text()) == ""
}

var (
	textStringAdapter = &textAdapter{
		dataType: stringType,
		parse:    func(s string) (any, error) { return s, nil },
	}
	textIntAdapter = &textAdapter{
		dataType: intType,
		parse: func(s string) (any, error) {
			return strconv.Atoi(strings.TrimSpace(s))
		},
	}
	textFloat32Adapter = &textAdapter{
		dataType: float32Type,
		parse: func(s string) (any, error) {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			return float32(f), err
		},
	}
	textFloat64Adapter = &textAdapter{
		dataType: float64Type,
		parse: func(s string) (any, error) {
			return strconv.ParseFloat(strings.TrimSpace(s), 64)
		},
	}
)

// CheckableBoolAdapter reads the checked state of check boxes and radio buttons.
var CheckableBoolAdapter ViewDataAdapter = NewAdapter(func(c widget.Checkable) (bool, error) {
	return c.IsChecked(), nil
})

// RadioGroupBoolAdapter reports whether any button of a group is checked.
var RadioGroupBoolAdapter ViewDataAdapter = NewAdapter(func(g *widget.RadioGroup) (bool, error) {
	return g.CheckedID() != "", nil
})

// SpinnerIndexAdapter reads the selected position of a spinner.
var SpinnerIndexAdapter ViewDataAdapter = NewAdapter(func(s *widget.Spinner) (int, error) {
	return s.SelectedPosition(), nil
})
