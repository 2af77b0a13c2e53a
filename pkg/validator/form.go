package validator

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/formkit/pkg/widget"
)

// Form declares the fields a validator works on. Forms can be extended to
// model a controller hierarchy: parent fields are discovered first.
//
//	base := validator.NewForm().
//	    Field("email", emailInput, validator.Order{Value: 1}, validator.Email{})
//	signup := base.Extend().
//	    Field("password", passwordInput, validator.Order{Value: 2}, validator.Password{})
type Form struct {
	parent *Form
	fields []*Field
}

// NewForm creates an empty root form.
func NewForm() *Form {
	return &Form{}
}

// Extend creates a child form inheriting every field of f.
func (f *Form) Extend() *Form {
	return &Form{parent: f}
}

// Field declares a field. ref is either a widget.View or a non-nil pointer to
// a plain value. Invalid references are reported when the validator scans the form.
func (f *Form) Field(name string, ref any, annotations ...Annotation) *Form {
	normalized := make([]Annotation, len(annotations))
	for i, a := range annotations {
		// nil entries stay nil and are reported by validate
		normalized[i], _ = annotationValue(a)
	}
	fd := &Field{name: name, ref: ref, annotations: normalized}
	if v, ok := ref.(widget.View); ok && !isNilValue(ref) {
		fd.view = v
	}
	fd.order, fd.ordered = orderOf(normalized)
	f.fields = append(f.fields, fd)
	return f
}

// all returns the fields from the root form down to f.
func (f *Form) all() []*Field {
	var chain []*Form
	for cur := f; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	var out []*Field
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].fields...)
	}
	return out
}

// Field is one declared form field.
type Field struct {
	name        string
	ref         any
	view        widget.View
	annotations []Annotation
	order       int
	ordered     bool
}

func (f *Field) Name() string { return f.name }

// View returns the widget of a widget field, or nil.
func (f *Field) View() widget.View { return f.view }

func (f *Field) IsView() bool { return f.view != nil }

// Order returns the Order value and whether the field carries one.
func (f *Field) Order() (int, bool) { return f.order, f.ordered }

func (f *Field) Annotations() []Annotation { return f.annotations }

// Type returns the static type of the field: the widget type or the pointed-to type.
func (f *Field) Type() reflect.Type {
	if f.view != nil {
		return reflect.TypeOf(f.view)
	}
	t := reflect.TypeOf(f.ref)
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// Value returns the live value: the widget itself, or the value the pointer
// refers to at call time.
func (f *Field) Value() any {
	if f.view != nil {
		return f.view
	}
	rv := reflect.ValueOf(f.ref)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil
	}
	return rv.Elem().Interface()
}

// Text returns the text of a text widget or of a string-like plain field.
func (f *Field) Text() (string, bool) {
	switch v := f.Value().(type) {
	case widget.TextInput:
		return v.Text(), true
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

func (f *Field) isZero() bool {
	rv := reflect.ValueOf(f.ref)
	return rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().IsZero()
}

func (f *Field) validate() error {
	for i, a := range f.annotations {
		if a == nil {
			return fmt.Errorf("%w: field %q: annotation %d", ErrNilArgument, f.name, i)
		}
	}
	if f.view != nil {
		return nil
	}
	rv := reflect.ValueOf(f.ref)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: field %q: want widget.View or non-nil pointer, got %T", ErrInvalidFieldRef, f.name, f.ref)
	}
	return nil
}

func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
