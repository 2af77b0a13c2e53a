package validator

import "reflect"

// Annotation is declarative configuration attached to a form field.
type Annotation interface {
	// Kind is a stable snake_case name used in logs, metrics and
	// translation keys.
	Kind() string
}

// RuleBinder is implemented by annotations that map to a rule.
type RuleBinder interface {
	Annotation
	// DataType is the type the rule consumes, e.g. string for text rules.
	DataType() reflect.Type
	// Bind creates the rule carrying the annotation parameters.
	Bind(c *Context) (Rule, error)
}

// Order assigns a field its position in ordered validation.
type Order struct {
	Value int `yaml:"value"`
}

func (Order) Kind() string { return "order" }

// Optional skips the whole field while its value is absent.
type Optional struct{}

func (Optional) Kind() string { return "optional" }

var (
	stringType  = reflect.TypeFor[string]()
	intType     = reflect.TypeFor[int]()
	float32Type = reflect.TypeFor[float32]()
	float64Type = reflect.TypeFor[float64]()
	boolType    = reflect.TypeFor[bool]()
	anyType     = reflect.TypeFor[any]()
)

// annotationType identifies an annotation by its value type, so T and *T
// share registry entries.
func annotationType(a Annotation) reflect.Type {
	t := reflect.TypeOf(a)
	if t != nil && t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// annotationValue dereferences a pointer annotation whose element type is an
// Annotation itself. ok is false for nil annotations and nil pointers.
func annotationValue(a Annotation) (Annotation, bool) {
	rv := reflect.ValueOf(a)
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Kind() != reflect.Pointer {
		return a, true
	}
	if rv.IsNil() {
		return nil, false
	}
	if v, ok := rv.Elem().Interface().(Annotation); ok {
		return v, true
	}
	return a, true
}

func orderOf(annotations []Annotation) (int, bool) {
	for _, a := range annotations {
		if o, ok := a.(Order); ok {
			return o.Value, true
		}
	}
	return 0, false
}

func hasOptional(annotations []Annotation) bool {
	for _, a := range annotations {
		if _, ok := a.(Optional); ok {
			return true
		}
	}
	return false
}
