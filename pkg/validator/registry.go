package validator

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/widget"
)

var textInputType = reflect.TypeFor[widget.TextInput]()

type adapterEntry struct {
	widget  reflect.Type
	adapter ViewDataAdapter
}

// Registry maps annotation types to their rules and to the adapters that feed
// them from widgets. Populate it at start-up and share it between validators.
type Registry struct {
	mu          sync.RWMutex
	annotations map[reflect.Type]struct{}
	// adapters is keyed by annotation type and kept in registration order.
	adapters     map[reflect.Type][]adapterEntry
	textAdapters map[reflect.Type]ViewDataAdapter
}

// NewEmptyRegistry returns a registry that knows the text adapters but no
// annotation.
func NewEmptyRegistry() *Registry {
	return &Registry{
		annotations: make(map[reflect.Type]struct{}),
		adapters:    make(map[reflect.Type][]adapterEntry),
		textAdapters: map[reflect.Type]ViewDataAdapter{
			stringType:  textStringAdapter,
			intType:     textIntAdapter,
			float32Type: textFloat32Adapter,
			float64Type: textFloat64Adapter,
		},
	}
}

// NewRegistry returns a registry with every built-in annotation and adapter.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	must(r.RegisterAdapter(reflect.TypeFor[*widget.CheckBox](), CheckableBoolAdapter,
		AssertFalse{}, AssertTrue{}, Checked{}))
	must(r.RegisterAdapter(reflect.TypeFor[*widget.RadioGroup](), RadioGroupBoolAdapter,
		Checked{}))
	must(r.RegisterAdapter(reflect.TypeFor[*widget.RadioButton](), CheckableBoolAdapter,
		AssertFalse{}, AssertTrue{}, Checked{}))
	must(r.RegisterAdapter(reflect.TypeFor[*widget.Spinner](), SpinnerIndexAdapter,
		Select{}))

	must(r.Register(DecimalMax{}, DecimalMin{}))
	must(r.Register(Max{}, Min{}))
	must(r.Register(
		ConfirmEmail{}, ConfirmPassword{}, CreditCard{},
		Digits{}, Domain{}, Email{}, Future{},
		IPAddress{}, ISBN{}, Length{}, NotEmpty{},
		Password{}, Past{}, Pattern{}, URL{},
		UUID{}, URN{}, Tag{}, Unique{},
	))
	return r
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Register adds rule annotations. Annotations whose data type has a text
// adapter become applicable to every widget.TextInput.
func (r *Registry) Register(annotations ...Annotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range annotations {
		if err := r.register(a); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) register(a Annotation) error {
	binder, err := ruleBinder(a)
	if err != nil {
		return err
	}
	t := annotationType(binder)
	r.annotations[t] = struct{}{}
	if adapter, ok := r.textAdapters[binder.DataType()]; ok {
		r.addEntry(t, textInputType, adapter)
	}
	return nil
}

// RegisterAdapter associates adapter with widgetType, which may be an
// interface type, and makes each annotation applicable to that widget through
// it. The annotations are registered as with Register.
func (r *Registry) RegisterAdapter(widgetType reflect.Type, adapter ViewDataAdapter, annotations ...Annotation) error {
	if widgetType == nil {
		return fmt.Errorf("%w: widget type", ErrNilArgument)
	}
	if adapter == nil {
		return fmt.Errorf("%w: adapter", ErrNilArgument)
	}

	binders := make([]RuleBinder, 0, len(annotations))
	for _, a := range annotations {
		binder, err := ruleBinder(a)
		if err != nil {
			return err
		}
		if want := binder.DataType(); !adapter.DataType().AssignableTo(want) {
			return fmt.Errorf("%w: %s produces %s, %s consumes %s",
				ErrAdapterMismatch, widgetType, adapter.DataType(), binder.Kind(), want)
		}
		binders = append(binders, binder)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range binders {
		if err := r.register(b); err != nil {
			return err
		}
		r.addEntry(annotationType(b), widgetType, adapter)
	}
	return nil
}

// ruleBinder checks that a is a usable rule annotation, dereferencing
// pointers.
func ruleBinder(a Annotation) (RuleBinder, error) {
	v, ok := annotationValue(a)
	if !ok {
		return nil, fmt.Errorf("%w: annotation", ErrNilArgument)
	}
	binder, ok := v.(RuleBinder)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNoRuleBinding, a)
	}
	return binder, nil
}

// Must be called with lock held.
func (r *Registry) addEntry(annotation, widgetType reflect.Type, adapter ViewDataAdapter) {
	entries := r.adapters[annotation]
	for i, e := range entries {
		if e.widget == widgetType {
			entries[i].adapter = adapter
			return
		}
	}
	r.adapters[annotation] = append(entries, adapterEntry{widget: widgetType, adapter: adapter})
}

// IsRegistered reports whether the annotation type is known.
func (r *Registry) IsRegistered(a Annotation) bool {
	if a == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.annotations[annotationType(a)]
	return ok
}

// AdapterFor returns the adapter feeding annotation a from widgets of type
// widgetType. An exact widget type match wins over an interface match.
func (r *Registry) AdapterFor(a Annotation, widgetType reflect.Type) (ViewDataAdapter, bool) {
	if a == nil || widgetType == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.adapters[annotationType(a)]
	for _, e := range entries {
		if e.widget == widgetType {
			return e.adapter, true
		}
	}
	for _, e := range entries {
		if e.widget.Kind() == reflect.Interface && widgetType.Implements(e.widget) {
			return e.adapter, true
		}
	}
	return nil, false
}
