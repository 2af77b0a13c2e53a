package formspec

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/lookup"
	"github.com/dmitrymomot/formkit/pkg/sanitizer"
	"github.com/dmitrymomot/formkit/pkg/validator"
	"github.com/dmitrymomot/formkit/pkg/widget"
)

// Widget types accepted in Field.Widget.
const (
	WidgetEditText    = "edit_text"
	WidgetTextView    = "text_view"
	WidgetCheckBox    = "check_box"
	WidgetRadioButton = "radio_button"
	WidgetRadioGroup  = "radio_group"
	WidgetSpinner     = "spinner"
	WidgetPlain       = "plain"
)

// Lookup backend types accepted in Lookup.Type.
const (
	LookupMemory   = "memory"
	LookupRedis    = "redis"
	LookupPostgres = "postgres"
	LookupMongo    = "mongo"
)

// Backends supplies connections for redis, postgres and mongo lookups. Each
// may be nil when the spec does not use it.
type Backends struct {
	Redis    lookup.RedisClient
	Postgres lookup.Querier
	Mongo    *mongo.Database
}

// Form is a spec materialized into live widgets and a validator form.
type Form struct {
	Form *validator.Form
	// Mode is the spec's mode, or nil when the spec leaves it to the caller.
	Mode *validator.Mode
	// Fields lists field names in declaration order.
	Fields []string
	// Views maps widget field names to their widgets.
	Views map[string]widget.View
	// Values maps plain field names to the pointers registered with the form.
	Values map[string]any
}

// Build creates the widgets, checkers and form declared by s.
func Build(s *Spec, b Backends) (*Form, error) {
	checkers := make(map[string]validator.Checker, len(s.Lookups))
	for name, l := range s.Lookups {
		c, err := buildLookup(l, b)
		if err != nil {
			return nil, fmt.Errorf("lookup %q: %w", name, err)
		}
		checkers[name] = c
	}

	out := &Form{
		Form:   validator.NewForm(),
		Mode:   s.Mode,
		Views:  make(map[string]widget.View),
		Values: make(map[string]any),
	}
	for _, f := range s.Fields {
		ref, err := buildRef(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		annotations := make([]validator.Annotation, 0, len(f.Rules))
		for _, r := range f.Rules {
			a, err := decodeRule(r)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			if u, ok := a.(validator.Unique); ok {
				if r.Lookup == "" {
					return nil, fmt.Errorf("%w: field %q: unique rule needs a lookup", ErrInvalidSpec, f.Name)
				}
				u.Checker = checkers[r.Lookup]
				a = u
			}
			annotations = append(annotations, a)
		}

		out.Form.Field(f.Name, ref, annotations...)
		out.Fields = append(out.Fields, f.Name)
		if v, ok := ref.(widget.View); ok {
			out.Views[f.Name] = v
		} else {
			out.Values[f.Name] = ref
		}
	}
	return out, nil
}

func buildLookup(l Lookup, b Backends) (validator.Checker, error) {
	var opts []lookup.Option
	if l.FoldCase {
		opts = append(opts, lookup.FoldCase())
	}
	switch l.Type {
	case LookupMemory, "":
		return lookup.NewMemorySet(l.Values, opts...), nil
	case LookupRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("%w: %s", ErrLookupNotWired, l.Type)
		}
		return lookup.NewRedisSet(b.Redis, l.Key, opts...)
	case LookupPostgres:
		if b.Postgres == nil {
			return nil, fmt.Errorf("%w: %s", ErrLookupNotWired, l.Type)
		}
		return lookup.NewPostgresColumn(b.Postgres, l.Table, l.Column, opts...)
	case LookupMongo:
		if b.Mongo == nil {
			return nil, fmt.Errorf("%w: %s", ErrLookupNotWired, l.Type)
		}
		if strings.TrimSpace(l.Collection) == "" {
			return nil, fmt.Errorf("%w: mongo lookup without collection", ErrInvalidSpec)
		}
		return lookup.NewMongoCollection(b.Mongo.Collection(l.Collection), l.Field, opts...)
	default:
		return nil, fmt.Errorf("%w: lookup type %q", ErrInvalidSpec, l.Type)
	}
}

func buildRef(f Field) (any, error) {
	clean, err := sanitizer.ByName(f.Sanitize...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSanitize, err)
	}

	switch f.Widget {
	case WidgetEditText, "":
		text, err := scalarText(&f.Value)
		if err != nil {
			return nil, err
		}
		e := widget.NewEditText(f.Name).WithHint(f.Hint)
		e.SetText(clean(text))
		return e, nil
	case WidgetTextView:
		text, err := scalarText(&f.Value)
		if err != nil {
			return nil, err
		}
		return widget.NewTextView(f.Name, clean(text)), nil
	}

	if len(f.Sanitize) > 0 && f.Widget != WidgetPlain {
		return nil, fmt.Errorf("%w: %s is not a text widget", ErrInvalidSanitize, f.Widget)
	}

	switch f.Widget {
	case WidgetCheckBox:
		c := widget.NewCheckBox(f.Name)
		c.SetChecked(f.Checked)
		return c, nil
	case WidgetRadioButton:
		r := widget.NewRadioButton(f.Name)
		r.SetChecked(f.Checked)
		return r, nil
	case WidgetRadioGroup:
		return buildRadioGroup(f)
	case WidgetSpinner:
		s := widget.NewSpinner(f.Name, f.Items...)
		if f.Selected != nil {
			if *f.Selected < 0 || *f.Selected >= len(f.Items) {
				return nil, fmt.Errorf("%w: selection %d out of range", ErrInvalidSpec, *f.Selected)
			}
			s.SetSelection(*f.Selected)
		}
		return s, nil
	case WidgetPlain:
		return plainRef(&f.Value, clean)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, f.Widget)
	}
}

func buildRadioGroup(f Field) (*widget.RadioGroup, error) {
	buttons := make([]*widget.RadioButton, len(f.Buttons))
	for i, id := range f.Buttons {
		buttons[i] = widget.NewRadioButton(id)
	}
	g := widget.NewRadioGroup(f.Name, buttons...)

	checked, err := scalarText(&f.Value)
	if err != nil {
		return nil, err
	}
	if checked == "" {
		return g, nil
	}
	if !slices.Contains(f.Buttons, checked) {
		return nil, fmt.Errorf("%w: %q is not one of %v", ErrInvalidSpec, checked, f.Buttons)
	}
	g.Check(checked)
	return g, nil
}

func scalarText(n *yaml.Node) (string, error) {
	if n.Kind == 0 {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: line %d: value must be a scalar", ErrInvalidSpec, n.Line)
	}
	return n.Value, nil
}

// plainRef decodes a scalar into its natural Go type and returns a pointer
// to it: int, float64, bool or string.
func plainRef(n *yaml.Node, clean func(string) string) (any, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("%w: plain field needs a scalar value", ErrInvalidSpec)
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case nil:
		v = ""
	case string:
		v = clean(x)
	}
	ptr := reflect.New(reflect.TypeOf(v))
	ptr.Elem().Set(reflect.ValueOf(v))
	return ptr.Interface(), nil
}
