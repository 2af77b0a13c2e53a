package validator

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Context gives rules access to the rest of the form. It is shared by every
// rule of a validator and stays valid for the validator lifetime.
type Context struct {
	fields []*Field
	log    *slog.Logger
}

func newContext(form *Form, log *slog.Logger) *Context {
	return &Context{fields: form.all(), log: log}
}

// Logger returns the validator logger, or a discard logger for a nil Context.
func (c *Context) Logger() *slog.Logger {
	if c == nil || c.log == nil {
		return logger.Discard()
	}
	return c.log
}

// Field looks up a declared field by name.
func (c *Context) Field(name string) (*Field, bool) {
	for _, f := range c.fields {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// FieldsAnnotated returns the declared fields carrying an annotation of the
// same type as like, in discovery order.
func (c *Context) FieldsAnnotated(like Annotation) []*Field {
	want := annotationType(like)
	var out []*Field
	for _, f := range c.fields {
		for _, a := range f.annotations {
			if annotationType(a) == want {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// Companion resolves the field a cross-field rule compares against: the field
// called name when set, otherwise the only field annotated like like.
func (c *Context) Companion(name string, like Annotation) (*Field, error) {
	if name != "" {
		f, ok := c.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		return f, nil
	}
	candidates := c.FieldsAnnotated(like)
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: no field carries %s", ErrNoCompanion, like.Kind())
	case 1:
		return candidates[0], nil
	default:
		names := make([]string, len(candidates))
		for i, f := range candidates {
			names[i] = f.name
		}
		return nil, fmt.Errorf("%w: %s on %v", ErrAmbiguousCompanion, like.Kind(), names)
	}
}
