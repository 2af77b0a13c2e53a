package validator

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/widget"
)

// Rule is a single pass/fail predicate over one field value.
type Rule interface {
	Valid(data any) bool
	// Sequence orders rules within a field chain, lowest first.
	Sequence() int
	Message() string
}

// ContextRule is implemented by rules that perform I/O. The engine calls
// ValidContext instead of Valid.
type ContextRule interface {
	Rule
	ValidContext(ctx context.Context, data any) bool
}

// Linker is implemented by rules that depend on other fields. Link runs once,
// after every chain of the form has been built.
type Linker interface {
	Link(c *Context) error
}

// Translatable exposes the i18n key and placeholders of a rule message.
type Translatable interface {
	TranslationKey() string
	TranslationValues() map[string]any
	// CustomMessage is true when the message was set explicitly on the annotation.
	CustomMessage() bool
}

// meta carries what every annotation-backed rule shares.
type meta struct {
	key      string
	sequence int
	message  string
	custom   bool
	values   map[string]any
}

// newMeta builds the shared rule state. key is the translation key suffix,
// usually the annotation kind.
func newMeta(key string, sequence int, custom, fallback string, values map[string]any) meta {
	m := meta{key: key, sequence: sequence, message: fallback, values: values}
	if custom != "" {
		m.message = custom
		m.custom = true
	}
	return m
}

func (m meta) Sequence() int                     { return m.sequence }
func (m meta) Message() string                   { return m.message }
func (m meta) TranslationKey() string            { return "validation." + m.key }
func (m meta) TranslationValues() map[string]any { return m.values }
func (m meta) CustomMessage() bool               { return m.custom }

// predicate is a rule over a single data type.
type predicate[T any] struct {
	meta
	check func(T) bool
}

func (p *predicate[T]) Valid(data any) bool {
	v, ok := data.(T)
	return ok && p.check(v)
}

func newPredicate[T any](m meta, check func(T) bool) *predicate[T] {
	return &predicate[T]{meta: m, check: check}
}

// QuickRule is a rule built in code rather than from an annotation. It
// receives the raw field value: the widget itself for widget fields.
type QuickRule struct {
	check    func(value any) bool
	message  string
	sequence int
}

// NewQuickRule creates a rule from a predicate and a failure message.
func NewQuickRule(message string, check func(value any) bool) *QuickRule {
	return &QuickRule{check: check, message: message}
}

// QuickText creates a quick rule over the text of a text widget or a string field.
func QuickText(message string, check func(text string) bool) *QuickRule {
	return NewQuickRule(message, func(value any) bool {
		switch v := value.(type) {
		case widget.TextInput:
			return check(v.Text())
		case string:
			return check(v)
		case fmt.Stringer:
			return check(v.String())
		default:
			return false
		}
	})
}

// WithSequence sets the position of the rule within the field chain.
func (r *QuickRule) WithSequence(sequence int) *QuickRule {
	r.sequence = sequence
	return r
}

func (r *QuickRule) Valid(value any) bool {
	return r.check != nil && r.check(value)
}

func (r *QuickRule) Sequence() int   { return r.sequence }
func (r *QuickRule) Message() string { return r.message }
