package lookup

import (
	"strings"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

type options struct {
	fold bool
}

// Option configures a checker.
type Option func(*options)

// FoldCase makes lookups case-insensitive. Stored values must be folded the
// same way, e.g. with Fold.
func FoldCase() Option {
	return func(o *options) { o.fold = true }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) key(value string) string {
	value = strings.TrimSpace(value)
	if o.fold {
		return Fold(value)
	}
	return value
}

// Fold returns the normalization applied to values by checkers created
// with FoldCase.
func Fold(s string) string {
	return sanitizer.Fold(s)
}
