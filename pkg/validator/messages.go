package validator

import (
	"context"
	"embed"

	"github.com/dmitrymomot/formkit/pkg/i18n"
)

//go:embed messages/*.yaml
var messagesFS embed.FS

// Messages returns the built-in message catalog, one YAML file per language.
// Every key lives under "validation.".
func Messages() embed.FS { return messagesFS }

// DefaultTranslator loads the built-in messages. Options are passed on to
// i18n.NewTranslator.
func DefaultTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), messagesFS, "messages"), opts...)
}
