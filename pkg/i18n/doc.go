// Package i18n translates message keys into localized text.
//
// A Translator is built from a TranslationAdapter (MapAdapter, FileAdapter or
// FSAdapter for embedded files) whose content is decoded by a Parser (YAML or
// JSON). Translation trees are nested maps addressed with dot-separated keys;
// templates use %{name} placeholders filled from key/value arguments:
//
//	//go:embed messages
//	var messages embed.FS
//
//	tr, err := i18n.NewTranslator(ctx,
//	    i18n.NewFSAdapter(i18n.NewYAMLParser(), messages, "messages"),
//	    i18n.WithDefaultLanguage("en"),
//	)
//
//	lang := tr.Match("nb-NO,nb;q=0.9,en;q=0.5")
//	msg := tr.T(lang, "validation.length", "min", "2", "max", "8")
//
// Match negotiates the best supported language with golang.org/x/text/language
// and falls back to the default language.
//
// Missing translations fall back to the key itself unless
// WithFallbackToKey(false) is set; Td takes an explicit fallback template.
package i18n
