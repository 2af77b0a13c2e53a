package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// DefaultLanguage is used when no language is configured.
const DefaultLanguage = "en"

// Translator resolves dot-separated keys into localized templates and fills
// %{name} placeholders.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	mu             sync.RWMutex
	matcher        language.Matcher
	tags           []string
}

// NewTranslator loads translations through adapter and applies options.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, m := range translations {
		if lang == "" {
			return nil, ErrEmptyLanguage
		}
		if m == nil {
			return nil, fmt.Errorf("%w: %s", ErrNilTranslations, lang)
		}
	}

	t.translations = translations
	t.buildMatcher()
	t.logger.DebugContext(ctx, "translations loaded", "languages", t.tags)
	return t, nil
}

// buildMatcher indexes supported languages with the default one first so that
// it wins when nothing matches.
func (t *Translator) buildMatcher() {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		if lang != t.defaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	langs = append([]string{t.defaultLang}, langs...)

	tags := make([]language.Tag, 0, len(langs))
	names := make([]string, 0, len(langs))
	for _, l := range langs {
		tag, err := language.Parse(l)
		if err != nil {
			t.logger.Warn("skipping unparsable language tag", "lang", l, logger.Error(err))
			continue
		}
		tags = append(tags, tag)
		names = append(names, l)
	}
	t.matcher = language.NewMatcher(tags)
	t.tags = names
}

// SupportedLanguages returns the language codes that have translations.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Match picks the best supported language for the given preferences, which may
// be BCP 47 tags or Accept-Language style lists ("nb-NO,en;q=0.5").
// Falls back to the default language.
func (t *Translator) Match(preferred ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var want []language.Tag
	for _, p := range preferred {
		if p == "" {
			continue
		}
		if tags, _, err := language.ParseAcceptLanguage(p); err == nil {
			want = append(want, tags...)
		}
	}
	if len(want) == 0 || len(t.tags) == 0 {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(want...)
	if conf == language.No || idx >= len(t.tags) {
		return t.defaultLang
	}
	return t.tags[idx]
}

// HasTranslation checks if a translation exists for the given language and key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	langMap, ok := t.translations[lang]
	if !ok {
		return false
	}
	_, ok = lookup(langMap, key)
	return ok
}

// T translates key for lang, substituting "%{name}" with the matching value from
// args given as key/value pairs.
//
//	// "validation.length": "must be between %{min} and %{max} characters"
//	t.T("en", "validation.length", "min", "2", "max", "8")
//
// When the translation is missing the key itself is returned (or an empty
// string when WithFallbackToKey(false) is set).
func (t *Translator) T(lang, key string, args ...string) string {
	s, ok := t.resolve(lang, key)
	if !ok {
		if t.fallbackToKey {
			return sprintf(key, args)
		}
		return ""
	}
	return sprintf(s, args)
}

// Td translates key with an explicit fallback template.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	s, ok := t.resolve(lang, key)
	if !ok {
		return sprintf(defaultValue, args)
	}
	return sprintf(s, args)
}

func (t *Translator) resolve(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langMap, ok := t.translations[lang]
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("language not supported", "lang", lang, "key", key)
		}
		return "", false
	}
	val, ok := lookup(langMap, key)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("translation not found", "lang", lang, "key", key)
		}
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	default:
		if t.missingLogMode {
			t.logger.Warn("translation is not a string", "lang", lang, "key", key, "type", fmt.Sprintf("%T", v))
		}
		return "", false
	}
}

// lookup traverses nested maps using dot-separated keys. A flat key containing
// dots is tried first.
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}

	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		next, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return next, true
		}
		switch nm := next.(type) {
		case map[string]any:
			current = nm
		case map[any]any:
			current = make(map[string]any, len(nm))
			for k, v := range nm {
				if ks, ok := k.(string); ok {
					current[ks] = v
				}
			}
		default:
			return nil, false
		}
	}
	return nil, false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// sprintf replaces %{name} placeholders. Unknown placeholders are kept; an odd
// trailing argument is ignored.
func sprintf(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// IsConfigError reports whether err was returned for an invalid translation set.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNilAdapter) || errors.Is(err, ErrEmptyLanguage) || errors.Is(err, ErrNilTranslations)
}
