package validator_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestDefaultTranslator(t *testing.T) {
	t.Parallel()

	tr, err := validator.DefaultTranslator(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "nb"}, tr.SupportedLanguages())
	assert.Equal(t, "nb", tr.Match("nb-NO,nb;q=0.9"))

	assert.Equal(t, "must be at least 8 characters", tr.T("en", "validation.length_min", "min", "8"))
	assert.Equal(t, "må være minst 8 tegn", tr.T("nb", "validation.length_min", "min", "8"))
}

func TestMessagesCoverEveryLanguage(t *testing.T) {
	t.Parallel()

	catalogs := make(map[string]map[string]string)
	err := fs.WalkDir(validator.Messages(), "messages", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := fs.ReadFile(validator.Messages(), path)
		if err != nil {
			return err
		}
		var doc map[string]struct {
			Validation map[string]string `yaml:"validation"`
		}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return err
		}
		for lang, tree := range doc {
			catalogs[lang] = tree.Validation
		}
		return nil
	})
	require.NoError(t, err)
	require.Contains(t, catalogs, "en")

	for lang, keys := range catalogs {
		assert.Len(t, keys, len(catalogs["en"]), "language %s", lang)
		for key := range catalogs["en"] {
			assert.Contains(t, keys, key, "language %s misses %s", lang, key)
		}
	}
}

func TestTranslatedMessages(t *testing.T) {
	t.Parallel()

	tr, err := validator.DefaultTranslator(context.Background())
	require.NoError(t, err)

	form := validator.NewForm().
		Field("name", editText("name", ""), validator.NotEmpty{}).
		Field("code", editText("code", "ab"), validator.Length{Min: 3}).
		Field("email", editText("email", "nope"), validator.Email{Message: "Check the address"})

	v, rec := newValidator(t, form, validator.WithTranslator(tr), validator.WithLanguage("nb"))
	require.NoError(t, v.Validate(context.Background()))

	errs := rec.lastFailure()
	require.Len(t, errs, 3)
	assert.Equal(t, "Dette feltet er påkrevd", errs[0].Message())
	assert.Equal(t, "må være minst 3 tegn", errs[1].Message())
	assert.Equal(t, "Check the address", errs[2].Message(), "custom messages are not translated")

	t.Run("retranslate", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"must be at least 3 characters"}, errs[1].Translate(tr, "en"))
		byField := errs.Translate(tr, "en")
		assert.Equal(t, []string{"This field is required"}, byField["name"])
		assert.Equal(t, []string{"Check the address"}, byField["email"])
	})

	t.Run("without translator", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"This field is required"}, errs[0].Translate(nil, "nb"))
	})

	t.Run("error text", func(t *testing.T) {
		t.Parallel()
		assert.True(t, strings.HasPrefix(errs.Error(), "validation failed: name: "))
		assert.True(t, validator.IsValidationError(errs))
		assert.Len(t, validator.ExtractValidationErrors(errs), 3)
	})
}

func TestTranslatorFallback(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewTranslator(context.Background(), &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {"validation": map[string]any{"email": "bad email"}},
	}})
	require.NoError(t, err)

	form := validator.NewForm().
		Field("email", editText("email", "nope"), validator.Email{}).
		Field("url", editText("url", "nope"), validator.URL{})

	v, rec := newValidator(t, form, validator.WithTranslator(tr))
	require.NoError(t, v.Validate(context.Background()))

	errs := rec.lastFailure()
	require.Len(t, errs, 2)
	assert.Equal(t, "bad email", errs[0].Message())
	assert.Equal(t, "must be a valid URL", errs[1].Message(), "missing keys keep the default message")
}
