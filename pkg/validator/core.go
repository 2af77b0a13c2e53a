package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/widget"
)

// ValidationError lists the rules a single field failed, in chain order.
type ValidationError struct {
	Field string
	// View is nil for plain value fields.
	View        widget.View
	FailedRules []Rule
	// Messages holds one message per failed rule, translated when the
	// validator has a translator.
	Messages []string
}

// Message returns the message of the first failed rule.
func (e ValidationError) Message() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	if len(e.FailedRules) > 0 {
		return e.FailedRules[0].Message()
	}
	return ""
}

// Translate returns the messages of the failed rules in lang. Rules with a
// custom message keep it untranslated.
func (e ValidationError) Translate(tr *i18n.Translator, lang string) []string {
	out := make([]string, 0, len(e.FailedRules))
	for _, r := range e.FailedRules {
		out = append(out, translate(tr, lang, r))
	}
	return out
}

func translate(tr *i18n.Translator, lang string, r Rule) string {
	t, ok := r.(Translatable)
	if tr == nil || !ok || t.CustomMessage() {
		return r.Message()
	}
	values := t.TranslationValues()
	args := make([]string, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, fmt.Sprint(v))
	}
	return tr.Td(lang, t.TranslationKey(), r.Message(), args...)
}

// ValidationErrors is the ordered list of failed fields of one pass.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, strings.Join(err.messages(), ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	for _, err := range ve {
		if err.Field == field {
			return err.messages()
		}
	}
	return nil
}

// Fields returns failed field names in report order.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, err := range ve {
		fields = append(fields, err.Field)
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Translate maps every failed field to its messages in lang.
func (ve ValidationErrors) Translate(tr *i18n.Translator, lang string) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, err := range ve {
		out[err.Field] = err.Translate(tr, lang)
	}
	return out
}

func (e ValidationError) messages() []string {
	if len(e.Messages) > 0 {
		return e.Messages
	}
	out := make([]string, 0, len(e.FailedRules))
	for _, r := range e.FailedRules {
		out = append(out, r.Message())
	}
	return out
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// Report is the immutable outcome of one evaluation pass.
type Report struct {
	Errors ValidationErrors
	// HasMoreErrors is set when fields after the ValidateTill target failed.
	// Those failures are not part of Errors.
	HasMoreErrors bool
}

// Succeeded reports whether the pass found no failure at all.
func (r *Report) Succeeded() bool {
	return len(r.Errors) == 0 && !r.HasMoreErrors
}

// Err returns the errors as an error value, or nil on success. A report with
// only HasMoreErrors set yields an empty ValidationErrors.
func (r *Report) Err() error {
	if r.Succeeded() {
		return nil
	}
	return r.Errors
}
