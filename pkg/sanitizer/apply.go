package sanitizer

import (
	"fmt"
	"sort"
)

// Apply creates functional composition pipeline for sanitization transformations.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value
	for _, transform := range transforms {
		result = transform(result)
	}
	return result
}

// Compose creates reusable sanitization pipelines that can be stored and reused.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}

var named = map[string]func(string) string{
	"trim":        Trim,
	"lower":       ToLower,
	"upper":       ToUpper,
	"fold":        Fold,
	"title":       Title,
	"nfc":         NFC,
	"control":     StripControl,
	"whitespace":  NormalizeWhitespace,
	"single_line": SingleLine,
	"digits":      KeepDigits,
	"email":       NormalizeEmail,
	"credit_card": NormalizeCreditCard,
	"isbn":        NormalizeISBN,
}

// ByName resolves named helpers into a single pipeline.
func ByName(names ...string) (func(string) string, error) {
	fns := make([]func(string) string, 0, len(names))
	for _, n := range names {
		fn, ok := named[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownSanitizer, n, Names())
		}
		fns = append(fns, fn)
	}
	return Compose(fns...), nil
}

// Names lists the helpers available to ByName.
func Names() []string {
	out := make([]string, 0, len(named))
	for n := range named {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
