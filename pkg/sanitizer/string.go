package sanitizer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	dotRegex        = regexp.MustCompile(`\.+`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
)

func Trim(s string) string    { return strings.TrimSpace(s) }
func ToLower(s string) string { return strings.ToLower(s) }
func ToUpper(s string) string { return strings.ToUpper(s) }

// Fold applies Unicode case folding, for case-insensitive comparison keys.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Title capitalizes the first letter of every word, e.g. for person names.
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// NFC composes characters so that visually equal input compares equal:
// "é" becomes "é".
func NFC(s string) string {
	return norm.NFC.String(s)
}

// NormalizeWhitespace collapses whitespace runs (newlines included) into a
// single space and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// SingleLine joins a multi-line string into one line.
func SingleLine(s string) string {
	return NormalizeWhitespace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

// StripControl removes control characters other than tab and newline.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' {
			return -1
		}
		return r
	}, s)
}

// KeepDigits keeps only numeric digits.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
