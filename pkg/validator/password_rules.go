package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?~` + "`" + `]`)
)

// commonPasswords holds frequently compromised passwords, lowercased.
var commonPasswords = func() map[string]struct{} {
	list := []string{
		"000000", "111111", "123123", "1234", "12341234", "12345", "123456", "12345678",
		"123456789", "1234567890", "123asd", "123qwe", "123zxc", "1q2w3e4r", "1qaz2wsx", "654321",
		"987654321", "a1b2c3", "aa123456", "abc123", "abcd1234", "abcdef", "admin", "admin123",
		"administrator", "amanda", "amazon", "america", "andrew", "android", "apple", "asd123",
		"asdfghjkl", "ashley", "autumn", "banana", "baseball", "basketball", "batman", "brittany",
		"charlie", "chocolate", "christopher", "computer", "daniel", "david", "diamond", "donald",
		"dragon", "eagle", "facebook", "flower", "football", "freedom", "golden", "golf",
		"google", "guest", "hannah", "hockey", "hunter", "iloveyou", "instagram", "internet",
		"iphone", "jackson", "jennifer", "jessica", "jordan", "joshua", "letmein", "linkedin",
		"login", "madison", "master", "matthew", "michael", "microsoft", "midnight", "monkey",
		"nicole", "nintendo", "orange", "pass", "password", "password!", "password1",
		"password12", "password123", "pokemon", "princess", "purple", "qazwsx", "qazxsw",
		"qwe123", "qwerty", "qwerty1", "qwerty12", "qwerty123", "qwertyuiop", "rainbow", "root",
		"samantha", "samsung", "sarah", "secret", "shadow", "silver", "soccer", "spiderman",
		"spring", "summer", "sunshine", "superman", "taylor", "tennis", "test", "testing", "toor",
		"trustno1", "twitter", "tyler", "user", "vanilla", "welcome", "windows", "winter",
		"yellow", "zaq12wsx", "zxc123", "zxcvbnm",
	}
	set := make(map[string]struct{}, len(list))
	for _, p := range list {
		set[p] = struct{}{}
	}
	return set
}()

// PasswordScheme names the character classes a password must contain.
type PasswordScheme string

const (
	SchemeAny                          PasswordScheme = "any"
	SchemeAlpha                        PasswordScheme = "alpha"
	SchemeAlphaMixedCase               PasswordScheme = "alpha_mixed_case"
	SchemeNumeric                      PasswordScheme = "numeric"
	SchemeAlphaNumeric                 PasswordScheme = "alpha_numeric"
	SchemeAlphaNumericMixedCase        PasswordScheme = "alpha_numeric_mixed_case"
	SchemeAlphaNumericSymbols          PasswordScheme = "alpha_numeric_symbols"
	SchemeAlphaNumericMixedCaseSymbols PasswordScheme = "alpha_numeric_mixed_case_symbols"
)

type passwordClasses struct {
	letter, upper, lower, digit, special bool
	onlyLetters, onlyDigits              bool
}

var passwordSchemes = map[PasswordScheme]passwordClasses{
	SchemeAny:                          {},
	SchemeAlpha:                        {onlyLetters: true},
	SchemeAlphaMixedCase:               {upper: true, lower: true},
	SchemeNumeric:                      {onlyDigits: true},
	SchemeAlphaNumeric:                 {letter: true, digit: true},
	SchemeAlphaNumericMixedCase:        {upper: true, lower: true, digit: true},
	SchemeAlphaNumericSymbols:          {letter: true, digit: true, special: true},
	SchemeAlphaNumericMixedCaseSymbols: {upper: true, lower: true, digit: true, special: true},
}

var (
	lettersOnlyRegex = regexp.MustCompile(`^[a-zA-Z]+$`)
	digitsOnlyRegex  = regexp.MustCompile(`^[0-9]+$`)
)

// Password checks length and character classes. Only one field of a form
// should carry it when ConfirmPassword relies on discovery.
type Password struct {
	// Min defaults to 6.
	Min int `yaml:"min"`
	// Max of zero means unbounded.
	Max int `yaml:"max"`
	// Scheme defaults to SchemeAny.
	Scheme PasswordScheme `yaml:"scheme"`
	// RejectCommon fails well-known weak passwords.
	RejectCommon bool   `yaml:"reject_common"`
	Sequence     int    `yaml:"sequence"`
	Message      string `yaml:"message"`
}

func (Password) Kind() string           { return "password" }
func (Password) DataType() reflect.Type { return stringType }

func (a Password) Bind(*Context) (Rule, error) {
	minLen := a.Min
	if minLen == 0 {
		minLen = 6
	}
	scheme := a.Scheme
	if scheme == "" {
		scheme = SchemeAny
	}
	classes, ok := passwordSchemes[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: password scheme %q", ErrInvalidAnnotation, scheme)
	}
	if a.Max > 0 && a.Max < minLen {
		return nil, fmt.Errorf("%w: password min %d max %d", ErrInvalidAnnotation, minLen, a.Max)
	}

	m := newMeta(a.Kind(), a.Sequence, a.Message,
		fmt.Sprintf("must be at least %d characters long", minLen),
		map[string]any{"min": minLen, "scheme": string(scheme)})

	return newPredicate(m, func(s string) bool {
		n := utf8.RuneCountInString(s)
		if n < minLen || (a.Max > 0 && n > a.Max) {
			return false
		}
		if a.RejectCommon {
			if _, common := commonPasswords[strings.ToLower(s)]; common {
				return false
			}
		}
		return classes.match(s)
	}), nil
}

func (c passwordClasses) match(s string) bool {
	switch {
	case c.onlyLetters && !lettersOnlyRegex.MatchString(s):
		return false
	case c.onlyDigits && !digitsOnlyRegex.MatchString(s):
		return false
	case c.letter && !uppercaseRegex.MatchString(s) && !lowercaseRegex.MatchString(s):
		return false
	case c.upper && !uppercaseRegex.MatchString(s):
		return false
	case c.lower && !lowercaseRegex.MatchString(s):
		return false
	case c.digit && !digitRegex.MatchString(s):
		return false
	case c.special && !specialCharRegex.MatchString(s):
		return false
	}
	return true
}

// ConfirmPassword requires the text to equal the field carrying Password, or
// the field named by Field.
type ConfirmPassword struct {
	Field    string `yaml:"field"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (ConfirmPassword) Kind() string           { return "confirm_password" }
func (ConfirmPassword) DataType() reflect.Type { return stringType }

func (a ConfirmPassword) Bind(*Context) (Rule, error) {
	return &confirmRule{
		meta: newMeta(a.Kind(), a.Sequence, a.Message, "passwords don't match", nil),
		like: Password{},
		name: a.Field,
	}, nil
}

// ConfirmEmail requires the text to equal, ignoring case, the field carrying
// Email, or the field named by Field.
type ConfirmEmail struct {
	Field    string `yaml:"field"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (ConfirmEmail) Kind() string           { return "confirm_email" }
func (ConfirmEmail) DataType() reflect.Type { return stringType }

func (a ConfirmEmail) Bind(*Context) (Rule, error) {
	return &confirmRule{
		meta: newMeta(a.Kind(), a.Sequence, a.Message, "emails don't match", nil),
		like: Email{},
		name: a.Field,
		fold: true,
	}, nil
}

// confirmRule compares a field with its companion's live value.
type confirmRule struct {
	meta
	like      Annotation
	name      string
	fold      bool
	companion *Field
}

func (r *confirmRule) Link(c *Context) error {
	f, err := c.Companion(r.name, r.like)
	if err != nil {
		return err
	}
	r.companion = f
	return nil
}

func (r *confirmRule) Valid(data any) bool {
	s, ok := data.(string)
	if !ok || r.companion == nil {
		return false
	}
	other, ok := r.companion.Text()
	if !ok {
		return false
	}
	if r.fold {
		// Casers keep state, so one is created per comparison.
		return cases.Fold().String(s) == cases.Fold().String(other)
	}
	return s == other
}
