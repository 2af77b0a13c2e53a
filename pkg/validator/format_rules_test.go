package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	t.Run("valid emails", func(t *testing.T) {
		t.Parallel()
		rule := bind(t, validator.Email{})
		for _, email := range []string{
			"test@example.com",
			"user.name@domain.co.uk",
			"user+tag@example.org",
			"1234567890@example.com",
			"email@example-one.com",
		} {
			assert.True(t, rule.Valid(email), "email should be valid: %s", email)
		}
	})

	t.Run("invalid emails", func(t *testing.T) {
		t.Parallel()
		rule := bind(t, validator.Email{})
		for _, email := range []string{
			"",
			"   ",
			"plainaddress",
			"@missingdomain.com",
			"missing@domain",
			"Jane <jane@example.com>",
			"email@domain..com",
		} {
			assert.False(t, rule.Valid(email), "email should be invalid: %s", email)
		}
	})

	t.Run("local domains", func(t *testing.T) {
		t.Parallel()
		assert.False(t, bind(t, validator.Email{}).Valid("root@localhost"))
		assert.True(t, bind(t, validator.Email{AllowLocal: true}).Valid("root@localhost"))
	})
}

func TestURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  validator.URL
		value string
		want  bool
	}{
		{"https", validator.URL{}, "https://example.com/path?q=1", true},
		{"ftp", validator.URL{}, "ftp://files.example.com", true},
		{"no scheme", validator.URL{}, "example.com", false},
		{"opaque", validator.URL{}, "mailto:jane@example.com", false},
		{"scheme not allowed", validator.URL{}, "ws://example.com", false},
		{"custom schemes", validator.URL{Schemes: []string{"https"}}, "http://example.com", false},
		{"fragment rejected", validator.URL{}, "https://example.com/#top", false},
		{"fragment allowed", validator.URL{AllowFragment: true}, "https://example.com/#top", true},
		{"blank", validator.URL{}, " ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bind(t, tt.rule).Valid(tt.value))
		})
	}
}

func TestDomain(t *testing.T) {
	t.Parallel()

	rule := bind(t, validator.Domain{})
	for _, d := range []string{"example.com", "sub.example.co.uk", "my-site.org"} {
		assert.True(t, rule.Valid(d), "domain should be valid: %s", d)
	}
	for _, d := range []string{"", "localhost", "-bad.com", "bad-.com", "example.c", "exa mple.com", "example.123"} {
		assert.False(t, rule.Valid(d), "domain should be invalid: %s", d)
	}

	assert.True(t, bind(t, validator.Domain{AllowLocal: true}).Valid("localhost"))
}

func TestIPAddress(t *testing.T) {
	t.Parallel()

	anyIP := bind(t, validator.IPAddress{})
	v4 := bind(t, validator.IPAddress{Version: validator.IPv4})
	v6 := bind(t, validator.IPAddress{Version: validator.IPv6})

	assert.True(t, anyIP.Valid("192.168.0.1"))
	assert.True(t, anyIP.Valid("::1"))
	assert.False(t, anyIP.Valid("999.1.1.1"))
	assert.True(t, v4.Valid("10.0.0.1"))
	assert.False(t, v4.Valid("::1"))
	assert.True(t, v6.Valid("2001:db8::1"))
	assert.False(t, v6.Valid("10.0.0.1"))

	_, err := validator.IPAddress{Version: 5}.Bind(nil)
	assert.ErrorIs(t, err, validator.ErrInvalidAnnotation)
}

func TestDigits(t *testing.T) {
	t.Parallel()

	rule := bind(t, validator.Digits{Integer: 3, Fraction: 2})
	assert.True(t, rule.Valid("123.45"))
	assert.True(t, rule.Valid("-12.3"))
	assert.True(t, rule.Valid("7"))
	assert.False(t, rule.Valid("1234"))
	assert.False(t, rule.Valid("12.345"))
	assert.False(t, rule.Valid("abc"))

	_, err := validator.Digits{}.Bind(nil)
	assert.ErrorIs(t, err, validator.ErrInvalidAnnotation)
}

func TestPattern(t *testing.T) {
	t.Parallel()

	t.Run("whole text must match", func(t *testing.T) {
		t.Parallel()
		rule := bind(t, validator.Pattern{Regex: `[a-z]+`})
		assert.True(t, rule.Valid("abc"))
		assert.False(t, rule.Valid("abc1"))
		assert.False(t, rule.Valid("ABC"))
	})

	t.Run("ignore case", func(t *testing.T) {
		t.Parallel()
		assert.True(t, bind(t, validator.Pattern{Regex: `[a-z]+`, IgnoreCase: true}).Valid("ABC"))
	})

	t.Run("alternation is anchored", func(t *testing.T) {
		t.Parallel()
		rule := bind(t, validator.Pattern{Regex: `cat|dog`})
		assert.True(t, rule.Valid("dog"))
		assert.False(t, rule.Valid("catdog"))
	})

	t.Run("invalid expressions", func(t *testing.T) {
		t.Parallel()
		_, err := validator.Pattern{}.Bind(nil)
		assert.ErrorIs(t, err, validator.ErrInvalidAnnotation)

		_, err = validator.Pattern{Regex: "("}.Bind(nil)
		assert.ErrorIs(t, err, validator.ErrInvalidAnnotation)
	})
}
