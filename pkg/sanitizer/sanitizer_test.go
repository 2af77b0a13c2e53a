package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

func TestStringHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"trim", sanitizer.Trim, "  hello \n", "hello"},
		{"lower", sanitizer.ToLower, "HeLLo", "hello"},
		{"upper", sanitizer.ToUpper, "HeLLo", "HELLO"},
		{"whitespace", sanitizer.NormalizeWhitespace, "  a \t b\n\nc ", "a b c"},
		{"single line", sanitizer.SingleLine, "line one\r\nline two", "line one line two"},
		{"digits", sanitizer.KeepDigits, "+1 (555) 010-9999", "15550109999"},
		{"fold", sanitizer.Fold, "Jane@EXAMPLE.com", "jane@example.com"},
		{"title", sanitizer.Title, "jane van doe", "Jane Van Doe"},
		{"nfc", sanitizer.NFC, "e\u0301", "\u00e9"},
		{"control", sanitizer.StripControl, "a\x00b\tc\x7f", "ab\tc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "john.doe@example.com", sanitizer.NormalizeEmail("  John..Doe@Example.COM "))
	assert.Equal(t, "jane@example.com", sanitizer.NormalizeEmail(".jane.@example.com"))
	assert.Equal(t, "not-an-email", sanitizer.NormalizeEmail(" Not-An-Email "))
	assert.Equal(t, "a@b@c", sanitizer.NormalizeEmail("a@b@c"))
}

func TestNormalizeCreditCard(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "4111111111111111", sanitizer.NormalizeCreditCard("4111-1111 1111-1111"))
	assert.Empty(t, sanitizer.NormalizeCreditCard("card"))
}

func TestNormalizeISBN(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "030640615X", sanitizer.NormalizeISBN("0-306-40615-x"))
	assert.Equal(t, "9780306406157", sanitizer.NormalizeISBN("978 0 306 40615 7"))
}

func TestApplyAndCompose(t *testing.T) {
	t.Parallel()
	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.NormalizeWhitespace, sanitizer.ToLower)
	assert.Equal(t, "mixed case input", clean("  Mixed CASE   Input\n"))
	assert.Equal(t, "x", sanitizer.Apply(" x ", sanitizer.Trim))
	assert.Equal(t, 3, sanitizer.Apply(1, func(i int) int { return i + 1 }, func(i int) int { return i + 1 }))
}

func TestByName(t *testing.T) {
	t.Parallel()

	t.Run("builds pipeline", func(t *testing.T) {
		t.Parallel()
		fn, err := sanitizer.ByName("trim", "lower")
		require.NoError(t, err)
		assert.Equal(t, "abc", fn("  ABC "))
	})

	t.Run("empty pipeline is identity", func(t *testing.T) {
		t.Parallel()
		fn, err := sanitizer.ByName()
		require.NoError(t, err)
		assert.Equal(t, " A ", fn(" A "))
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := sanitizer.ByName("trim", "rot13")
		assert.ErrorIs(t, err, sanitizer.ErrUnknownSanitizer)
	})

	t.Run("names are sorted", func(t *testing.T) {
		t.Parallel()
		names := sanitizer.Names()
		assert.Contains(t, names, "trim")
		assert.IsNonDecreasing(t, names)
	})
}
