package sanitizer

import "strings"

// NormalizeEmail lowercases and trims an address and collapses repeated dots in
// the local part. Input without exactly one "@" is only trimmed and lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	local = strings.Trim(dotRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// NormalizeCreditCard strips everything but digits.
func NormalizeCreditCard(cardNumber string) string {
	return nonDigitRegex.ReplaceAllString(cardNumber, "")
}

// NormalizeISBN strips separators and uppercases the check character.
func NormalizeISBN(isbn string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == 'x' || r == 'X':
			return 'X'
		default:
			return -1
		}
	}, isbn)
}
