package validator

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/cache"
)

// Email requires an RFC 5322 address with a dotted domain.
type Email struct {
	// AllowLocal accepts single-label domains such as "localhost".
	AllowLocal bool   `yaml:"allow_local"`
	Sequence   int    `yaml:"sequence"`
	Message    string `yaml:"message"`
}

func (Email) Kind() string           { return "email" }
func (Email) DataType() reflect.Type { return stringType }

func (a Email) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be a valid email address", nil)
	return newPredicate(m, func(s string) bool { return isEmail(s, a.AllowLocal) }), nil
}

func isEmail(value string, allowLocal bool) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	localPart, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || localPart == "" || domain == "" {
		return false
	}
	if allowLocal && !strings.Contains(domain, ".") {
		return true
	}

	// Domain must contain at least one dot and cannot start/end with dot
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// URL requires an absolute URL with a host and one of the allowed schemes.
type URL struct {
	// Schemes defaults to http, https and ftp.
	Schemes       []string `yaml:"schemes"`
	AllowFragment bool     `yaml:"allow_fragment"`
	Sequence      int      `yaml:"sequence"`
	Message       string   `yaml:"message"`
}

func (URL) Kind() string           { return "url" }
func (URL) DataType() reflect.Type { return stringType }

func (a URL) Bind(*Context) (Rule, error) {
	schemes := a.Schemes
	if len(schemes) == 0 {
		schemes = []string{"http", "https", "ftp"}
	}
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be a valid URL",
		map[string]any{"schemes": strings.Join(schemes, ", ")})

	return newPredicate(m, func(s string) bool {
		if strings.TrimSpace(s) == "" {
			return false
		}
		u, err := url.ParseRequestURI(s)
		if err != nil {
			return false
		}
		if u.Scheme == "" || u.Host == "" {
			return false
		}
		if !slices.Contains(schemes, strings.ToLower(u.Scheme)) {
			return false
		}
		return a.AllowFragment || !strings.Contains(s, "#")
	}), nil
}

// Domain requires a syntactically valid domain name.
type Domain struct {
	// AllowLocal accepts single-label names such as "localhost".
	AllowLocal bool   `yaml:"allow_local"`
	Sequence   int    `yaml:"sequence"`
	Message    string `yaml:"message"`
}

func (Domain) Kind() string           { return "domain" }
func (Domain) DataType() reflect.Type { return stringType }

func (a Domain) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be a valid domain name", nil)
	return newPredicate(m, func(s string) bool { return isDomainName(s, a.AllowLocal) }), nil
}

func isDomainName(value string, allowLocal bool) bool {
	if strings.TrimSpace(value) == "" || len(value) > 253 {
		return false
	}

	labels := strings.Split(value, ".")
	if len(labels) < 2 && !allowLocal {
		return false
	}

	for i, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, char := range label {
			//nolint:staticcheck // More readable than De Morgan's law
			if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9') || char == '-') {
				return false
			}
		}

		// TLD must be at least 2 letters
		if i == len(labels)-1 && len(labels) > 1 {
			if len(label) < 2 {
				return false
			}
			for _, char := range label {
				//nolint:staticcheck // More readable than De Morgan's law
				if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')) {
					return false
				}
			}
		}
	}
	return true
}

// IPVersion restricts IPAddress to one address family.
type IPVersion int

const (
	AnyIP IPVersion = 0
	IPv4  IPVersion = 4
	IPv6  IPVersion = 6
)

// IPAddress requires an IPv4 or IPv6 address.
type IPAddress struct {
	Version  IPVersion `yaml:"version"`
	Sequence int       `yaml:"sequence"`
	Message  string    `yaml:"message"`
}

func (IPAddress) Kind() string           { return "ip_address" }
func (IPAddress) DataType() reflect.Type { return stringType }

func (a IPAddress) Bind(*Context) (Rule, error) {
	switch a.Version {
	case AnyIP, IPv4, IPv6:
	default:
		return nil, fmt.Errorf("%w: ip version %d", ErrInvalidAnnotation, a.Version)
	}
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be a valid IP address", nil)
	return newPredicate(m, func(s string) bool {
		ip := net.ParseIP(strings.TrimSpace(s))
		if ip == nil {
			return false
		}
		switch a.Version {
		case IPv4:
			return ip.To4() != nil
		case IPv6:
			return ip.To4() == nil
		default:
			return true
		}
	}), nil
}

var decimalRegex = regexp.MustCompile(`^[+-]?(\d+)(?:\.(\d+))?$`)

// Digits requires a number with at most Integer integral and Fraction
// fractional digits.
type Digits struct {
	Integer  int    `yaml:"integer"`
	Fraction int    `yaml:"fraction"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (Digits) Kind() string           { return "digits" }
func (Digits) DataType() reflect.Type { return stringType }

func (a Digits) Bind(*Context) (Rule, error) {
	if a.Integer <= 0 || a.Fraction < 0 {
		return nil, fmt.Errorf("%w: digits integer %d fraction %d", ErrInvalidAnnotation, a.Integer, a.Fraction)
	}
	m := newMeta(a.Kind(), a.Sequence, a.Message,
		fmt.Sprintf("must be a number with up to %d integer and %d fraction digits", a.Integer, a.Fraction),
		map[string]any{"integer": a.Integer, "fraction": a.Fraction})

	return newPredicate(m, func(s string) bool {
		parts := decimalRegex.FindStringSubmatch(strings.TrimSpace(s))
		if parts == nil {
			return false
		}
		return len(parts[1]) <= a.Integer && len(parts[2]) <= a.Fraction
	}), nil
}

// patterns memoizes compiled Pattern expressions across validators.
var patterns = cache.NewLRU[string, *regexp.Regexp](256)

// Pattern requires the whole text to match a regular expression.
type Pattern struct {
	Regex      string `yaml:"regex"`
	IgnoreCase bool   `yaml:"ignore_case"`
	Sequence   int    `yaml:"sequence"`
	Message    string `yaml:"message"`
}

func (Pattern) Kind() string           { return "pattern" }
func (Pattern) DataType() reflect.Type { return stringType }

func (a Pattern) Bind(*Context) (Rule, error) {
	if a.Regex == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidAnnotation)
	}
	expr := "^(?:" + a.Regex + ")$"
	if a.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := patterns.GetOrLoad(expr, regexp.Compile)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidAnnotation, a.Regex, err)
	}
	m := newMeta(a.Kind(), a.Sequence, a.Message, "does not match the required pattern",
		map[string]any{"pattern": a.Regex})
	return newPredicate(m, re.MatchString), nil
}
