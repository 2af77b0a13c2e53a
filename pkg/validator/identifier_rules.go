package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/leodido/go-urn"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

// UUID requires a hyphenated UUID, optionally of a given version.
type UUID struct {
	// Version of zero accepts any version.
	Version int `yaml:"version"`
	// AllowNil accepts 00000000-0000-0000-0000-000000000000.
	AllowNil bool   `yaml:"allow_nil"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (UUID) Kind() string           { return "uuid" }
func (UUID) DataType() reflect.Type { return stringType }

func (a UUID) Bind(*Context) (Rule, error) {
	if a.Version < 0 || a.Version > 8 {
		return nil, fmt.Errorf("%w: uuid version %d", ErrInvalidAnnotation, a.Version)
	}
	key, fallback := a.Kind(), "must be a valid UUID"
	if a.Version > 0 {
		key, fallback = "uuid_version", fmt.Sprintf("must be a valid UUID v%d", a.Version)
	}
	m := newMeta(key, a.Sequence, a.Message, fallback, map[string]any{"version": a.Version})

	return newPredicate(m, func(s string) bool {
		// Fast rejection before parsing
		if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
			return false
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return false
		}
		if id == uuid.Nil {
			return a.AllowNil
		}
		return a.Version == 0 || int(id.Version()) == a.Version
	}), nil
}

// URN requires an RFC 2141 uniform resource name.
type URN struct {
	// Namespace, when set, must equal the namespace identifier, ignoring case.
	Namespace string `yaml:"namespace"`
	Sequence  int    `yaml:"sequence"`
	Message   string `yaml:"message"`
}

func (URN) Kind() string           { return "urn" }
func (URN) DataType() reflect.Type { return stringType }

func (a URN) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be a valid URN", map[string]any{"namespace": a.Namespace})
	return newPredicate(m, func(s string) bool {
		u, ok := urn.Parse([]byte(s))
		if !ok {
			return false
		}
		return a.Namespace == "" || strings.EqualFold(u.ID, a.Namespace)
	}), nil
}

var (
	tagValidatorOnce sync.Once
	tagValidator     *playground.Validate
)

func sharedTagValidator() *playground.Validate {
	tagValidatorOnce.Do(func() {
		tagValidator = playground.New()
	})
	return tagValidator
}

// Tag validates text with a go-playground/validator tag such as
// "required,alphanum,min=3".
type Tag struct {
	Tag      string `yaml:"tag"`
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (Tag) Kind() string           { return "tag" }
func (Tag) DataType() reflect.Type { return stringType }

func (a Tag) Bind(*Context) (Rule, error) {
	if strings.TrimSpace(a.Tag) == "" {
		return nil, fmt.Errorf("%w: empty tag", ErrInvalidAnnotation)
	}
	v := sharedTagValidator()
	if err := probeTag(v, a.Tag); err != nil {
		return nil, err
	}
	m := newMeta(a.Kind(), a.Sequence, a.Message,
		fmt.Sprintf("must satisfy %q", a.Tag), map[string]any{"tag": a.Tag})
	return newPredicate(m, func(s string) bool {
		return v.Var(s, a.Tag) == nil
	}), nil
}

// probeTag runs the tag once; go-playground panics on unknown tags.
func probeTag(v *playground.Validate, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: tag %q: %v", ErrInvalidAnnotation, tag, r)
		}
	}()
	_ = v.Var("", tag)
	return nil
}

// ISBN requires a valid ISBN-10 or ISBN-13. Hyphens and spaces are ignored.
type ISBN struct {
	Sequence int    `yaml:"sequence"`
	Message  string `yaml:"message"`
}

func (ISBN) Kind() string           { return "isbn" }
func (ISBN) DataType() reflect.Type { return stringType }

func (a ISBN) Bind(*Context) (Rule, error) {
	m := newMeta(a.Kind(), a.Sequence, a.Message, "must be a valid ISBN", nil)
	return newPredicate(m, isISBN), nil
}

func isISBN(value string) bool {
	for _, r := range value {
		if !(r >= '0' && r <= '9') && r != 'x' && r != 'X' && r != '-' && r != ' ' {
			return false
		}
	}
	s := sanitizer.NormalizeISBN(value)
	switch len(s) {
	case 10:
		sum := 0
		for i := 0; i < 10; i++ {
			var d int
			switch {
			case s[i] == 'X' && i == 9:
				d = 10
			case s[i] >= '0' && s[i] <= '9':
				d = int(s[i] - '0')
			default:
				return false
			}
			sum += d * (10 - i)
		}
		return sum%11 == 0
	case 13:
		sum := 0
		for i := 0; i < 13; i++ {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
			d := int(s[i] - '0')
			if i%2 == 1 {
				d *= 3
			}
			sum += d
		}
		return sum%10 == 0
	default:
		return false
	}
}
