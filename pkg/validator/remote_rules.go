package validator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Checker reports whether a value is already taken, e.g. a user name in a
// database table.
type Checker interface {
	Exists(ctx context.Context, value string) (bool, error)
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context, value string) (bool, error)

func (f CheckerFunc) Exists(ctx context.Context, value string) (bool, error) { return f(ctx, value) }

// DefaultUniqueTimeout bounds a single Unique lookup when Timeout is zero.
const DefaultUniqueTimeout = 5 * time.Second

// Unique requires a value the Checker does not know yet. Lookup errors and
// timeouts fail the rule. Run forms with Unique fields asynchronously.
type Unique struct {
	Checker Checker `yaml:"-"`
	// Timeout bounds each lookup, DefaultUniqueTimeout when zero.
	Timeout  time.Duration `yaml:"timeout"`
	Sequence int           `yaml:"sequence"`
	Message  string        `yaml:"message"`
}

func (Unique) Kind() string           { return "unique" }
func (Unique) DataType() reflect.Type { return stringType }

func (a Unique) Bind(c *Context) (Rule, error) {
	if a.Checker == nil {
		return nil, fmt.Errorf("%w: unique without checker", ErrInvalidAnnotation)
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultUniqueTimeout
	}
	return &uniqueRule{
		meta:    newMeta(a.Kind(), a.Sequence, a.Message, "is already taken", nil),
		checker: a.Checker,
		timeout: timeout,
		log:     c.Logger(),
	}, nil
}

type uniqueRule struct {
	meta
	checker Checker
	timeout time.Duration
	log     *slog.Logger
}

func (r *uniqueRule) Valid(data any) bool {
	return r.ValidContext(context.Background(), data)
}

func (r *uniqueRule) ValidContext(ctx context.Context, data any) bool {
	s, ok := data.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	exists, err := r.checker.Exists(ctx, s)
	if err != nil {
		r.log.WarnContext(ctx, "unique lookup failed", logger.Error(err))
		return false
	}
	return !exists
}
