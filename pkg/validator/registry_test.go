package validator_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/validator"
	"github.com/dmitrymomot/formkit/pkg/widget"
)

// weekday requires a date falling on Day. It consumes time.Time, which no
// built-in adapter produces.
type weekday struct {
	Day time.Weekday
}

func (weekday) Kind() string           { return "weekday" }
func (weekday) DataType() reflect.Type { return reflect.TypeFor[time.Time]() }

func (a weekday) Bind(*validator.Context) (validator.Rule, error) {
	return validator.NewQuickRule("wrong day", func(v any) bool {
		t, ok := v.(time.Time)
		return ok && t.Weekday() == a.Day
	}), nil
}

// notBinder is an annotation without a rule.
type notBinder struct{}

func (notBinder) Kind() string { return "not_binder" }

var dateAdapter = validator.NewAdapter(func(e *widget.EditText) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(e.Text()))
})

func TestRegistry(t *testing.T) {
	t.Parallel()

	editTextType := reflect.TypeFor[*widget.EditText]()
	textViewType := reflect.TypeFor[*widget.TextView]()

	t.Run("stock annotations", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		for _, a := range []validator.Annotation{
			validator.NotEmpty{}, validator.Email{}, validator.Min{}, validator.DecimalMax{},
			validator.AssertTrue{}, validator.Select{}, validator.Unique{}, validator.Tag{},
		} {
			assert.True(t, r.IsRegistered(a), "%s should be registered", a.Kind())
		}
		assert.False(t, r.IsRegistered(validator.Order{}))
		assert.False(t, r.IsRegistered(validator.Optional{}))
		assert.False(t, r.IsRegistered(nil))
	})

	t.Run("text adapters apply to every text input", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		for _, wt := range []reflect.Type{editTextType, textViewType} {
			adapter, ok := r.AdapterFor(validator.Min{}, wt)
			require.True(t, ok)
			assert.Equal(t, reflect.TypeFor[int](), adapter.DataType())
		}
		_, ok := r.AdapterFor(validator.Min{}, reflect.TypeFor[*widget.CheckBox]())
		assert.False(t, ok)
	})

	t.Run("exact widget type wins", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		hint := validator.NewAdapter(func(e *widget.EditText) (string, error) { return e.Hint(), nil })
		require.NoError(t, r.RegisterAdapter(editTextType, hint, validator.NotEmpty{}))

		got, ok := r.AdapterFor(validator.NotEmpty{}, editTextType)
		require.True(t, ok)
		assert.Same(t, hint, got)

		got, ok = r.AdapterFor(validator.NotEmpty{}, textViewType)
		require.True(t, ok)
		assert.NotSame(t, hint, got)
	})

	t.Run("empty registry", func(t *testing.T) {
		t.Parallel()
		r := validator.NewEmptyRegistry()
		assert.False(t, r.IsRegistered(validator.NotEmpty{}))
		require.NoError(t, r.Register(validator.NotEmpty{}))
		assert.True(t, r.IsRegistered(validator.NotEmpty{}))
		_, ok := r.AdapterFor(validator.NotEmpty{}, editTextType)
		assert.True(t, ok)
	})

	t.Run("registration errors", func(t *testing.T) {
		t.Parallel()
		r := validator.NewEmptyRegistry()
		assert.ErrorIs(t, r.Register(nil), validator.ErrNilArgument)
		assert.ErrorIs(t, r.Register(notBinder{}), validator.ErrNoRuleBinding)
		assert.ErrorIs(t, r.RegisterAdapter(nil, dateAdapter, weekday{}), validator.ErrNilArgument)
		assert.ErrorIs(t, r.RegisterAdapter(editTextType, nil, weekday{}), validator.ErrNilArgument)

		err := r.RegisterAdapter(editTextType, dateAdapter, validator.NotEmpty{})
		assert.ErrorIs(t, err, validator.ErrAdapterMismatch)
		assert.True(t, validator.IsConfigurationError(err))
	})

	t.Run("failed adapter registration leaves no state", func(t *testing.T) {
		t.Parallel()
		r := validator.NewEmptyRegistry()
		err := r.RegisterAdapter(editTextType, dateAdapter, weekday{}, validator.NotEmpty{})
		require.ErrorIs(t, err, validator.ErrAdapterMismatch)

		assert.False(t, r.IsRegistered(weekday{}))
		assert.False(t, r.IsRegistered(validator.NotEmpty{}))
		_, ok := r.AdapterFor(weekday{}, editTextType)
		assert.False(t, ok)
	})

	t.Run("pointer annotations share value entries", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		assert.True(t, r.IsRegistered(&validator.NotEmpty{}))
		_, ok := r.AdapterFor(&validator.Min{}, editTextType)
		assert.True(t, ok)

		require.NoError(t, r.RegisterAdapter(editTextType, dateAdapter, &weekday{}))
		assert.True(t, r.IsRegistered(weekday{}))
	})

	t.Run("custom annotation with registry adapter", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.RegisterAdapter(editTextType, dateAdapter, weekday{}))

		day := editText("day", "2024-01-01")
		form := validator.NewForm().Field("day", day, weekday{Day: time.Monday})
		v, rec := newValidator(t, form, validator.WithRegistry(r))

		require.NoError(t, v.Validate(context.Background()))
		assert.Equal(t, 1, rec.successes())

		day.SetText("2024-01-02")
		require.NoError(t, v.Validate(context.Background()))
		assert.Equal(t, []string{"wrong day"}, rec.lastFailure().Get("day"))

		day.SetText("garbage")
		require.NoError(t, v.Validate(context.Background()))
		assert.Equal(t, 2, rec.failures())
	})

	t.Run("validator-local adapter", func(t *testing.T) {
		t.Parallel()
		r := validator.NewRegistry()
		require.NoError(t, r.Register(weekday{}))

		form := validator.NewForm().Field("day", editText("day", "2024-01-01"), weekday{Day: time.Monday})
		v, rec := newValidator(t, form, validator.WithRegistry(r))

		err := v.Validate(context.Background())
		require.ErrorIs(t, err, validator.ErrNoAdapter)

		assert.ErrorIs(t, v.RegisterAdapter(nil, dateAdapter), validator.ErrNilArgument)
		require.NoError(t, v.RegisterAdapter(reflect.TypeFor[*widget.EditText](), dateAdapter))
		require.NoError(t, v.Validate(context.Background()))
		assert.Equal(t, 1, rec.successes())
	})
}

func TestConversionError(t *testing.T) {
	t.Parallel()

	cause := errors.New("bad digit")
	err := &validator.ConversionError{View: "qty", DataType: reflect.TypeFor[int](), Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"qty"`)
	assert.Contains(t, err.Error(), "int")

	adapter := validator.NewAdapter(func(c *widget.CheckBox) (bool, error) { return c.IsChecked(), nil })
	_, convErr := adapter.Data(editText("x", ""))
	var target *validator.ConversionError
	require.ErrorAs(t, convErr, &target)
	assert.Equal(t, "x", target.View)
}

func TestPointerAnnotations(t *testing.T) {
	t.Parallel()

	t.Run("rules declared by pointer are evaluated", func(t *testing.T) {
		t.Parallel()
		form := validator.NewForm().
			Field("name", editText("name", ""), &validator.Order{Value: 1}, &validator.NotEmpty{}).
			Field("other", editText("other", ""), validator.Order{Value: 2}, validator.NotEmpty{}).
			Field("note", editText("note", ""), validator.Order{Value: 3}, &validator.Optional{}, &validator.Length{Min: 3})
		v, rec := newValidator(t, form)

		require.NoError(t, v.Validate(context.Background()))
		assert.Equal(t, []string{"name", "other"}, rec.lastFailure().Fields())

		require.NoError(t, v.ValidateTill(context.Background(), "name"))
		assert.Equal(t, []string{"name"}, rec.lastFailure().Fields())
	})

	t.Run("nil pointer is a configuration error", func(t *testing.T) {
		t.Parallel()
		var missing *validator.NotEmpty
		form := validator.NewForm().Field("name", editText("name", ""), missing)
		v, _ := newValidator(t, form)

		err := v.Validate(context.Background())
		require.ErrorIs(t, err, validator.ErrNilArgument)
		assert.True(t, validator.IsConfigurationError(err))
	})
}
