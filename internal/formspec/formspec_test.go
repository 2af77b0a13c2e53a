package formspec_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/formkit/internal/formspec"
	"github.com/dmitrymomot/formkit/pkg/lookup"
	"github.com/dmitrymomot/formkit/pkg/validator"
	"github.com/dmitrymomot/formkit/pkg/widget"
)

const signup = `
mode: burst
lookups:
  usernames:
    type: memory
    values: [admin, root]
    fold_case: true
fields:
  - name: username
    value: " Admin "
    sanitize: [trim]
    rules:
      - kind: not_empty
      - kind: length
        min: 3
        max: 20
      - kind: unique
        lookup: usernames
  - name: email
    widget: edit_text
    hint: you@example.com
    value: JANE@Example.com
    sanitize: [email]
    rules:
      - kind: email
  - name: password
    value: secret-pass-42
    rules:
      - kind: password
        min: 8
        scheme: alpha_numeric
  - name: password_confirm
    value: secret-pass-42
    rules:
      - kind: confirm_password
  - name: age
    widget: plain
    value: 15
    rules:
      - kind: min
        value: 18
        message: adults only
  - name: terms
    widget: check_box
    checked: true
    rules:
      - kind: checked
  - name: plan
    widget: spinner
    items: [Choose…, Free, Pro]
    selected: 2
    rules:
      - kind: select
  - name: color
    widget: radio_group
    buttons: [red, green]
    value: green
`

func parse(t *testing.T, doc string) *formspec.Spec {
	t.Helper()
	s, err := formspec.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return s
}

func run(t *testing.T, f *formspec.Form) (validator.ValidationErrors, bool) {
	t.Helper()
	var (
		errs validator.ValidationErrors
		ok   bool
	)
	opts := []validator.Option{validator.WithListener(validator.ListenerFuncs{
		Succeeded: func() { ok = true },
		Failed:    func(e validator.ValidationErrors) { errs = e },
	})}
	if f.Mode != nil {
		opts = append(opts, validator.WithMode(*f.Mode))
	}
	v, err := validator.New(f.Form, opts...)
	require.NoError(t, err)
	require.NoError(t, v.Validate(context.Background()))
	return errs, ok
}

func TestBuild(t *testing.T) {
	t.Parallel()

	f, err := formspec.Build(parse(t, signup), formspec.Backends{})
	require.NoError(t, err)
	require.NotNil(t, f.Mode)
	assert.Equal(t, validator.Burst, *f.Mode)
	assert.Equal(t, []string{"username", "email", "password", "password_confirm", "age", "terms", "plan", "color"}, f.Fields)

	username := f.Views["username"].(*widget.EditText)
	assert.Equal(t, "Admin", username.Text())
	email := f.Views["email"].(*widget.EditText)
	assert.Equal(t, "jane@example.com", email.Text())
	assert.Equal(t, "you@example.com", email.Hint())
	assert.Equal(t, 2, f.Views["plan"].(*widget.Spinner).SelectedPosition())
	assert.Equal(t, "green", f.Views["color"].(*widget.RadioGroup).CheckedID())

	age, ok := f.Values["age"].(*int)
	require.True(t, ok)
	assert.Equal(t, 15, *age)

	errs, passed := run(t, f)
	assert.False(t, passed)
	assert.Equal(t, []string{"username", "age"}, errs.Fields())
	assert.Equal(t, []string{"is already taken"}, errs.Get("username"))
	assert.Equal(t, []string{"adults only"}, errs.Get("age"))

	username.SetText("jane")
	*age = 30
	_, passed = run(t, f)
	assert.True(t, passed)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"empty", "", formspec.ErrInvalidSpec},
		{"no fields", "mode: burst\n", formspec.ErrInvalidSpec},
		{"unknown top-level key", "fieldz: []\n", formspec.ErrInvalidSpec},
		{"bad mode", "mode: eager\nfields: [{name: a}]\n", formspec.ErrInvalidSpec},
		{"unnamed field", "fields: [{widget: edit_text}]\n", formspec.ErrInvalidSpec},
		{"duplicate field", "fields: [{name: a}, {name: a}]\n", formspec.ErrDuplicateField},
		{"rule without kind", "fields: [{name: a, rules: [{min: 1}]}]\n", formspec.ErrInvalidSpec},
		{"rule not a mapping", "fields: [{name: a, rules: [not_empty]}]\n", formspec.ErrInvalidSpec},
		{"unknown lookup", "fields: [{name: a, rules: [{kind: unique, lookup: nope}]}]\n", formspec.ErrUnknownLookup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := formspec.Parse(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"unknown kind", "fields: [{name: a, rules: [{kind: shiny}]}]\n", formspec.ErrUnknownKind},
		{"unknown parameter", "fields: [{name: a, rules: [{kind: length, minimum: 3}]}]\n", formspec.ErrInvalidSpec},
		{"unknown widget", "fields: [{name: a, widget: slider}]\n", formspec.ErrUnknownWidget},
		{"unknown sanitizer", "fields: [{name: a, sanitize: [shout]}]\n", formspec.ErrInvalidSanitize},
		{"sanitize non-text widget", "fields: [{name: a, widget: check_box, sanitize: [trim]}]\n", formspec.ErrInvalidSanitize},
		{"non-scalar value", "fields: [{name: a, value: [1, 2]}]\n", formspec.ErrInvalidSpec},
		{"spinner out of range", "fields: [{name: a, widget: spinner, items: [x], selected: 3}]\n", formspec.ErrInvalidSpec},
		{"radio value not a button", "fields: [{name: a, widget: radio_group, buttons: [x], value: y}]\n", formspec.ErrInvalidSpec},
		{"unique without lookup", "fields: [{name: a, rules: [{kind: unique}]}]\n", formspec.ErrInvalidSpec},
		{
			"redis without backend",
			"lookups: {u: {type: redis, key: users}}\nfields: [{name: a, rules: [{kind: unique, lookup: u}]}]\n",
			formspec.ErrLookupNotWired,
		},
		{
			"postgres without backend",
			"lookups: {u: {type: postgres, table: users, column: email}}\nfields: [{name: a}]\n",
			formspec.ErrLookupNotWired,
		},
		{
			"mongo without backend",
			"lookups: {u: {type: mongo, collection: users, field: email}}\nfields: [{name: a}]\n",
			formspec.ErrLookupNotWired,
		},
		{
			"unknown lookup type",
			"lookups: {u: {type: ldap}}\nfields: [{name: a}]\n",
			formspec.ErrInvalidSpec,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := formspec.Build(parse(t, tt.doc), formspec.Backends{})
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPlainValues(t *testing.T) {
	t.Parallel()

	f, err := formspec.Build(parse(t, `
fields:
  - {name: count, widget: plain, value: 3}
  - {name: ratio, widget: plain, value: 0.5}
  - {name: agreed, widget: plain, value: true}
  - {name: nick, widget: plain, value: "  Jo  ", sanitize: [trim]}
`), formspec.Backends{})
	require.NoError(t, err)

	assert.Equal(t, 3, *f.Values["count"].(*int))
	assert.InDelta(t, 0.5, *f.Values["ratio"].(*float64), 1e-9)
	assert.True(t, *f.Values["agreed"].(*bool))
	assert.Equal(t, "Jo", *f.Values["nick"].(*string))
	assert.Nil(t, f.Mode)
}

func TestImmediateMode(t *testing.T) {
	t.Parallel()

	f, err := formspec.Build(parse(t, `
mode: immediate
fields:
  - name: first
    rules: [{kind: order, value: 1}, {kind: not_empty}]
  - name: second
    rules: [{kind: order, value: 2}, {kind: not_empty}]
`), formspec.Backends{})
	require.NoError(t, err)

	errs, passed := run(t, f)
	assert.False(t, passed)
	assert.Equal(t, []string{"first"}, errs.Fields())
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "form.yaml")
	require.NoError(t, os.WriteFile(path, []byte(signup), 0o600))
	s, err := formspec.ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Fields, 8)

	_, err = formspec.ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestKinds(t *testing.T) {
	t.Parallel()

	kinds := formspec.Kinds()
	assert.Len(t, kinds, 29)
	assert.IsIncreasing(t, kinds)
	for _, k := range []string{"not_empty", "unique", "order", "optional", "credit_card", "tag"} {
		assert.Contains(t, kinds, k)
	}
}

func TestMongoLookup(t *testing.T) {
	t.Parallel()

	// Connect does no I/O; the checkers are only built here, never queried.
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	backends := formspec.Backends{Mongo: client.Database("formkit")}

	tests := []struct {
		name   string
		lookup string
		err    error
	}{
		{"wired", "{type: mongo, collection: users, field: email, fold_case: true}", nil},
		{"missing collection", "{type: mongo, field: email}", formspec.ErrInvalidSpec},
		{"operator field", "{type: mongo, collection: users, field: $where}", lookup.ErrInvalidIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := "lookups: {u: " + tt.lookup + "}\nfields: [{name: email, value: jane, rules: [{kind: unique, lookup: u}]}]\n"
			form, err := formspec.Build(parse(t, doc), backends)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"email"}, form.Fields)
		})
	}
}
