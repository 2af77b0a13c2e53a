// Package validator validates forms declared as named fields with rule
// annotations, independent of any UI toolkit.
//
// A Form lists fields, each bound to a widget from package widget or to a
// plain value, together with annotations such as NotEmpty, Email or Length.
// A Registry maps every annotation type to the rule it builds and to the
// adapters that turn widget state into the data type the rule consumes. The
// Validator scans the form, builds one rule chain per field on first use and
// evaluates the chains in field order.
//
// # Architecture
//
// Each source file covers one concern:
//
//   - form.go, scanner.go    – field declaration and discovery
//   - registry.go            – annotation and adapter registry
//   - builder.go, context.go – rule chains and cross-field linking
//   - engine.go              – a single evaluation pass
//   - validator.go           – sync and async dispatch, cancellation
//   - *_rules.go             – built-in annotations grouped by domain
//
// # Usage
//
//	email := widget.NewEditText("email")
//	password := widget.NewEditText("password")
//	confirm := widget.NewEditText("confirm")
//
//	form := validator.NewForm().
//	    Field("email", email, validator.Order{Value: 1}, validator.NotEmpty{}, validator.Email{}).
//	    Field("password", password, validator.Order{Value: 2}, validator.Password{Min: 8}).
//	    Field("confirm", confirm, validator.Order{Value: 3}, validator.ConfirmPassword{})
//
//	v, err := validator.New(form,
//	    validator.WithMode(validator.Immediate),
//	    validator.WithListener(validator.ErrorDisplayListener(nil)),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := v.Validate(ctx); err != nil {
//	    // configuration error, nothing was validated
//	}
//
// # Modes
//
// Burst evaluates every field and reports every failure. Immediate stops after
// the first field that fails and requires every field to carry an Order.
// ValidateTill reports failures up to a named field; failures past it only set
// Report.HasMoreErrors.
//
// # Asynchronous validation
//
// ValidateAsync runs the pass on a background goroutine. Starting a new pass
// or calling CancelAsync cancels the one in flight and its result is dropped.
// Listener callbacks run through the configured Executor, for instance a
// Looper drained by the UI goroutine.
//
// # Error Handling
//
// Configuration problems (no listener, unordered fields in Immediate mode, an
// annotation without adapter) are returned before any rule runs and can be
// detected with IsConfigurationError. Validation failures are never returned
// as errors: they reach the Listener as ValidationErrors.
//
// # Messages
//
// Rules carry English default messages. With WithTranslator they are looked
// up under "validation.<kind>" in the translator language; DefaultTranslator
// loads the built-in catalog. Messages set explicitly on an annotation are
// used verbatim.
package validator
