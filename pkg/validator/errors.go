package validator

import (
	"errors"
	"fmt"
	"reflect"
)

// Configuration errors. They abort a validation pass before any rule runs.
var (
	// ErrNilArgument is returned when a required argument is nil.
	ErrNilArgument = errors.New("validator: required argument is nil")

	// ErrNoListener is returned when a pass is requested without a listener.
	ErrNoListener = errors.New("validator: validation listener is not set")

	// ErrUnorderedFields is returned when ordered validation is requested but
	// not every field carries an Order annotation.
	ErrUnorderedFields = errors.New("validator: rules are unordered, all fields should be ordered using the Order annotation")

	// ErrUnorderedField is returned by Put when the form is ordered but the
	// field is not part of the ordered set.
	ErrUnorderedField = errors.New("validator: all fields are ordered, the field should carry an Order annotation too")

	// ErrNoRules is returned when a form has no field with a registered annotation.
	ErrNoRules = errors.New("validator: no rules found, at least one rule is required to validate")

	// ErrNoRuleBinding is returned when an annotation cannot produce a rule.
	ErrNoRuleBinding = errors.New("validator: annotation does not implement RuleBinder")

	// ErrNoAdapter is returned when no adapter extracts the rule's data type from a widget.
	ErrNoAdapter = errors.New("validator: no data adapter found")

	// ErrAdapterMismatch is returned when an adapter produces a type the annotation cannot consume.
	ErrAdapterMismatch = errors.New("validator: adapter data type does not match annotation")

	// ErrNoCompanion is returned when a cross-field rule finds no companion field.
	ErrNoCompanion = errors.New("validator: companion field not found")

	// ErrAmbiguousCompanion is returned when a cross-field rule finds several candidates.
	ErrAmbiguousCompanion = errors.New("validator: several companion fields found")

	// ErrUnknownField is returned when a field name is not declared on the form.
	ErrUnknownField = errors.New("validator: unknown field")

	// ErrInvalidFieldRef is returned for field references that are neither a
	// widget nor a non-nil pointer, and for duplicate field names.
	ErrInvalidFieldRef = errors.New("validator: invalid field reference")

	// ErrInvalidAnnotation is returned when annotation parameters cannot produce a rule.
	ErrInvalidAnnotation = errors.New("validator: invalid annotation parameters")
)

// ErrInvalidMode is returned when a mode name cannot be parsed.
var ErrInvalidMode = errors.New("validator: invalid mode")

var configurationErrors = []error{
	ErrNilArgument,
	ErrNoListener,
	ErrUnorderedFields,
	ErrUnorderedField,
	ErrNoRules,
	ErrNoRuleBinding,
	ErrNoAdapter,
	ErrAdapterMismatch,
	ErrNoCompanion,
	ErrAmbiguousCompanion,
	ErrUnknownField,
	ErrInvalidFieldRef,
	ErrInvalidAnnotation,
}

// IsConfigurationError reports whether err is caused by an invalid form,
// registry or validator setup rather than by user input.
func IsConfigurationError(err error) bool {
	for _, target := range configurationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ConversionError is returned by adapters that cannot produce the requested
// data type from the widget state. The engine treats it as a failed rule.
type ConversionError struct {
	View     string
	DataType reflect.Type
	Err      error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("validator: cannot convert %q to %s", e.View, e.DataType)
	}
	return fmt.Sprintf("validator: cannot convert %q to %s: %v", e.View, e.DataType, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
