// Package widget models the input widgets a form is made of, independent of any
// UI toolkit.
//
// Each widget is a small goroutine-safe state holder identified by a string ID.
// Toolkit bindings mirror their native widget state into these models (or use
// them directly in headless environments such as tests and CLIs) and the
// validator package reads values back through adapters.
//
// # Widgets
//
//   - TextView / EditText  – text content, implements TextInput
//   - CheckBox             – checked state, implements Checkable
//   - RadioButton          – checked state, implements Checkable
//   - RadioGroup           – a set of radio buttons with at most one checked
//   - Spinner              – a list of items with a selected position
//
// # Usage
//
//	email := widget.NewEditText("email")
//	email.SetText("jane@example.com")
//
//	terms := widget.NewCheckBox("terms")
//	terms.SetChecked(true)
//
//	country := widget.NewSpinner("country", "Select…", "Norway", "Sweden")
//	country.SetSelection(1)
//
// Widgets also carry an error message slot (SetError / Error) so that hosts can
// surface failed rule messages next to the offending input.
package widget
