// Package sanitizer provides small, stateless helpers that normalise user input
// before it is validated or stored.
//
// Helpers are plain func(string) string values and can be combined into
// pipelines with Apply and Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.NormalizeWhitespace,
//	    sanitizer.ToLower,
//	)
//
//	safe := clean("  Mixed CASE   Input\n") // "mixed case input"
//
// Named helpers can be looked up with ByName, which lets declarative form
// definitions reference them as plain strings ("trim", "lower", "digits", …).
package sanitizer
