package widget

import "sync"

// View is the common capability of every widget.
type View interface {
	ID() string
}

// TextInput is a widget exposing editable or static text.
type TextInput interface {
	View
	Text() string
	SetText(text string)
}

// Checkable is a two-state widget.
type Checkable interface {
	View
	IsChecked() bool
	SetChecked(checked bool)
}

// ErrorDisplay is implemented by widgets able to show a validation message.
type ErrorDisplay interface {
	View
	SetError(msg string)
	Error() string
}

// base holds the state shared by all widgets.
type base struct {
	id  string
	mu  sync.RWMutex
	err string
}

func (b *base) ID() string { return b.id }

// SetError sets the message shown next to the widget. An empty string clears it.
func (b *base) SetError(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = msg
}

// Error returns the message currently shown next to the widget.
func (b *base) Error() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.err
}
