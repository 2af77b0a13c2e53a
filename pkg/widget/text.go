package widget

// TextView displays read-only text.
type TextView struct {
	base
	text string
}

// NewTextView creates a text view with initial content.
func NewTextView(id, text string) *TextView {
	return &TextView{base: base{id: id}, text: text}
}

func (v *TextView) Text() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.text
}

func (v *TextView) SetText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text = text
}

// EditText is an editable text field.
type EditText struct {
	TextView
	hint string
}

// NewEditText creates an empty editable text field.
func NewEditText(id string) *EditText {
	return &EditText{TextView: TextView{base: base{id: id}}}
}

// WithHint sets the placeholder shown while the field is empty.
func (e *EditText) WithHint(hint string) *EditText {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hint = hint
	return e
}

func (e *EditText) Hint() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hint
}
