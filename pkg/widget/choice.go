package widget

// CheckBox is a stand-alone two-state widget.
type CheckBox struct {
	base
	checked bool
}

func NewCheckBox(id string) *CheckBox {
	return &CheckBox{base: base{id: id}}
}

func (c *CheckBox) IsChecked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.checked
}

func (c *CheckBox) SetChecked(checked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked = checked
}

// RadioButton is a two-state widget usually placed inside a RadioGroup.
type RadioButton struct {
	base
	checked bool
	group   *RadioGroup
}

func NewRadioButton(id string) *RadioButton {
	return &RadioButton{base: base{id: id}}
}

func (r *RadioButton) IsChecked() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.checked
}

// SetChecked updates the button. Checking a grouped button unchecks its siblings.
func (r *RadioButton) SetChecked(checked bool) {
	r.mu.Lock()
	r.checked = checked
	group := r.group
	r.mu.Unlock()

	if checked && group != nil {
		group.uncheckOthers(r)
	}
}

// RadioGroup holds radio buttons with at most one of them checked.
type RadioGroup struct {
	base
	buttons []*RadioButton
}

// NewRadioGroup creates a group and attaches the given buttons to it.
func NewRadioGroup(id string, buttons ...*RadioButton) *RadioGroup {
	g := &RadioGroup{base: base{id: id}}
	for _, b := range buttons {
		g.Add(b)
	}
	return g
}

// Add attaches a button to the group.
func (g *RadioGroup) Add(b *RadioButton) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.group = g
	checked := b.checked
	b.mu.Unlock()

	g.mu.Lock()
	g.buttons = append(g.buttons, b)
	g.mu.Unlock()

	if checked {
		g.uncheckOthers(b)
	}
}

// Check checks the button with the given ID. Unknown IDs clear the selection.
func (g *RadioGroup) Check(id string) {
	for _, b := range g.Buttons() {
		if b.ID() == id {
			b.SetChecked(true)
			return
		}
	}
	g.ClearCheck()
}

// ClearCheck unchecks every button in the group.
func (g *RadioGroup) ClearCheck() {
	for _, b := range g.Buttons() {
		b.mu.Lock()
		b.checked = false
		b.mu.Unlock()
	}
}

// CheckedID returns the ID of the checked button, or an empty string.
func (g *RadioGroup) CheckedID() string {
	for _, b := range g.Buttons() {
		if b.IsChecked() {
			return b.ID()
		}
	}
	return ""
}

// Buttons returns a snapshot of the group members.
func (g *RadioGroup) Buttons() []*RadioButton {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*RadioButton, len(g.buttons))
	copy(out, g.buttons)
	return out
}

func (g *RadioGroup) uncheckOthers(keep *RadioButton) {
	for _, b := range g.Buttons() {
		if b == keep {
			continue
		}
		b.mu.Lock()
		b.checked = false
		b.mu.Unlock()
	}
}
