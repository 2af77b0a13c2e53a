package widget

// InvalidPosition is reported by Spinner when nothing is selected.
const InvalidPosition = -1

// Spinner is a drop-down list with a selected position.
type Spinner struct {
	base
	items    []string
	selected int
}

// NewSpinner creates a spinner. The first item, if any, is selected.
func NewSpinner(id string, items ...string) *Spinner {
	s := &Spinner{base: base{id: id}, items: items, selected: InvalidPosition}
	if len(items) > 0 {
		s.selected = 0
	}
	return s
}

// SetSelection selects the item at pos. Out of range positions select nothing.
func (s *Spinner) SetSelection(pos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos < 0 || pos >= len(s.items) {
		s.selected = InvalidPosition
		return
	}
	s.selected = pos
}

// SelectedPosition returns the selected index or InvalidPosition.
func (s *Spinner) SelectedPosition() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SelectedItem returns the selected item text or an empty string.
func (s *Spinner) SelectedItem() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == InvalidPosition {
		return ""
	}
	return s.items[s.selected]
}

func (s *Spinner) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
