package validator

import (
	"fmt"
	"strings"
)

// Mode selects how a pass reacts to failures.
type Mode int

const (
	// Burst evaluates every field and reports all failures.
	Burst Mode = iota
	// Immediate stops at the first failing field. Requires ordered fields.
	Immediate
)

func (m Mode) String() string {
	switch m {
	case Burst:
		return "burst"
	case Immediate:
		return "immediate"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "burst" or "immediate", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "burst", "":
		return Burst, nil
	case "immediate":
		return Immediate, nil
	default:
		return Burst, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText lets env and yaml decoders read modes by name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
