package formspec

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Spec is a parsed form description.
type Spec struct {
	Mode    *validator.Mode   `yaml:"mode"`
	Lookups map[string]Lookup `yaml:"lookups"`
	Fields  []Field           `yaml:"fields"`
}

// Lookup declares a validator.Checker usable by unique rules.
type Lookup struct {
	// Type is memory, redis, postgres or mongo.
	Type       string   `yaml:"type"`
	Values     []string `yaml:"values"`
	Key        string   `yaml:"key"`
	Table      string   `yaml:"table"`
	Column     string   `yaml:"column"`
	Collection string   `yaml:"collection"`
	Field      string   `yaml:"field"`
	FoldCase   bool     `yaml:"fold_case"`
}

// Field declares one widget or plain value and its rules.
type Field struct {
	Name string `yaml:"name"`
	// Widget is edit_text (default), text_view, check_box, radio_group,
	// spinner or plain.
	Widget   string    `yaml:"widget"`
	Hint     string    `yaml:"hint"`
	Value    yaml.Node `yaml:"value"`
	Checked  bool      `yaml:"checked"`
	Items    []string  `yaml:"items"`
	Selected *int      `yaml:"selected"`
	Buttons  []string  `yaml:"buttons"`
	Sanitize []string  `yaml:"sanitize"`
	Rules    []Rule    `yaml:"rules"`
}

// Rule is one annotation entry. Params holds the whole mapping, including
// the kind key.
type Rule struct {
	Kind   string
	Lookup string
	Params yaml.Node
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: rule must be a mapping", ErrInvalidSpec, node.Line)
	}
	var head struct {
		Kind   string `yaml:"kind"`
		Lookup string `yaml:"lookup"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	if head.Kind == "" {
		return fmt.Errorf("%w: line %d: rule without kind", ErrInvalidSpec, node.Line)
	}
	r.Kind, r.Lookup, r.Params = head.Kind, head.Lookup, *node
	return nil
}

// Parse reads a spec from r.
func Parse(r io.Reader) (*Spec, error) {
	var s Spec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSpec)
		}
		return nil, errors.Join(ErrInvalidSpec, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ParseFile reads a spec from the file at path.
func ParseFile(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (s *Spec) validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidSpec)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field without name", ErrInvalidSpec)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = true
		for _, r := range f.Rules {
			if r.Lookup == "" {
				continue
			}
			if _, ok := s.Lookups[r.Lookup]; !ok {
				return fmt.Errorf("%w: %q in field %q", ErrUnknownLookup, r.Lookup, f.Name)
			}
		}
	}
	return nil
}
