package formspec

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

type decodeFunc func(params *yaml.Node) (validator.Annotation, error)

func entry[T validator.Annotation]() decodeFunc {
	return func(params *yaml.Node) (validator.Annotation, error) {
		var a T
		if params == nil {
			return a, nil
		}
		raw, err := yaml.Marshal(params)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&a); err != nil {
			return nil, err
		}
		return a, nil
	}
}

var catalog = map[string]decodeFunc{}

func init() {
	for _, d := range []decodeFunc{
		entry[validator.Order](),
		entry[validator.Optional](),
		entry[validator.NotEmpty](),
		entry[validator.Length](),
		entry[validator.Email](),
		entry[validator.URL](),
		entry[validator.Domain](),
		entry[validator.IPAddress](),
		entry[validator.Digits](),
		entry[validator.Pattern](),
		entry[validator.Min](),
		entry[validator.Max](),
		entry[validator.DecimalMin](),
		entry[validator.DecimalMax](),
		entry[validator.Password](),
		entry[validator.ConfirmPassword](),
		entry[validator.ConfirmEmail](),
		entry[validator.Future](),
		entry[validator.Past](),
		entry[validator.AssertTrue](),
		entry[validator.AssertFalse](),
		entry[validator.Checked](),
		entry[validator.Select](),
		entry[validator.UUID](),
		entry[validator.URN](),
		entry[validator.Tag](),
		entry[validator.ISBN](),
		entry[validator.CreditCard](),
		entry[validator.Unique](),
	} {
		a, _ := d(nil)
		catalog[a.Kind()] = d
	}
}

// Kinds lists the rule kinds a spec may use.
func Kinds() []string {
	return slices.Sorted(maps.Keys(catalog))
}

// decodeRule builds the annotation named by r.Kind from its parameters.
func decodeRule(r Rule) (validator.Annotation, error) {
	decode, ok := catalog[r.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownKind, r.Kind, Kinds())
	}
	a, err := decode(params(&r.Params))
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: rule %q, line %d", ErrInvalidSpec, r.Kind, r.Params.Line), err)
	}
	return a, nil
}

// params returns a copy of the mapping without the kind and lookup keys,
// or nil when nothing is left.
func params(node *yaml.Node) *yaml.Node {
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "kind", "lookup":
			continue
		}
		out.Content = append(out.Content, node.Content[i], node.Content[i+1])
	}
	if len(out.Content) == 0 {
		return nil
	}
	return out
}
