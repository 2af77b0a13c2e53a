package validator

import (
	"fmt"
	"sort"
)

// scanResult is the set of fields that take part in validation.
type scanResult struct {
	fields []*Field
	// ordered is true iff every field carries an Order annotation.
	ordered bool
}

// scan selects the fields that carry an Order marker or at least one
// registered annotation, walking forms root to leaf in declaration order.
// When every selected field is ordered they are sorted by order value,
// otherwise discovery order is kept.
func scan(form *Form, registry *Registry) (scanResult, error) {
	var res scanResult
	seen := make(map[string]struct{})

	for _, f := range form.all() {
		if err := f.validate(); err != nil {
			return scanResult{}, err
		}
		if _, dup := seen[f.name]; dup {
			return scanResult{}, fmt.Errorf("%w: duplicate field name %q", ErrInvalidFieldRef, f.name)
		}
		seen[f.name] = struct{}{}

		if f.ordered || hasRegistered(f.annotations, registry) {
			res.fields = append(res.fields, f)
		}
	}

	res.ordered = len(res.fields) > 0
	for _, f := range res.fields {
		if !f.ordered {
			res.ordered = false
			break
		}
	}
	if res.ordered {
		sort.SliceStable(res.fields, func(i, j int) bool {
			return res.fields[i].order < res.fields[j].order
		})
	}
	return res, nil
}

func hasRegistered(annotations []Annotation, registry *Registry) bool {
	for _, a := range annotations {
		if registry.IsRegistered(a) {
			return true
		}
	}
	return false
}
