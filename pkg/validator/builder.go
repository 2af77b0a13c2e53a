package validator

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sort"
)

type chainEntry struct {
	rule    Rule
	adapter ViewDataAdapter
	kind    string
	// dataType is nil for quick rules, which receive the raw field value.
	dataType reflect.Type
}

type optionalEntry struct {
	annotation Annotation
	adapter    ViewDataAdapter
}

// ruleSet is the memoized chain map of a validator. A published ruleSet is
// never mutated; changes produce a copy.
type ruleSet struct {
	fields   []*Field
	chains   map[string][]chainEntry
	optional map[string][]optionalEntry
	ordered  bool
}

// active returns fields with a non-empty chain in resolved order.
func (s *ruleSet) active() []*Field {
	out := make([]*Field, 0, len(s.chains))
	for _, f := range s.fields {
		if len(s.chains[f.name]) > 0 {
			out = append(out, f)
		}
	}
	return out
}

func (s *ruleSet) has(name string) bool {
	return len(s.chains[name]) > 0
}

func (s *ruleSet) contains(name string) bool {
	return slices.ContainsFunc(s.fields, func(f *Field) bool { return f.name == name })
}

func (s *ruleSet) clone() *ruleSet {
	c := &ruleSet{
		fields:   slices.Clone(s.fields),
		chains:   make(map[string][]chainEntry, len(s.chains)),
		optional: make(map[string][]optionalEntry, len(s.optional)),
		ordered:  s.ordered,
	}
	for k, v := range s.chains {
		c.chains[k] = v
	}
	for k, v := range s.optional {
		c.optional[k] = v
	}
	return c
}

// without returns a copy with the chain of name removed.
func (s *ruleSet) without(name string) *ruleSet {
	c := s.clone()
	delete(c.chains, name)
	delete(c.optional, name)
	return c
}

// with returns a copy where quick rules are appended to the chain of f. Fields
// new to the set are appended at the end.
func (s *ruleSet) with(f *Field, rules []Rule) *ruleSet {
	c := s.clone()
	if !c.contains(f.name) {
		c.fields = append(c.fields, f)
	}
	chain := slices.Clone(c.chains[f.name])
	for _, r := range rules {
		if r == nil {
			continue
		}
		chain = append(chain, chainEntry{rule: r, kind: "quick"})
	}
	sortChain(chain)
	c.chains[f.name] = chain
	return c
}

func sortChain(chain []chainEntry) {
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].rule.Sequence() < chain[j].rule.Sequence()
	})
}

// adapterLookup resolves validator-local adapters by widget and data type.
type adapterLookup func(widgetType, dataType reflect.Type) (ViewDataAdapter, bool)

// build scans form and resolves every registered annotation into a
// (rule, adapter) pair. Linkers run once all chains exist.
func build(form *Form, registry *Registry, local adapterLookup, log *slog.Logger) (*ruleSet, error) {
	scanned, err := scan(form, registry)
	if err != nil {
		return nil, err
	}

	set := &ruleSet{
		fields:   scanned.fields,
		chains:   make(map[string][]chainEntry, len(scanned.fields)),
		optional: make(map[string][]optionalEntry),
		ordered:  scanned.ordered,
	}
	vctx := newContext(form, log)

	var linkers []Linker
	for _, f := range scanned.fields {
		optional := hasOptional(f.annotations)
		var chain []chainEntry
		for _, a := range f.annotations {
			if !registry.IsRegistered(a) {
				continue
			}
			binder := a.(RuleBinder)

			var adapter ViewDataAdapter
			if f.IsView() {
				adapter, err = resolveAdapter(registry, local, a, binder.DataType(), f)
				if err != nil {
					return nil, err
				}
			}

			rule, err := binder.Bind(vctx)
			if err != nil {
				return nil, fmt.Errorf("field %q: %s: %w", f.name, a.Kind(), err)
			}
			if l, ok := rule.(Linker); ok {
				linkers = append(linkers, l)
			}
			chain = append(chain, chainEntry{rule: rule, adapter: adapter, kind: a.Kind(), dataType: binder.DataType()})

			if optional {
				set.optional[f.name] = append(set.optional[f.name], optionalEntry{annotation: a, adapter: adapter})
			}
		}
		if len(chain) == 0 {
			continue
		}
		sortChain(chain)
		set.chains[f.name] = chain
	}

	for _, l := range linkers {
		if err := l.Link(vctx); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// resolveAdapter consults the registry first, then the validator-local adapters.
func resolveAdapter(registry *Registry, local adapterLookup, a Annotation, dataType reflect.Type, f *Field) (ViewDataAdapter, error) {
	widgetType := f.Type()
	if adapter, ok := registry.AdapterFor(a, widgetType); ok {
		return adapter, nil
	}
	if local != nil {
		if adapter, ok := local(widgetType, dataType); ok {
			return adapter, nil
		}
	}
	return nil, fmt.Errorf("%w: field %q: %s on %s needs %s", ErrNoAdapter, f.name, a.Kind(), widgetType, dataType)
}
