package main

import (
	"io"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/validator"
	"github.com/dmitrymomot/formkit/pkg/widget"
)

// summary is the printed outcome of one pass.
type summary struct {
	Spec     string `yaml:"spec"`
	Mode     string `yaml:"mode"`
	Language string `yaml:"language"`
	Valid    bool   `yaml:"valid"`
	// Incomplete is set when a targeted pass stopped before reporting errors
	// that lie beyond the target field.
	Incomplete bool          `yaml:"incomplete,omitempty"`
	Passed     []string      `yaml:"passed,omitempty"`
	Errors     []fieldReport `yaml:"errors,omitempty"`
}

type fieldReport struct {
	Field    string   `yaml:"field"`
	Messages []string `yaml:"messages"`
}

// report collects the outcome of one pass. It is the validator listener and
// validated action; done is closed once the outcome is known.
type report struct {
	mu   sync.Mutex
	out  summary
	done chan struct{}
	once sync.Once
}

func newReport(spec string, mode validator.Mode, lang string) *report {
	return &report{
		out:  summary{Spec: spec, Mode: mode.String(), Language: lang},
		done: make(chan struct{}),
	}
}

func (r *report) OnValidationSucceeded() {
	r.mu.Lock()
	r.out.Valid = true
	r.mu.Unlock()
	r.finish()
}

func (r *report) OnValidationFailed(errs validator.ValidationErrors) {
	r.mu.Lock()
	r.out.Valid = false
	r.out.Incomplete = errs.IsEmpty()
	r.out.Errors = r.out.Errors[:0]
	for _, e := range errs {
		r.out.Errors = append(r.out.Errors, fieldReport{Field: e.Field, Messages: slices.Clone(e.Messages)})
	}
	r.mu.Unlock()
	r.finish()
}

// OnAllRulesPassed records widgets that passed every rule. Plain values carry
// no name and are skipped.
func (r *report) OnAllRulesPassed(value any) {
	v, ok := value.(widget.View)
	if !ok {
		return
	}
	r.mu.Lock()
	r.out.Passed = append(r.out.Passed, v.ID())
	r.mu.Unlock()
}

func (r *report) finish() {
	r.once.Do(func() { close(r.done) })
}

// snapshot returns a copy of the collected outcome.
func (r *report) snapshot() summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.out
	s.Passed = slices.Clone(r.out.Passed)
	s.Errors = slices.Clone(r.out.Errors)
	return s
}

func (s summary) write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
