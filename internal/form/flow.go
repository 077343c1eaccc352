// Package form implements the multi-step wizards behind the creation and application
// screens. A flow collects field values step by step and ends by either writing one new
// entity into a store or being discarded.
package form

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrFlowClosed = errors.New("form: flow already submitted or cancelled")
	ErrFirstStep  = errors.New("form: already at the first step")
)

// State is the lifecycle of a flow.
type State string

const (
	Editing   State = "editing"
	Submitted State = "submitted"
	Cancelled State = "cancelled"
)

// ValidationError points at the field that blocks a step or the final submit.
type ValidationError struct {
	Step    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldName implements httperr.FieldError.
func (e *ValidationError) FieldName() string {
	return e.Field
}

// Step is one screen of a wizard.
type Step struct {
	Name     string
	Required []string
	// Check runs after the required fields are present.
	Check func(Fields) error
}

func (s Step) validate(fields Fields) error {
	for _, key := range s.Required {
		if !fields.Has(key) {
			return &ValidationError{Step: s.Name, Field: key, Message: key + " is required"}
		}
	}
	if s.Check == nil {
		return nil
	}
	if err := s.Check(fields); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			if ve.Step == "" {
				ve.Step = s.Name
			}
			return ve
		}
		return &ValidationError{Step: s.Name, Message: err.Error()}
	}
	return nil
}

// Submitter turns the collected fields into a new entity and stores it. It must not store
// anything when it returns an error.
type Submitter func(Fields) (any, error)

// Flow is one in-progress wizard. It is safe for concurrent use.
type Flow struct {
	mu      sync.Mutex
	id      string
	kind    Kind
	steps   []Step
	current int
	fields  Fields
	state   State
	submit  Submitter
	result  any
}

// New creates a flow positioned at its first step. steps must not be empty.
func New(id string, kind Kind, steps []Step, submit Submitter) *Flow {
	return &Flow{
		id:     id,
		kind:   kind,
		steps:  steps,
		fields: Fields{},
		state:  Editing,
		submit: submit,
	}
}

func (f *Flow) ID() string { return f.id }
func (f *Flow) Kind() Kind { return f.kind }

// Set replaces the values of one field.
func (f *Flow) Set(key string, values ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return ErrFlowClosed
	}
	f.fields.Set(key, values...)
	return nil
}

// Merge replaces every field present in values.
func (f *Flow) Merge(values Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return ErrFlowClosed
	}
	for k, vs := range values {
		f.fields.Set(k, vs...)
	}
	return nil
}

// CanAdvance validates the current step against the values entered so far.
func (f *Flow) CanAdvance() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return ErrFlowClosed
	}
	return f.steps[f.current].validate(f.fields)
}

// Next moves to the following step once the current one validates. On the last step it
// submits instead.
func (f *Flow) Next() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return f.state, ErrFlowClosed
	}
	if err := f.steps[f.current].validate(f.fields); err != nil {
		return f.state, err
	}
	if f.current == len(f.steps)-1 {
		_, err := f.submitLocked()
		return f.state, err
	}
	f.current++
	return f.state, nil
}

// Back returns to the previous step. Entered values are kept.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return ErrFlowClosed
	}
	if f.current == 0 {
		return ErrFirstStep
	}
	f.current--
	return nil
}

// Submit validates every step and hands the fields to the submitter. On failure the flow
// stays at its current step and nothing is stored.
func (f *Flow) Submit() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return nil, ErrFlowClosed
	}
	return f.submitLocked()
}

func (f *Flow) submitLocked() (any, error) {
	for _, step := range f.steps {
		if err := step.validate(f.fields); err != nil {
			return nil, err
		}
	}
	result, err := f.submit(f.fields.clone())
	if err != nil {
		return nil, err
	}
	f.state = Submitted
	f.result = result
	return result, nil
}

// Cancel discards the flow. Nothing it collected is stored.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Editing {
		return ErrFlowClosed
	}
	f.state = Cancelled
	f.fields = Fields{}
	return nil
}

// Snapshot is a read-only view of a flow.
type Snapshot struct {
	ID     string   `json:"id"`
	Kind   Kind     `json:"kind"`
	State  State    `json:"state"`
	Step   int      `json:"step"`
	Name   string   `json:"stepName"`
	Steps  []string `json:"steps"`
	Fields Fields   `json:"fields"`
	Result any      `json:"result,omitempty"`
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.steps))
	for _, s := range f.steps {
		names = append(names, s.Name)
	}
	return Snapshot{
		ID:     f.id,
		Kind:   f.kind,
		State:  f.state,
		Step:   f.current,
		Name:   f.steps[f.current].Name,
		Steps:  names,
		Fields: f.fields.clone(),
		Result: f.result,
	}
}
