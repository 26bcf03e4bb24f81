package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/s0up4200/marquee/catalog"
)

// ErrSubmitting is returned for edits attempted while a submit is in flight
var ErrSubmitting = errors.New("form is being submitted")

// FormState is the lifecycle state of the movie form
type FormState int

const (
	// FormIdle holds an empty, untouched draft
	FormIdle FormState = iota
	// FormEditing holds a draft with edits or a failed submit
	FormEditing
	// FormSubmitting has a create request in flight; edits are rejected
	FormSubmitting
)

// String returns the string representation of a FormState
func (s FormState) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormEditing:
		return "editing"
	case FormSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// SubmitFunc sends a validated draft to the server
type SubmitFunc func(ctx context.Context, draft catalog.Draft) error

// Form manages the movie draft: Idle -> Editing -> Submitting, then back to
// Idle on success or Editing (with the error kept) on failure.
type Form struct {
	mu    sync.Mutex
	state FormState
	draft catalog.Draft
	err   error
}

// NewForm creates an empty form
func NewForm() *Form {
	return &Form{}
}

// State returns the current form state
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Draft returns a copy of the current draft
func (f *Form) Draft() catalog.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Err returns the error of the last failed submit, if any
func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Set edits one field by name
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FormSubmitting {
		return ErrSubmitting
	}
	if err := f.draft.Set(field, value); err != nil {
		return err
	}
	f.state = FormEditing
	return nil
}

// Load replaces the whole draft
func (f *Form) Load(draft catalog.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FormSubmitting {
		return ErrSubmitting
	}
	f.draft = draft
	f.state = FormEditing
	if draft.IsEmpty() {
		f.state = FormIdle
	}
	return nil
}

// Reset clears the draft and any error
func (f *Form) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FormSubmitting {
		return ErrSubmitting
	}
	f.draft = catalog.Draft{}
	f.err = nil
	f.state = FormIdle
	return nil
}

// Submit validates the draft and hands it to fn. Validation failures never
// reach fn. On success the draft is reset; on failure it is kept for retry.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return ErrSubmitting
	}

	if err := f.draft.Validate(); err != nil {
		f.state = FormEditing
		f.err = err
		f.mu.Unlock()
		return err
	}

	draft := f.draft
	f.state = FormSubmitting
	f.err = nil
	f.mu.Unlock()

	err := fn(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = FormEditing
		f.err = err
		return err
	}

	f.draft = catalog.Draft{}
	f.state = FormIdle
	return nil
}
