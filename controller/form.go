package controller

import (
	"context"
	"fmt"
)

// FormSpec describes one content type to the generic form controller: its
// default draft, how to fetch an entity into a draft, the required-field
// rules and the submit-time normalization into a wire payload.
type FormSpec[D, T any] struct {
	// Defaults is the empty draft used in create mode.
	Defaults func() D

	// Fetch loads the entity for edit mode.
	Fetch func(ctx context.Context, id int64) (*T, error)

	// ToDraft projects a fetched entity into an editable draft.
	ToDraft func(*T) D

	// Validate returns field-scoped messages for the rules that are
	// checked locally; an empty map allows submission.
	Validate func(D) map[string]string

	// Payload normalizes the draft into the create/update body.
	Payload func(D) any

	Create func(ctx context.Context, payload any) (*T, error)
	Update func(ctx context.Context, id int64, payload any) (*T, error)
}

// FormController manages one entity's create/edit lifecycle: a mutable
// draft, field validation on submit, and the create-or-update dispatch.
// Instances are request-scoped and not safe for concurrent use; each open
// form owns exactly one.
type FormController[D, T any] struct {
	spec   FormSpec[D, T]
	editID *int64

	draft       D
	fieldErrors map[string]string
	submitErr   error
}

// NewCreateForm starts a form from the content type's default draft.
func NewCreateForm[D, T any](spec FormSpec[D, T]) *FormController[D, T] {
	return &FormController[D, T]{
		spec:  spec,
		draft: spec.Defaults(),
	}
}

// NewEditForm fetches the entity and starts a form from it. A fetch failure
// returns the error and no controller: the caller navigates away instead of
// showing a partial form.
func NewEditForm[D, T any](ctx context.Context, spec FormSpec[D, T], id int64) (*FormController[D, T], error) {
	entity, err := spec.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load entity %d: %w", id, err)
	}
	return &FormController[D, T]{
		spec:   spec,
		editID: &id,
		draft:  spec.ToDraft(entity),
	}, nil
}

// ResumeEditForm starts an edit form directly from a bound draft, without
// fetching the entity. Used on submit, where the posted values replace every
// field anyway and a fetch could only fail and lose them.
func ResumeEditForm[D, T any](spec FormSpec[D, T], id int64, draft D) *FormController[D, T] {
	return &FormController[D, T]{
		spec:   spec,
		editID: &id,
		draft:  draft,
	}
}

// IsEdit reports whether the form updates an existing entity.
func (f *FormController[D, T]) IsEdit() bool { return f.editID != nil }

// Draft returns the current working copy.
func (f *FormController[D, T]) Draft() D { return f.draft }

// SetDraft replaces the working copy, e.g. from posted form values. The
// previous validation state is kept until the next submit attempt.
func (f *FormController[D, T]) SetDraft(d D) { f.draft = d }

// FieldErrors returns the field-scoped messages from the last submit
// attempt.
func (f *FormController[D, T]) FieldErrors() map[string]string { return f.fieldErrors }

// SubmitError returns the request-level error from the last submit attempt,
// distinct from field errors.
func (f *FormController[D, T]) SubmitError() error { return f.submitErr }

// Submit validates, normalizes and dispatches the draft. It reports whether
// the entity was saved; on any failure the draft is retained unchanged so
// the operator loses no input. Field failures never reach the network.
func (f *FormController[D, T]) Submit(ctx context.Context) (bool, error) {
	f.submitErr = nil

	f.fieldErrors = f.spec.Validate(f.draft)
	if len(f.fieldErrors) > 0 {
		return false, nil
	}

	payload := f.spec.Payload(f.draft)

	var err error
	if f.editID != nil {
		_, err = f.spec.Update(ctx, *f.editID, payload)
	} else {
		_, err = f.spec.Create(ctx, payload)
	}
	if err != nil {
		f.submitErr = err
		return false, err
	}
	return true, nil
}
