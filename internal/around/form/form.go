// Package form tracks per-field values, error text and aggregate validity for
// an arbitrary named field set.
//
// A Form does not judge values itself. Callers pass the outcome of a host
// validation primitive to HandleFieldChange, or attach a Validator and use
// Input.
package form

import (
	"maps"
	"slices"
	"sync"
)

// Validity is the result of checking one field value.
type Validity struct {
	Valid   bool
	Message string
}

// Valid is the Validity of an accepted value.
var Valid = Validity{Valid: true}

// Invalid returns a failed Validity carrying message.
func Invalid(message string) Validity {
	return Validity{Message: message}
}

// Validator checks a single field value.
type Validator[F ~string] interface {
	Check(field F, value string) Validity
}

// State is a point-in-time copy of a form.
type State[F ~string] struct {
	Values  map[F]string
	Errors  map[F]string
	IsValid bool
}

// Form holds the values, errors and validity for fields F.
type Form[F ~string] struct {
	mu        sync.RWMutex
	fields    []F
	values    map[F]string
	errors    map[F]string
	valid     map[F]bool
	isValid   bool
	validator Validator[F]
}

// New returns an initialized form over fields.
func New[F ~string](fields ...F) *Form[F] {
	f := &Form[F]{}
	f.Initialize(fields...)
	return f
}

// WithValidator attaches v for use by Input and returns f.
func (f *Form[F]) WithValidator(v Validator[F]) *Form[F] {
	f.mu.Lock()
	f.validator = v
	f.mu.Unlock()
	return f
}

// Initialize registers fields with empty values and errors. The form starts
// invalid.
func (f *Form[F]) Initialize(fields ...F) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields = slices.Clone(fields)
	f.values = make(map[F]string, len(fields))
	f.errors = make(map[F]string, len(fields))
	f.valid = make(map[F]bool, len(fields))
	for _, field := range fields {
		f.values[field] = ""
		f.errors[field] = ""
		f.valid[field] = false
	}
	f.isValid = false
}

// Fields returns the registered fields in registration order.
func (f *Form[F]) Fields() []F {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.fields)
}

// HandleFieldChange records raw for field along with its validity and
// recomputes the aggregate. Unregistered fields are ignored.
func (f *Form[F]) HandleFieldChange(field F, raw string, validity Validity) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[field]; !ok {
		return
	}
	f.values[field] = raw
	if validity.Valid {
		f.errors[field] = ""
	} else {
		f.errors[field] = validity.Message
	}
	f.valid[field] = validity.Valid && f.errors[field] == ""
	f.recompute()
}

// Input checks raw with the attached validator and records the result. Without
// a validator every value is accepted.
func (f *Form[F]) Input(field F, raw string) Validity {
	f.mu.RLock()
	v := f.validator
	f.mu.RUnlock()

	result := Valid
	if v != nil {
		result = v.Check(field, raw)
	}
	f.HandleFieldChange(field, raw, result)
	return result
}

// ResetForm replaces values, errors and validity in one step. Fields missing
// from values or errors reset to empty. With isValid false every field is
// treated as unchecked until it changes again.
func (f *Form[F]) ResetForm(values, errors map[F]string, isValid bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = make(map[F]string, len(f.fields))
	f.errors = make(map[F]string, len(f.fields))
	f.valid = make(map[F]bool, len(f.fields))
	for _, field := range f.fields {
		f.values[field] = values[field]
		f.errors[field] = errors[field]
		f.valid[field] = isValid && errors[field] == ""
	}
	f.isValid = isValid
}

// Revalidate checks every current value with the attached validator and
// returns the aggregate. Error text is left untouched so a freshly opened form
// shows no messages.
func (f *Form[F]) Revalidate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.validator == nil {
		return f.isValid
	}
	for _, field := range f.fields {
		f.valid[field] = f.validator.Check(field, f.values[field]).Valid
	}
	f.recompute()
	return f.isValid
}

// Value returns the current value of field.
func (f *Form[F]) Value(field F) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[field]
}

// Error returns the current error text of field.
func (f *Form[F]) Error(field F) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.errors[field]
}

// IsValid reports the aggregate validity.
func (f *Form[F]) IsValid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.isValid
}

// Snapshot returns a copy of the current state.
func (f *Form[F]) Snapshot() State[F] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return State[F]{
		Values:  maps.Clone(f.values),
		Errors:  maps.Clone(f.errors),
		IsValid: f.isValid,
	}
}

// FirstError returns the first registered field carrying error text.
func (f *Form[F]) FirstError() (F, string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, field := range f.fields {
		if msg := f.errors[field]; msg != "" {
			return field, msg, true
		}
	}
	var zero F
	return zero, "", false
}

func (f *Form[F]) recompute() {
	ok := len(f.fields) > 0
	for _, field := range f.fields {
		if !f.valid[field] || f.errors[field] != "" {
			ok = false
			break
		}
	}
	f.isValid = ok
}
