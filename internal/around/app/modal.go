package app

import (
	"context"

	"github.com/5hraddha/around/internal/around/form"
	"github.com/5hraddha/around/internal/around/popup"
	apperrors "github.com/5hraddha/around/internal/platform/errors"
	"github.com/5hraddha/around/internal/platform/i18n"
)

// FormModal is a popup that carries a form: the profile, avatar and
// add-place editors differ only in fields, initial values and submit target.
type FormModal[F ~string] struct {
	kind    popup.Kind
	op      string
	form    *form.Form[F]
	popups  *popup.Orchestrator
	labels  Labels
	initial func() map[F]string
	submit  func(ctx context.Context, values map[F]string) error
	invalid string
}

type modalConfig[F ~string] struct {
	kind    popup.Kind
	op      string
	fields  []F
	rules   map[F]form.Constraint
	labels  Labels
	initial func() map[F]string
	submit  func(ctx context.Context, values map[F]string) error
}

func newFormModal[F ~string](locale string, popups *popup.Orchestrator, cfg modalConfig[F]) *FormModal[F] {
	return &FormModal[F]{
		kind:    cfg.kind,
		op:      cfg.op,
		form:    form.New(cfg.fields...).WithValidator(form.NewSchema(locale, cfg.rules)),
		popups:  popups,
		labels:  cfg.labels,
		initial: cfg.initial,
		submit:  cfg.submit,
		invalid: i18n.Localize(i18n.Printer(locale), i18n.KeyFormInvalid),
	}
}

// Open resets the form to its initial values and shows the popup. Stale
// values and errors from an earlier open never carry over.
func (m *FormModal[F]) Open() {
	resetForm(m.form, m.initial())
	_ = m.popups.Open(m.kind, nil)
}

// IsOpen reports whether this modal is the open primary popup.
func (m *FormModal[F]) IsOpen() bool {
	return m.popups.State().IsOpen(m.kind)
}

// Input records a field change.
func (m *FormModal[F]) Input(field F, value string) form.Validity {
	return m.form.Input(field, value)
}

// Form exposes the underlying form state.
func (m *FormModal[F]) Form() *form.Form[F] { return m.form }

// Label returns the submit caption for the loading state.
func (m *FormModal[F]) Label(loading bool) string { return m.labels.Text(loading) }

// Submit sends the form when it is valid. An invalid form surfaces every
// field's message and never reaches the network.
func (m *FormModal[F]) Submit(ctx context.Context) error {
	if err := validateForm(m.op, m.form, m.invalid); err != nil {
		return err
	}
	return m.submit(ctx, m.form.Snapshot().Values)
}

// resetForm replaces the form state with values, no errors, and validity
// computed without showing messages.
func resetForm[F ~string](f *form.Form[F], values map[F]string) {
	f.ResetForm(values, nil, false)
	f.Revalidate()
}

// validateForm rechecks every field so each shows its message, and returns
// a validation error naming the first failure.
func validateForm[F ~string](op string, f *form.Form[F], fallback string) error {
	if f.IsValid() {
		return nil
	}
	for _, field := range f.Fields() {
		f.Input(field, f.Value(field))
	}
	if f.IsValid() {
		return nil
	}
	if field, msg, ok := f.FirstError(); ok {
		return apperrors.EK(apperrors.KindValidation, op, "", string(field)+": "+msg)
	}
	return apperrors.EK(apperrors.KindValidation, op, i18n.KeyFormInvalid, fallback)
}
