package form

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/message"

	"github.com/5hraddha/around/internal/platform/i18n"
)

// InputType mirrors the input types whose syntax the host checks.
type InputType int

const (
	TypeText InputType = iota
	TypeEmail
	TypeURL
	TypePassword
)

// Constraint describes the checks applied to one field.
type Constraint struct {
	Required  bool
	Type      InputType
	MinLength int
	MaxLength int
}

// Tag renders c as a go-playground/validator tag.
func (c Constraint) Tag() string {
	parts := make([]string, 0, 4)
	if c.Required {
		parts = append(parts, "required")
	} else {
		parts = append(parts, "omitempty")
	}
	switch c.Type {
	case TypeEmail:
		parts = append(parts, "email")
	case TypeURL:
		parts = append(parts, "url")
	}
	if c.MinLength > 0 {
		parts = append(parts, "min="+strconv.Itoa(c.MinLength))
	}
	if c.MaxLength > 0 {
		parts = append(parts, "max="+strconv.Itoa(c.MaxLength))
	}
	return strings.Join(parts, ",")
}

// Schema is a Validator built from per-field constraints. Messages follow
// the wording browsers use for native constraint validation.
type Schema[F ~string] struct {
	rules    map[F]Constraint
	validate *validator.Validate
	printer  *message.Printer
}

// NewSchema returns a schema for rules with messages in locale.
func NewSchema[F ~string](locale string, rules map[F]Constraint) *Schema[F] {
	copied := make(map[F]Constraint, len(rules))
	for field, rule := range rules {
		copied[field] = rule
	}
	return &Schema[F]{
		rules:    copied,
		validate: validator.New(),
		printer:  i18n.Printer(locale),
	}
}

// Constraint returns the rule registered for field.
func (s *Schema[F]) Constraint(field F) (Constraint, bool) {
	rule, ok := s.rules[field]
	return rule, ok
}

// Check validates value against the rule for field. Fields without a rule
// accept anything.
func (s *Schema[F]) Check(field F, value string) Validity {
	rule, ok := s.rules[field]
	if !ok {
		return Valid
	}
	err := s.validate.Var(value, rule.Tag())
	if err == nil {
		return Valid
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Invalid(i18n.Localize(s.printer, i18n.KeyInvalidValue))
	}
	return Invalid(s.message(fieldErrs[0], value))
}

func (s *Schema[F]) message(fe validator.FieldError, value string) string {
	length := utf8.RuneCountInString(value)
	switch fe.Tag() {
	case "required":
		return i18n.Localize(s.printer, i18n.KeyValueMissing)
	case "email":
		return i18n.Localize(s.printer, i18n.KeyTypeEmail)
	case "url":
		return i18n.Localize(s.printer, i18n.KeyTypeURL)
	case "min":
		limit, _ := strconv.Atoi(fe.Param())
		return i18n.Localize(s.printer, i18n.KeyTooShort, limit, length)
	case "max":
		limit, _ := strconv.Atoi(fe.Param())
		return i18n.Localize(s.printer, i18n.KeyTooLong, limit, length)
	default:
		return i18n.Localize(s.printer, i18n.KeyInvalidValue)
	}
}
