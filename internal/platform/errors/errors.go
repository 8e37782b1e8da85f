// Package errors defines typed client failures shared by the around packages.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a client failure.
type Kind string

const (
	KindUnknown          Kind = "unknown"
	KindNetwork          Kind = "network"
	KindUnexpectedStatus Kind = "unexpected_status"
	KindMalformed        Kind = "malformed_response"
	KindValidation       Kind = "validation"
	KindInvalidInput     Kind = "invalid_input"
	KindUnauthorized     Kind = "unauthorized"
	KindNotFound         Kind = "not_found"
	KindUnavailable      Kind = "unavailable"
)

// Error is a typed client failure.
type Error struct {
	Kind    Kind
	Op      string // operation name, e.g. "cards.list"
	Status  int    // HTTP status for KindUnexpectedStatus
	Key     string // localization key for user-facing copy
	Message string
	Cause   error
}

// Error renders op, message and cause.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Kind == KindUnexpectedStatus && e.Status != 0:
		fmt.Fprintf(&b, "unexpected status %d", e.Status)
	default:
		b.WriteString(string(e.Kind))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same kind (and status when set).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Status == 0 || t.Status == e.Status
}

// E builds a typed Error.
func E(kind Kind, op, message string) error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, op, key, message string) error {
	return &Error{Kind: kind, Op: op, Key: strings.TrimSpace(key), Message: message}
}

// Wrap builds a typed Error around cause.
func Wrap(kind Kind, op string, cause error) error {
	return &Error{Kind: kind, Op: op, Cause: cause}
}

// StatusError reports a non-2xx HTTP response.
func StatusError(op string, status int, body string) error {
	return &Error{
		Kind:    KindUnexpectedStatus,
		Op:      op,
		Status:  status,
		Message: statusMessage(status, body),
	}
}

// KindOf returns the kind of the first typed error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var typed *Error
	if !stderrors.As(err, &typed) {
		return KindUnknown
	}
	return typed.Kind
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var typed *Error
	if !stderrors.As(err, &typed) {
		return 0
	}
	return typed.Status
}

// LocalizationKey returns the structured localization key when available.
func LocalizationKey(err error) string {
	var typed *Error
	if !stderrors.As(err, &typed) {
		return ""
	}
	return strings.TrimSpace(typed.Key)
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func statusMessage(status int, body string) string {
	text := http.StatusText(status)
	if text == "" {
		text = "status"
	}
	msg := fmt.Sprintf("unexpected status %d %s", status, text)
	body = strings.TrimSpace(body)
	if body == "" {
		return msg
	}
	const maxBody = 200
	if len(body) > maxBody {
		body = body[:maxBody] + "..."
	}
	return msg + ": " + body
}
