// lending/errors.go
package lending

import (
	"errors"
	"strings"
)

// Kind classifies every way a lending operation can fail.
type Kind string

const (
	KindDateInPast               Kind = "DATE_IN_PAST"
	KindDateTooFarAhead          Kind = "DATE_TOO_FAR_AHEAD"
	KindInvalidStatusForCreate   Kind = "INVALID_STATUS_FOR_CREATE"
	KindInvalidStatusForApproval Kind = "INVALID_STATUS_FOR_APPROVAL"
	KindInvalidStatusForUpdate   Kind = "INVALID_STATUS_FOR_UPDATE"
	KindStatusMustBeAvailable    Kind = "STATUS_MUST_BE_AVAILABLE"
	KindDueBackMustBeNull        Kind = "DUE_BACK_MUST_BE_NULL"
	KindBorrowerMustBeEmpty      Kind = "BORROWER_MUST_BE_EMPTY"
	KindNotFound                 Kind = "NOT_FOUND"
	KindForbidden                Kind = "FORBIDDEN"
	KindUnauthenticated          Kind = "UNAUTHENTICATED"
	KindConflict                 Kind = "CONFLICT"
)

type kindError struct {
	kind Kind
	msg  string
}

func (e kindError) Error() string { return e.msg }
func (e kindError) Code() Kind    { return e.kind }

var (
	ErrNotFound        = kindError{KindNotFound, "record not found"}
	ErrForbidden       = kindError{KindForbidden, "forbidden"}
	ErrUnauthenticated = kindError{KindUnauthenticated, "authentication required"}
	ErrConflict        = kindError{KindConflict, "copy was modified concurrently"}
)

// CodeOf extracts the Kind from any lending error, "" otherwise.
func CodeOf(err error) Kind {
	var ce interface{ Code() Kind }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// FieldError is one rejected field of an operation payload.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// ValidationError carries every field rejection detected for a payload.
// Operations never apply partial writes: if this error is returned the
// stored copy is untouched.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Has(k Kind) bool {
	for _, f := range e.Fields {
		if f.Kind == k {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(field string, kind Kind, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Kind: kind, Message: msg})
}

// orNil keeps callers honest: an empty collector means success.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
