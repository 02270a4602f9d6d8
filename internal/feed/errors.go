package feed

import "errors"

// Kind classifies a feed operation failure so callers can map it to a
// transport-level response without inspecting error strings.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindNotAuthorized Kind = "not_authorized"
	KindStorage       Kind = "storage"
)

// Error carries the failure classification alongside a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from err, or KindStorage when the
// error did not originate from this package.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindStorage
}

func validationErr(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func notFoundErr(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func notAuthorizedErr(message string) error {
	return &Error{Kind: KindNotAuthorized, Message: message}
}

func storageErr(message string, err error) error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}
