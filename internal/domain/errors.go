package domain

import "errors"

// ErrorKind is the stable machine-readable classification handed to the
// presentation layer next to a display message. Kinds never downgrade: a
// component reports the most specific kind it can determine.
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "invalid_input"
	KindChallengeFailed   ErrorKind = "challenge_failed"
	KindSignatureDeclined ErrorKind = "signature_declined"
	KindRejectedByService ErrorKind = "rejected_by_service"
	KindTokenUndecodable  ErrorKind = "token_undecodable"
	KindNotAuthenticated  ErrorKind = "not_authenticated"
	KindEmptyContent      ErrorKind = "empty_content"
	KindRequestFailed     ErrorKind = "request_failed"
	KindBroadcastRejected ErrorKind = "broadcast_rejected"
	KindIndexingTimeout   ErrorKind = "indexing_timeout"
	KindNotFound          ErrorKind = "not_found"
	KindTransport         ErrorKind = "transport_error"
)

// Error classifies a failed operation without losing the underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the classification carried by err, or the empty kind when
// err is nil or unclassified.
func KindOf(err error) ErrorKind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return ""
}
