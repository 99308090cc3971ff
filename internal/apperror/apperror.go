// Package apperror classifies failures into the three kinds the HTTP
// boundary knows how to render.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a translatable message id for the client and an
// optional cause that is only ever logged.
type Error struct {
	Kind      Kind
	MessageID string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.MessageID + ": " + e.Err.Error()
	}
	return e.MessageID
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(messageID string) *Error {
	return &Error{Kind: KindValidation, MessageID: messageID}
}

func NotFound(messageID string) *Error {
	return &Error{Kind: KindNotFound, MessageID: messageID}
}

func Internal(messageID string, cause error) *Error {
	return &Error{Kind: KindInternal, MessageID: messageID, Err: cause}
}

// From extracts the *Error in err's chain. Anything unclassified becomes
// an internal failure with the generic message.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(MsgInternal, err)
}

func KindOf(err error) Kind {
	return From(err).Kind
}

// Message ids shared by the storefront handlers.
const (
	MsgInternal           = "internal_error"
	MsgPolicyTypeRequired = "policy_type_required"
	MsgPolicyNotFound     = "policy_not_found"
	MsgProductsFetch      = "products_fetch_failed"
	MsgInvalidQuery       = "invalid_query"
)
