package client

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/photodrop/internal/common"
)

// ErrUnavailable wraps transport failures: the server could not be reached.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a non-2xx answer from the server. Message is the server's
// error text as sent, without any prefix.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

func (e *APIError) Unwrap() error { return e.kind }

func kindFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	case http.StatusBadRequest:
		return common.ErrorValidation
	default:
		return common.ErrorInternal
	}
}
