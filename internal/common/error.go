// Package common defines shared constants and sentinel errors used across
// the server and client layers of photodrop. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Upload credential issuance and redemption.
	ErrCredentialBackend       = errors.New("credential backend error")
	ErrNoDestinationConfigured = errors.New("no upload destination configured")
	ErrNoFileSelected          = errors.New("you must select an image to upload")
	ErrTransferFailed          = errors.New("transfer failed")
	ErrTransfer                = errors.New("transfer error")
	ErrRecordInsertFailed      = errors.New("record insert failed")

	// Session synchronisation.
	ErrMissingToken  = errors.New("missing access_token or refresh_token")
	ErrRestoreFailed = errors.New("session restore failed")
)
