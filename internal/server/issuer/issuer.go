// Package issuer implements the upload credential issuer: it authenticates
// the caller, derives a fresh object path under the caller's prefix and asks
// the storage backend for a signed PUT URL bound to that path.
package issuer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/photodrop/internal/common"
	"github.com/dmitrijs2005/photodrop/internal/logging"
	"github.com/dmitrijs2005/photodrop/internal/server/models"
	"github.com/dmitrijs2005/photodrop/internal/server/storage"
	"github.com/google/uuid"
)

// Authenticator resolves an Authorization header value to a principal.
type Authenticator interface {
	Principal(ctx context.Context, authorization string) (*models.Principal, error)
}

// CredentialBackendError wraps a storage backend failure. Its message is the
// backend's message, unchanged.
type CredentialBackendError struct {
	Err error
}

func (e *CredentialBackendError) Error() string { return e.Err.Error() }

func (e *CredentialBackendError) Unwrap() error { return e.Err }

func (e *CredentialBackendError) Is(target error) bool {
	return target == common.ErrCredentialBackend
}

// ExtSource yields the requested file extension. It is consulted only once
// the caller is authenticated, so reading a request body can be deferred
// until then. An error from it is a malformed request.
type ExtSource func() (string, error)

type Options struct {
	DefaultExtension  string
	AllowedExtensions []string
}

// Service is stateless; one instance serves concurrent requests.
type Service struct {
	auth       Authenticator
	signer     storage.Signer
	defaultExt string
	allowed    map[string]struct{}
	newID      func() string
	log        logging.Logger
}

func New(auth Authenticator, signer storage.Signer, opts Options, log logging.Logger) *Service {
	allowed := make(map[string]struct{}, len(opts.AllowedExtensions)+1)
	for _, e := range opts.AllowedExtensions {
		allowed[e] = struct{}{}
	}
	allowed[opts.DefaultExtension] = struct{}{}

	return &Service{
		auth:       auth,
		signer:     signer,
		defaultExt: opts.DefaultExtension,
		allowed:    allowed,
		newID:      func() string { return uuid.New().String() },
		log:        log.With("module", "issuer"),
	}
}

// Issue mints one upload credential for the caller identified by
// authorization. An empty extension selects the default one.
//
// Errors: common.ErrorUnauthorized when there is no principal (neither ext
// nor the signer is called), common.ErrorValidation for a malformed request
// or a disallowed extension, and *CredentialBackendError when the backend
// refuses to sign.
func (s *Service) Issue(ctx context.Context, authorization string, extOf ExtSource) (*models.UploadCredential, error) {
	principal, err := s.auth.Principal(ctx, authorization)
	if err != nil || principal == nil {
		if err != nil && !errors.Is(err, common.ErrorUnauthorized) {
			s.log.Error(ctx, "authentication failed", "error", err)
		}
		return nil, common.ErrorUnauthorized
	}

	ext := ""
	if extOf != nil {
		if ext, err = extOf(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
	}
	ext, err = s.resolveExt(ext)
	if err != nil {
		return nil, err
	}

	path := DestinationPath(principal.ID, s.newID(), ext)

	signed, err := s.signer.CreateSignedUploadURL(ctx, path)
	if err != nil {
		s.log.Warn(ctx, "storage backend refused to sign", "path", path, "error", err)
		return nil, &CredentialBackendError{Err: err}
	}

	s.log.Info(ctx, "upload credential issued", "user_id", principal.ID, "path", path, "expires_at", signed.ExpiresAt)

	return &models.UploadCredential{
		UploadURL: signed.URL,
		Path:      path,
		Token:     signed.Token,
	}, nil
}

func (s *Service) resolveExt(ext string) (string, error) {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		return s.defaultExt, nil
	}
	if _, ok := s.allowed[ext]; !ok {
		return "", fmt.Errorf("%w: extension %q is not allowed", common.ErrorValidation, ext)
	}
	return ext, nil
}

// DestinationPath builds uploads/{principalID}/{id}.{ext}.
func DestinationPath(principalID, id, ext string) string {
	return fmt.Sprintf("uploads/%s/%s.%s", principalID, id, ext)
}
