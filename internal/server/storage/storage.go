// Package storage mints signed single-object PUT URLs on the configured
// object store and builds the public URL of an uploaded object.
package storage

import (
	"context"
	"strings"
	"time"
)

// SignedUpload is a pre-signed PUT for exactly one object key.
type SignedUpload struct {
	URL       string
	Path      string
	Token     string
	ExpiresAt time.Time
}

// Signer is implemented by every storage backend.
type Signer interface {
	// CreateSignedUploadURL returns a URL that accepts one PUT to path until
	// it expires. Errors carry the backend's own message.
	CreateSignedUploadURL(ctx context.Context, path string) (*SignedUpload, error)
	// PublicURL is where the object at path can be read once uploaded.
	PublicURL(path string) string
}

func joinPublicURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
