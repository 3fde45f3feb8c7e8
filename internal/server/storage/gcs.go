package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/dmitrijs2005/photodrop/internal/netx"
	"google.golang.org/api/option"
)

const gcsPublicHost = "https://storage.googleapis.com"

var newGCSClient = gcs.NewClient

type GCSOptions struct {
	Bucket          string
	TTL             time.Duration
	// GoogleAccessID is the service account email that signs URLs. Empty means
	// detect it from the client credentials.
	GoogleAccessID  string
	CredentialsFile string
	PublicBaseURL   string
}

// GCSSigner issues V4 signed PUT URLs for a Cloud Storage bucket.
type GCSSigner struct {
	opts    GCSOptions
	signURL func(object string, opts *gcs.SignedURLOptions) (string, error)
	close   func() error
}

func NewGCSSigner(ctx context.Context, opts GCSOptions) (*GCSSigner, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	client, err := newGCSClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create GCS client: %w", err)
	}

	bucket := client.Bucket(opts.Bucket)
	return &GCSSigner{opts: opts, signURL: bucket.SignedURL, close: client.Close}, nil
}

func (s *GCSSigner) CreateSignedUploadURL(ctx context.Context, path string) (*SignedUpload, error) {
	expiresAt := time.Now().Add(s.opts.TTL)
	signed, err := s.signURL(path, &gcs.SignedURLOptions{
		Scheme:         gcs.SigningSchemeV4,
		Method:         http.MethodPut,
		Expires:        expiresAt,
		GoogleAccessID: s.opts.GoogleAccessID,
	})
	if err != nil {
		return nil, err
	}
	return &SignedUpload{
		URL:       signed,
		Path:      path,
		Token:     netx.SignatureOf(signed),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *GCSSigner) PublicURL(path string) string {
	if s.opts.PublicBaseURL != "" {
		return joinPublicURL(s.opts.PublicBaseURL, path)
	}
	return joinPublicURL(joinPublicURL(gcsPublicHost, s.opts.Bucket), path)
}

func (s *GCSSigner) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
