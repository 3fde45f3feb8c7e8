package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/photodrop/internal/netx"
	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"
)

var presignMinioPut = func(c *minio.Client, ctx context.Context, bucket, object string, expiry time.Duration) (*url.URL, error) {
	return c.PresignedPutObject(ctx, bucket, object, expiry)
}

type MinioOptions struct {
	// Endpoint is a full URL; its scheme decides whether TLS is used.
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Region        string
	Bucket        string
	TTL           time.Duration
	PublicBaseURL string
}

// MinioSigner presigns PUTs with minio-go. With Region set, presigning is
// purely local and never calls the server.
type MinioSigner struct {
	client *minio.Client
	opts   MinioOptions
	base   string
}

func NewMinioSigner(opts MinioOptions) (*MinioSigner, error) {
	u, err := url.Parse(opts.Endpoint)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid minio endpoint %q", opts.Endpoint)
	}

	client, err := minio.New(u.Host, &minio.Options{
		Creds:  miniocreds.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: u.Scheme == "https",
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	base := opts.PublicBaseURL
	if base == "" {
		base = joinPublicURL(u.Scheme+"://"+u.Host, opts.Bucket)
	}

	return &MinioSigner{client: client, opts: opts, base: base}, nil
}

func (s *MinioSigner) CreateSignedUploadURL(ctx context.Context, path string) (*SignedUpload, error) {
	u, err := presignMinioPut(s.client, ctx, s.opts.Bucket, path, s.opts.TTL)
	if err != nil {
		return nil, err
	}
	signed := u.String()
	return &SignedUpload{
		URL:       signed,
		Path:      path,
		Token:     netx.SignatureOf(signed),
		ExpiresAt: time.Now().Add(s.opts.TTL),
	}, nil
}

func (s *MinioSigner) PublicURL(path string) string {
	return joinPublicURL(s.base, path)
}
