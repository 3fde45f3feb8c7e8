package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/photodrop/internal/server/config"
)

// New builds the Signer selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config) (Signer, error) {
	switch cfg.StorageBackend {
	case config.BackendS3:
		return NewS3Signer(ctx, S3Options{
			Region:        cfg.StorageRegion,
			AccessKey:     cfg.StorageAccessKey,
			SecretKey:     cfg.StorageSecretKey,
			Endpoint:      cfg.StorageEndpoint,
			Bucket:        cfg.StorageBucket,
			TTL:           cfg.PresignTTL,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	case config.BackendMinio:
		return NewMinioSigner(MinioOptions{
			Endpoint:      cfg.StorageEndpoint,
			AccessKey:     cfg.StorageAccessKey,
			SecretKey:     cfg.StorageSecretKey,
			Region:        cfg.StorageRegion,
			Bucket:        cfg.StorageBucket,
			TTL:           cfg.PresignTTL,
			PublicBaseURL: cfg.PublicBaseURL,
		})
	case config.BackendGCS:
		return NewGCSSigner(ctx, GCSOptions{
			Bucket:          cfg.StorageBucket,
			TTL:             cfg.PresignTTL,
			GoogleAccessID:  cfg.GCSServiceAccount,
			CredentialsFile: cfg.GCSCredentialsFile,
			PublicBaseURL:   cfg.PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
