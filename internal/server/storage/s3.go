package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/photodrop/internal/netx"
)

// Seams for tests.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

type S3Options struct {
	Region        string
	AccessKey     string
	SecretKey     string
	Endpoint      string
	Bucket        string
	TTL           time.Duration
	PublicBaseURL string
}

// S3Signer presigns PutObject requests with the AWS SDK. It also works with
// any S3-compatible endpoint, using path-style addressing when Endpoint is set.
type S3Signer struct {
	opts    S3Options
	presign *s3.PresignClient
}

func NewS3Signer(ctx context.Context, opts S3Options) (*S3Signer, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Signer{opts: opts, presign: newS3PresignClient(client)}, nil
}

func (s *S3Signer) CreateSignedUploadURL(ctx context.Context, path string) (*SignedUpload, error) {
	bucket := s.opts.Bucket
	key := path

	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.opts.TTL))
	if err != nil {
		return nil, err
	}

	return &SignedUpload{
		URL:       req.URL,
		Path:      path,
		Token:     netx.SignatureOf(req.URL),
		ExpiresAt: time.Now().Add(s.opts.TTL),
	}, nil
}

func (s *S3Signer) PublicURL(path string) string {
	switch {
	case s.opts.PublicBaseURL != "":
		return joinPublicURL(s.opts.PublicBaseURL, path)
	case s.opts.Endpoint != "":
		return joinPublicURL(joinPublicURL(s.opts.Endpoint, s.opts.Bucket), path)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.opts.Bucket, s.opts.Region, path)
	}
}
