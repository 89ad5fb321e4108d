// Package storage issues scoped, time-limited upload credentials for direct
// client-side image uploads. The API never proxies image bytes; clients PUT
// straight to object storage with the signed URL and persist the unsigned one.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aalokdeep/workbench-api/internal/config"
)

// ErrNotConfigured indicates the storage endpoint is absent from configuration.
var ErrNotConfigured = errors.New("MINIO_ENDPOINT environment variable not set")

// UploadCredential is the ephemeral result of a signing request. SASURL is
// the time-boxed write grant for exactly one object key; BlobURL is the same
// key without the signature, suitable for storing as a durable heroImage.url.
type UploadCredential struct {
	SASURL  string `json:"sasUrl"`
	BlobURL string `json:"blobUrl"`
}

// CredentialIssuer mints a write credential for a single object key.
type CredentialIssuer interface {
	Issue(ctx context.Context, objectKey string, expiry time.Duration) (*UploadCredential, error)
}

// MinIOIssuer signs presigned PUT URLs against a MinIO/S3 bucket.
type MinIOIssuer struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIOIssuer creates the storage client. It performs no network I/O;
// call EnsureBucket once at startup when the bucket may not exist yet.
func NewMinIOIssuer(cfg config.StorageConfig) (*MinIOIssuer, error) {
	if cfg.Endpoint == "" {
		return nil, ErrNotConfigured
	}
	// pinning the region skips minio-go's per-process bucket location
	// lookup, so presigning never touches the network
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	publicBase := strings.TrimRight(cfg.PublicURL, "/")
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return &MinIOIssuer{client: mc, bucket: cfg.Bucket, publicBase: publicBase}, nil
}

// EnsureBucket creates the bucket if it does not exist (idempotent).
func (s *MinIOIssuer) EnsureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exists, xerr := s.client.BucketExists(ctx, s.bucket)
		if xerr != nil || !exists {
			return fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return nil
}

// Issue signs a write grant for objectKey valid for the given expiry. The
// grant is scoped to that one key, not the bucket.
func (s *MinIOIssuer) Issue(ctx context.Context, objectKey string, expiry time.Duration) (*UploadCredential, error) {
	signed, err := s.client.PresignedPutObject(ctx, s.bucket, objectKey, expiry)
	if err != nil {
		return nil, fmt.Errorf("presign put %s: %w", objectKey, err)
	}
	return &UploadCredential{
		SASURL:  signed.String(),
		BlobURL: fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, objectKey),
	}, nil
}
