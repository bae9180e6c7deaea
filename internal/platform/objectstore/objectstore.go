// Package objectstore wraps the S3-compatible bucket that holds uploaded and
// generated brand assets.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"brandkit-server-go/internal/platform/config"
	"brandkit-server-go/internal/platform/errors"
	"brandkit-server-go/internal/platform/logging"
)

const defaultContentType = "application/octet-stream"

// publicObjectPrefix is the path under which the store exposes public objects.
const publicObjectPrefix = "/storage/v1/object/public/"

// ClientAPI is the slice of the minio client the store depends on.
type ClientAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
}

// Store is an asset bucket backed by any S3-compatible endpoint.
type Store struct {
	client        ClientAPI
	bucket        string
	publicBaseURL string
	logger        *logging.Logger
}

// New dials the configured endpoint and returns a ready Store.
func New(cfg config.ObjectStoreConfig, logger *logging.Logger) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New(errors.KindStorage, "objectstore.init", "endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New(errors.KindStorage, "objectstore.init", "bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(errors.KindStorage, "objectstore.init", "failed to create client", err)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	return &Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
		logger:        logger,
	}, nil
}

// NewWithClient injects a pre-built client, used by tests.
func NewWithClient(client ClientAPI, bucket, publicBaseURL string, logger *logging.Logger) *Store {
	return &Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// PublicURL maps a bare object filename to its public fetch URL. It satisfies
// the storage lookup used by the image resolver.
func (s *Store) PublicURL(_ context.Context, filename string) (string, error) {
	if filename == "" {
		return "", errors.New(errors.KindStorage, "objectstore.url", "filename is required")
	}
	return s.publicBaseURL + publicObjectPrefix + s.bucket + "/" + filename, nil
}

// Upload streams an object into the bucket and returns its public URL.
func (s *Store) Upload(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	if filename == "" {
		return "", errors.New(errors.KindStorage, "objectstore.upload", "filename is required")
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	_, err := s.client.PutObject(ctx, s.bucket, filename, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(errors.KindStorage, "objectstore.upload", "failed to store object", err)
	}
	if s.logger != nil {
		s.logger.DebugTag("STORE", "uploaded %s (%d bytes)", filename, size)
	}
	return s.PublicURL(ctx, filename)
}

// Remove deletes an object; removing a missing object is not an error.
func (s *Store) Remove(ctx context.Context, filename string) error {
	err := s.client.RemoveObject(ctx, s.bucket, filename, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(errors.KindStorage, "objectstore.remove", "failed to remove object", err)
	}
	return nil
}

// Exists reports whether an object is present in the bucket.
func (s *Store) Exists(ctx context.Context, filename string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, filename, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrap(errors.KindStorage, "objectstore.stat", "failed to stat object", err)
	}
	return true, nil
}

// List returns the object names under a prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	names := make([]string, 0)
	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return names, errors.Wrap(errors.KindStorage, "objectstore.list", "listing failed", object.Err)
		}
		names = append(names, object.Key)
	}
	return names, nil
}
