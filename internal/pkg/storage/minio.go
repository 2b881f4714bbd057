package storage

import (
	"context"
	"errors"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOOptions struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// CreateBucket makes the bucket on startup when it does not exist.
	CreateBucket bool
}

type MinIO struct {
	client *minio.Client
	bucket string
}

func NewMinIO(ctx context.Context, opts MinIOOptions) (*MinIO, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage: minio bucket is required")
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, err
	}

	if opts.CreateBucket {
		exists, err := client.BucketExists(ctx, opts.Bucket)
		if err != nil {
			return nil, err
		}
		if !exists {
			if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region}); err != nil {
				return nil, err
			}
		}
	}

	return &MinIO{client: client, bucket: opts.Bucket}, nil
}

func (m *MinIO) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error) {
	size := opts.Size
	if size <= 0 {
		size = -1
	}

	info, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  opts.ContentType,
		CacheControl: opts.cacheControl(),
	})
	if err != nil {
		return Object{}, err
	}

	return Object{Key: key, Size: info.Size, ContentType: opts.ContentType, ETag: info.ETag}, nil
}

func (m *MinIO) Delete(ctx context.Context, key string) error {
	return m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

func (m *MinIO) Stat(ctx context.Context, key string) (Object, error) {
	info, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return Object{}, ErrObjectNotFound
	}
	if err != nil {
		return Object{}, err
	}

	return Object{Key: key, Size: info.Size, ContentType: info.ContentType, ETag: info.ETag}, nil
}

func (m *MinIO) Close() error { return nil }
