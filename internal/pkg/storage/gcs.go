package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSOptions struct {
	Bucket        string
	ClientOptions []option.ClientOption
}

type GCS struct {
	client *gcs.Client
	bucket *gcs.BucketHandle
}

func NewGCS(ctx context.Context, opts GCSOptions) (*GCS, error) {
	if opts.Bucket == "" {
		return nil, errors.New("storage: gcs bucket is required")
	}

	client, err := gcs.NewClient(ctx, opts.ClientOptions...)
	if err != nil {
		return nil, err
	}

	return &GCS{client: client, bucket: client.Bucket(opts.Bucket)}, nil
}

func (g *GCS) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error) {
	w := g.bucket.Object(key).NewWriter(ctx)
	w.ContentType = opts.ContentType
	w.CacheControl = opts.cacheControl()

	if _, err := io.Copy(w, r); err != nil {
		return Object{}, errors.Join(err, w.Close())
	}
	if err := w.Close(); err != nil {
		return Object{}, err
	}

	attrs := w.Attrs()
	return Object{Key: key, Size: attrs.Size, ContentType: attrs.ContentType, ETag: attrs.Etag}, nil
}

func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.bucket.Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (g *GCS) Stat(ctx context.Context, key string) (Object, error) {
	attrs, err := g.bucket.Object(key).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return Object{}, ErrObjectNotFound
	}
	if err != nil {
		return Object{}, err
	}

	return Object{Key: key, Size: attrs.Size, ContentType: attrs.ContentType, ETag: attrs.Etag}, nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}
