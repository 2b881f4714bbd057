// Package storage stores uploaded objects in a single bucket on S3, MinIO,
// Google Cloud Storage or in memory.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

var ErrObjectNotFound = errors.New("storage: object not found")

type Storage interface {
	io.Closer

	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Stat(ctx context.Context, key string) (Object, error)
}

type PutOptions struct {
	Size        int64
	ContentType string
	// CacheControl defaults to a long lived public cache.
	CacheControl string
}

func (o PutOptions) cacheControl() string {
	if o.CacheControl == "" {
		return "public, max-age=31536000, immutable"
	}
	return o.CacheControl
}

type Object struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
}

// PublicURL joins the public base URL of the bucket with key.
func PublicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL returns the key of an object URL built by PublicURL, or "" when
// url does not belong to base.
func KeyFromURL(base, url string) string {
	prefix := strings.TrimRight(base, "/") + "/"
	if base == "" || !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageExtension returns the file extension for an accepted image content
// type.
func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[contentType]
	return ext, ok
}
