package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	DriverS3     = "s3"
	DriverMinIO  = "minio"
	DriverGCS    = "gcs"
	DriverMemory = "memory"
)

var ErrUnknownDriver = errors.New("storage: unknown driver")

type FactoryOptions struct {
	S3    S3Options
	MinIO MinIOOptions
	GCS   GCSOptions
}

func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverMinIO:
		return NewMinIO(ctx, opts.MinIO)
	case DriverGCS:
		return NewGCS(ctx, opts.GCS)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
