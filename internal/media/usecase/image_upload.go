package usecase

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/storage"
)

type ImageUploadInput struct {
	ContentType string
	Data        []byte
}

type ImageUploadOutput struct {
	URL         string
	Key         string
	ContentType string
	Size        int64
}

// ImageMaxBytes is the upload limit for images.
func (s *Usecase) ImageMaxBytes() int64 {
	if n := s.cfg.GetInt64("modules.media.image_max_bytes"); n > 0 {
		return n
	}
	return defaultImageMaxBytes
}

func (s *Usecase) ImageUpload(ctx context.Context, in ImageUploadInput) (*ImageUploadOutput, error) {
	ctx, span := s.startSpan(ctx, "ImageUpload")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, actUpload)
	if err != nil {
		return nil, err
	}

	subject := strconv.FormatInt(clm.UserID, 10)
	res, err := s.limiter.Allow(ctx, "media_upload", subject, s.rule)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check upload rate limit", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !res.Allowed {
		slog.WarnContext(ctx, "upload rate limited", "user_id", clm.UserID, "count", res.Count)
		return nil, goerror.NewBusiness("Too many uploads, please try again later", goerror.CodeTooManyRequest).
			WithField("retry_after_seconds", strconv.Itoa(res.RetryAfterSeconds()))
	}

	ext, ok := storage.ImageExtension(in.ContentType)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "image", "image must be jpeg, png or webp")
	}
	if len(in.Data) == 0 {
		return nil, goerror.NewInvalidInput(nil, "image", "image is required")
	}
	if int64(len(in.Data)) > s.ImageMaxBytes() {
		return nil, goerror.NewInvalidInput(nil, "image", "image exceeds "+strconv.FormatInt(s.ImageMaxBytes(), 10)+" bytes")
	}

	now := s.clock.Now().UTC()
	key := fmt.Sprintf("uploads/%04d/%02d/%s%s", now.Year(), int(now.Month()), s.uuid.Generate(), ext)

	obj, err := s.storage.Put(ctx, key, bytes.NewReader(in.Data), storage.PutOptions{
		Size:        int64(len(in.Data)),
		ContentType: in.ContentType,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to store image", "user_id", clm.UserID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ImageUploadOutput{
		URL:         storage.PublicURL(s.cfg.GetString("storage.public_base_url"), obj.Key),
		Key:         obj.Key,
		ContentType: in.ContentType,
		Size:        int64(len(in.Data)),
	}, nil
}
