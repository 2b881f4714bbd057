package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/storage"
)

const defaultProfileImageMaxBytes = 2 << 20

type ProfileImageUpdateInput struct {
	ContentType string
	Data        []byte
}

// ProfileImageMaxBytes is the upload limit for profile images.
func (s *Usecase) ProfileImageMaxBytes() int64 {
	if n := s.cfg.GetInt64("modules.identity.profile_image_max_bytes"); n > 0 {
		return n
	}
	return defaultProfileImageMaxBytes
}

func (s *Usecase) ProfileImageUpdate(ctx context.Context, in ProfileImageUpdateInput) (*UserSummary, error) {
	ctx, span := s.startSpan(ctx, "ProfileImageUpdate")
	defer span.End()

	ext, ok := storage.ImageExtension(in.ContentType)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "image", "image must be jpeg, png or webp")
	}
	if len(in.Data) == 0 {
		return nil, goerror.NewInvalidInput(nil, "image", "image is required")
	}
	if int64(len(in.Data)) > s.ProfileImageMaxBytes() {
		return nil, goerror.NewInvalidInput(nil, "image", "image exceeds "+strconv.FormatInt(s.ProfileImageMaxBytes(), 10)+" bytes")
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	key := "profile/" + strconv.FormatInt(user.ID, 10) + "/" + s.uuid.Generate() + ext
	if _, err := s.storage.Put(ctx, key, bytes.NewReader(in.Data), storage.PutOptions{
		Size:        int64(len(in.Data)),
		ContentType: in.ContentType,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store profile image", "user_id", user.ID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	base := s.cfg.GetString("storage.public_base_url")
	url := storage.PublicURL(base, key)
	if err := s.repoDB.UpdateUserProfileImage(ctx, user.ID, url); err != nil {
		slog.ErrorContext(ctx, "failed to repo update profile image", "user_id", user.ID, "error", err)
		s.deleteObject(ctx, key)
		return nil, goerror.NewServer(err)
	}

	if old := storage.KeyFromURL(base, user.ProfileImage); old != "" {
		s.deleteObject(ctx, old)
	}

	user.ProfileImage = url
	out := toSummary(user)
	return &out, nil
}

func (s *Usecase) ProfileImageDelete(ctx context.Context) (*UserSummary, error) {
	ctx, span := s.startSpan(ctx, "ProfileImageDelete")
	defer span.End()

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if user.ProfileImage == "" {
		out := toSummary(user)
		return &out, nil
	}

	if err := s.repoDB.UpdateUserProfileImage(ctx, user.ID, ""); err != nil {
		slog.ErrorContext(ctx, "failed to repo clear profile image", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if old := storage.KeyFromURL(s.cfg.GetString("storage.public_base_url"), user.ProfileImage); old != "" {
		s.deleteObject(ctx, old)
	}

	user.ProfileImage = ""
	out := toSummary(user)
	return &out, nil
}

// deleteObject is best effort.
func (s *Usecase) deleteObject(ctx context.Context, key string) {
	if err := s.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		slog.WarnContext(ctx, "failed to delete stored object", "key", key, "error", err)
	}
}
