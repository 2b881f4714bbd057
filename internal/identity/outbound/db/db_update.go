package db

import (
	"context"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

func (s *DB) UpdateUserProfile(ctx context.Context, id int64, change entity.ProfileChange) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfile")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE users
		SET full_name = $2, email = $3, phone = $4,
			password = COALESCE(NULLIF($5, ''), password),
			updated_at = NOW()
		WHERE id = $1`,
		id, change.FullName, change.Email, change.Phone, change.PasswordHash,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}

func (s *DB) UpdateUserProfileImage(ctx context.Context, id int64, url string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfileImage")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE users SET profile_image = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}

func (s *DB) SaveResetState(ctx context.Context, userID int64, state entity.ResetState) (err error) {
	ctx, span := s.startSpan(ctx, "SaveResetState")
	defer func() { s.endSpan(span, err) }()

	rec := state.Record()
	tag, err := s.conn.Exec(ctx, `
		UPDATE users
		SET otp_hash = $2, otp_expires_at = $3, otp_verified = $4,
			otp_attempts = $5, otp_last_sent_at = $6, updated_at = NOW()
		WHERE id = $1`,
		userID, rec.OTPHash, utc(rec.OTPExpiresAt), rec.OTPVerified, rec.OTPAttempts, utc(rec.OTPLastSentAt),
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}

// CommitPassword swaps the password and clears the reset columns in one
// statement.
func (s *DB) CommitPassword(ctx context.Context, userID int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "CommitPassword")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE users
		SET password = $2, otp_hash = '', otp_expires_at = NULL, otp_verified = FALSE,
			otp_attempts = 0, otp_last_sent_at = NULL, updated_at = NOW()
		WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
	}
	return err
}
