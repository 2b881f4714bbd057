package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72
)

type PasswordResetInput struct {
	Email           string `validate:"required,email"`
	NewPassword     string
	ConfirmPassword string
}

// PasswordReset commits a new password for a verified, unexpired cycle and
// returns the user to Idle.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if in.NewPassword != in.ConfirmPassword {
		return goerror.NewInvalidInput(nil, "confirm_password", "Passwords do not match")
	}
	if n := len(in.NewPassword); n < minPasswordLength || n > maxPasswordLength {
		return goerror.NewInvalidInput(nil, "new_password", "Password must be 6-72 characters")
	}
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	release, err := s.lockReset(ctx, in.Email)
	if err != nil {
		return err
	}
	defer release()

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if isNotFound(err) {
		slog.WarnContext(ctx, "password reset commit for unavailable user", "email", in.Email)
		return goerror.NewBusiness("Invalid email", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if !user.Reset.Verified() {
		return goerror.NewBusiness("OTP not verified", goerror.CodeForbidden)
	}
	if user.Reset.Expired(s.clock.Now()) {
		return goerror.NewBusiness("OTP has expired", goerror.CodeExpired)
	}

	passHash, err := s.password.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.CommitPassword(ctx, user.ID, string(passHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo commit password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
