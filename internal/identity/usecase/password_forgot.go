package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

// PasswordForgot issues a new reset code. Unknown emails succeed silently.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

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
		slog.WarnContext(ctx, "password reset requested for unavailable user", "email", in.Email)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	if wait := user.Reset.ResendWait(now); wait > 0 {
		secs := int64((wait + time.Second - 1) / time.Second)
		slog.WarnContext(ctx, "password reset requested too soon", "user_id", user.ID, "retry_after_seconds", secs)
		return goerror.NewBusiness("Please wait before requesting another OTP", goerror.CodeTooManyRequest).
			WithField("retry_after_seconds", strconv.FormatInt(secs, 10))
	}

	code, err := s.otpCode()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.otpHash.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp", "error", err)
		return goerror.NewServer(err)
	}

	state := entity.NewIssuedReset(string(codeHash), now)
	if err := s.repoDB.SaveResetState(ctx, user.ID, state); err != nil {
		slog.ErrorContext(ctx, "failed to repo save reset state", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	// The issued state stays persisted when delivery fails, so the resend
	// window applies to the undelivered code too.
	if err := s.notifier.SendResetOtp(ctx, ResetOtpNotice{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Code:      code,
		ExpiresAt: state.ExpiresAt(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to deliver reset otp", "user_id", user.ID, "error", err)
		return goerror.NewDelivery(err)
	}

	return nil
}
