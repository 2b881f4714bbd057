package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/shandysiswandi/floorease/internal/shared/emailtmpl"
)

type ConsumePasswordResetOtpInput struct {
	UserID    int64     `validate:"required,gt=0"`
	Email     string    `validate:"required,email"`
	FullName  string    `validate:"max=100"`
	Code      string    `validate:"required,len=6,numeric"`
	ExpiresAt time.Time `validate:"required"`
}

// ConsumePasswordResetOtp mails a reset code. Invalid or already expired
// payloads are dropped; only mail failures are returned.
func (s *Usecase) ConsumePasswordResetOtp(ctx context.Context, in ConsumePasswordResetOtpInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasswordResetOtp")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid password reset otp payload dropped", "user_id", in.UserID, "error", err)
		return nil
	}

	now := s.clock.Now()
	if !now.Before(in.ExpiresAt) {
		slog.WarnContext(ctx, "expired password reset otp dropped", "user_id", in.UserID, "expires_at", in.ExpiresAt)
		return nil
	}

	msg, err := emailtmpl.ResetOtp(emailtmpl.ResetOtpData{
		FullName:     in.FullName,
		Code:         in.Code,
		ValidMinutes: int(math.Ceil(in.ExpiresAt.Sub(now).Minutes())),
		Year:         now.Year(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render password reset otp email", "user_id", in.UserID, "error", err)
		return nil
	}

	msg.From = s.sender()
	msg.To = []string{in.Email}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send password reset otp email", "user_id", in.UserID, "error", err)
		return err
	}

	return nil
}
