package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

type PasswordVerifyOTPInput struct {
	Email string `validate:"required,email"`
	OTP   string `validate:"required,len=6,numeric"`
}

type PasswordVerifyOTPOutput struct {
	Verified bool
}

func (s *Usecase) PasswordVerifyOTP(ctx context.Context, in PasswordVerifyOTPInput) (*PasswordVerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordVerifyOTP")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	release, err := s.lockReset(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	defer release()

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if isNotFound(err) {
		slog.WarnContext(ctx, "otp verification for unavailable user", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid email or OTP", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	state := user.Reset
	if state.Expired(s.clock.Now()) {
		return nil, goerror.NewBusiness("OTP has expired or was not requested", goerror.CodeExpired)
	}

	if state.AttemptsExhausted() {
		slog.WarnContext(ctx, "otp attempts exhausted", "user_id", user.ID)
		return nil, goerror.NewBusiness("Too many invalid attempts, please request a new OTP", goerror.CodeTooManyRequest)
	}

	if !s.otpHash.Verify(state.OTPHash(), in.OTP) {
		state = state.FailAttempt()
		if err := s.repoDB.SaveResetState(ctx, user.ID, state); err != nil {
			slog.ErrorContext(ctx, "failed to repo save reset state", "user_id", user.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		return nil, goerror.NewBusiness("Invalid email or OTP", goerror.CodeUnauthorized).
			WithField("attempts_remaining", strconv.Itoa(state.AttemptsRemaining()))
	}

	if err := s.repoDB.SaveResetState(ctx, user.ID, state.Verify()); err != nil {
		slog.ErrorContext(ctx, "failed to repo save reset state", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PasswordVerifyOTPOutput{Verified: true}, nil
}
