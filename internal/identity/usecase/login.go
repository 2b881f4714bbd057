package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken string
	User        UserSummary
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = normalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if isNotFound(err) {
		slog.WarnContext(ctx, "login attempt for unavailable user", "email", in.Email)
		return nil, goerror.NewBusiness("Invalid credentials", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.password.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "login attempt with wrong password", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid credentials", goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(jwt.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role.Ensure()),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccessToken: token, User: toSummary(user)}, nil
}
