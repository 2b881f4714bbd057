package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

type RegisterInput struct {
	FullName string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email,max=254"`
	Phone    string `validate:"required,nepalphone"`
	Password string `validate:"required,password"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*UserSummary, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = normalizeEmail(in.Email)
	in.Phone = normalizePhone(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, goerror.NewBusiness("User already exists", goerror.CodeConflict)
	}
	if !isNotFound(err) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	passHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	user := entity.User{
		ID:        s.uid.Generate(),
		FullName:  in.FullName,
		Email:     in.Email,
		Phone:     in.Phone,
		Password:  string(passHash),
		Role:      entity.RoleUser,
		Reset:     entity.IdleReset(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if isConflict(err) {
			return nil, goerror.NewBusiness("User already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := toSummary(&user)
	return &out, nil
}
