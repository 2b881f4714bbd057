package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

// ProfileUpdateInput changes only the non-nil fields.
type ProfileUpdateInput struct {
	FullName *string `validate:"omitnil,min=2,max=100"`
	Email    *string `validate:"omitnil,email,max=254"`
	Phone    *string `validate:"omitnil,nepalphone"`
	Password *string `validate:"omitnil,password"`
}

func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) (*UserSummary, error) {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	if in.FullName == nil && in.Email == nil && in.Phone == nil && in.Password == nil {
		return nil, goerror.NewBusiness("No valid fields to update", goerror.CodeInvalidInput)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if in.Phone != nil {
		phone := normalizePhone(*in.Phone)
		in.Phone = &phone
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	change := entity.ProfileChange{FullName: user.FullName, Email: user.Email, Phone: user.Phone}
	if in.FullName != nil {
		change.FullName = *in.FullName
	}
	if in.Phone != nil {
		change.Phone = *in.Phone
	}
	if in.Email != nil && *in.Email != user.Email {
		other, err := s.repoDB.GetUserByEmail(ctx, *in.Email)
		if err == nil && other.ID != user.ID {
			return nil, goerror.NewBusiness("Email already in use", goerror.CodeConflict)
		}
		if err != nil && !isNotFound(err) {
			slog.ErrorContext(ctx, "failed to repo get user by email", "email", *in.Email, "error", err)
			return nil, goerror.NewServer(err)
		}
		change.Email = *in.Email
	}
	if in.Password != nil {
		passHash, err := s.password.Hash(*in.Password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash password", "error", err)
			return nil, goerror.NewServer(err)
		}
		change.PasswordHash = string(passHash)
	}

	if err := s.repoDB.UpdateUserProfile(ctx, user.ID, change); err != nil {
		if isConflict(err) {
			return nil, goerror.NewBusiness("Email already in use", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo update user profile", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	user.FullName, user.Email, user.Phone = change.FullName, change.Email, change.Phone
	out := toSummary(user)
	return &out, nil
}
