package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

type BookingDeleteInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) BookingDelete(ctx context.Context, in BookingDeleteInput) error {
	ctx, span := s.startSpan(ctx, "BookingDelete")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, actDelete); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteBooking(ctx, in.ID)
	if isNotFound(err) {
		return notFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete booking", "booking_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
