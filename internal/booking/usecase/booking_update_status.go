package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

type BookingUpdateStatusInput struct {
	ID     int64  `validate:"required,gt=0"`
	Status string `validate:"required,oneof=pending completed"`
}

func (s *Usecase) BookingUpdateStatus(ctx context.Context, in BookingUpdateStatusInput) (*Booking, error) {
	ctx, span := s.startSpan(ctx, "BookingUpdateStatus")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, actUpdate); err != nil {
		return nil, err
	}

	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	err := s.repoDB.UpdateBookingStatus(ctx, in.ID, entity.Status(in.Status))
	if isNotFound(err) {
		return nil, notFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update booking status", "booking_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	b, err := s.repoDB.GetBookingByID(ctx, in.ID)
	if isNotFound(err) {
		return nil, notFound()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get booking by id", "booking_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := toBooking(*b)
	return &out, nil
}
