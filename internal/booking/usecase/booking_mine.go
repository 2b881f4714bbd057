package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

// BookingMine returns the caller's bookings, newest first.
func (s *Usecase) BookingMine(ctx context.Context) ([]Booking, error) {
	ctx, span := s.startSpan(ctx, "BookingMine")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, actMine)
	if err != nil {
		return nil, err
	}

	items, err := s.repoDB.ListBookingsByUser(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list bookings by user", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return lo.Map(items, func(b entity.Booking, _ int) Booking { return toBooking(b) }), nil
}
