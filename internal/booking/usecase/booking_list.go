package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

// BookingListInput pages from 1; a zero Page or Limit takes the default and
// Limit is capped at maxLimit. Page is bounded so the offset cannot overflow.
type BookingListInput struct {
	Status string `validate:"omitempty,oneof=pending completed"`
	Search string `validate:"max=100"`
	Page   int    `validate:"gte=0,lte=1000000"`
	Limit  int    `validate:"gte=0"`
}

type BookingListOutput struct {
	Items []Booking
	Page  int
	Limit int
	Total int64
}

func (s *Usecase) BookingList(ctx context.Context, in BookingListInput) (*BookingListOutput, error) {
	ctx, span := s.startSpan(ctx, "BookingList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, actList); err != nil {
		return nil, err
	}

	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.Search = strings.TrimSpace(in.Search)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	page := lo.Ternary(in.Page > 0, in.Page, defaultPage)
	limit := min(lo.Ternary(in.Limit > 0, in.Limit, defaultLimit), maxLimit)

	items, total, err := s.repoDB.ListBookings(ctx, entity.ListFilter{
		Status: entity.Status(in.Status),
		Search: in.Search,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list bookings", "status", in.Status, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &BookingListOutput{
		Items: lo.Map(items, func(b entity.Booking, _ int) Booking { return toBooking(b) }),
		Page:  page,
		Limit: limit,
		Total: total,
	}, nil
}
