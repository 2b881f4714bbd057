package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/idempotency"
)

// BookingCreateInput leaves enum fields optional; empty values take the
// booking defaults.
type BookingCreateInput struct {
	IdempotencyKey string `validate:"omitempty,max=128"`

	FullName      string  `validate:"required,min=2,max=100"`
	Email         string  `validate:"omitempty,email,max=254"`
	Phone         string  `validate:"required,nepalphone"`
	Address       string  `validate:"required,max=255"`
	AreaSize      float64 `validate:"gt=0"`
	ServiceType   string  `validate:"omitempty,oneof=Installation Repair Polish Inspection"`
	FlooringType  string  `validate:"omitempty,oneof=Homogeneous Heterogeneous SPC Vinyl Carpet Wooden"`
	PreferredDate string  `validate:"required,datetime=2006-01-02"`
	PreferredTime string  `validate:"omitempty,oneof='Morning 8-12' 'Afternoon 12-4' 'Evening 4-8'"`
	Notes         string  `validate:"max=1000"`
}

func (s *Usecase) BookingCreate(ctx context.Context, in BookingCreateInput) (*Booking, error) {
	ctx, span := s.startSpan(ctx, "BookingCreate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, actCreate)
	if err != nil {
		return nil, err
	}

	in.IdempotencyKey = strings.TrimSpace(in.IdempotencyKey)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = normalizePhone(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	b := entity.Booking{
		ID:            s.uid.Generate(),
		UserID:        clm.UserID,
		FullName:      in.FullName,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		AreaSize:      in.AreaSize,
		ServiceType:   entity.ServiceType(in.ServiceType),
		FlooringType:  entity.FlooringType(in.FlooringType),
		PreferredDate: in.PreferredDate,
		PreferredTime: entity.PreferredTime(in.PreferredTime),
		Notes:         in.Notes,
		Status:        entity.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if b.Email == "" {
		b.Email = strings.ToLower(clm.UserEmail)
	}
	if b.ServiceType == "" {
		b.ServiceType = entity.ServiceInstallation
	}
	if b.FlooringType == "" {
		b.FlooringType = entity.FlooringHomogeneous
	}
	if b.PreferredTime == "" {
		b.PreferredTime = entity.TimeMorning
	}

	create := func(ctx context.Context) error {
		return s.repoDB.CreateBooking(ctx, b)
	}

	if in.IdempotencyKey == "" {
		err = create(ctx)
	} else {
		// Keys are scoped per user.
		key := "booking:create:" + strconv.FormatInt(clm.UserID, 10) + ":" + in.IdempotencyKey
		err = s.idempotency.Exec(ctx, key, create)
	}

	switch {
	case errors.Is(err, idempotency.ErrInProgress):
		return nil, goerror.NewBusiness("Booking request is already being processed", goerror.CodeConflict)
	case errors.Is(err, idempotency.ErrCompleted):
		return nil, goerror.NewBusiness("Booking request was already processed", goerror.CodeConflict)
	case err != nil:
		slog.ErrorContext(ctx, "failed to repo create booking", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.publisher.PublishBookingCreated(ctx, b); err != nil {
		slog.WarnContext(ctx, "failed to publish booking created", "booking_id", b.ID, "error", err)
	}

	out := toBooking(b)
	return &out, nil
}
