package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/floorease/internal/shared/emailtmpl"
)

type ConsumeBookingCreatedInput struct {
	BookingID     int64   `validate:"required,gt=0"`
	FullName      string  `validate:"required"`
	Email         string  `validate:"omitempty,email"`
	Address       string  `validate:"required"`
	ServiceType   string  `validate:"required"`
	FlooringType  string  `validate:"required"`
	AreaSize      float64 `validate:"gt=0"`
	PreferredDate string  `validate:"required"`
	PreferredTime string  `validate:"required"`
}

// ConsumeBookingCreated mails the booking confirmation. Bookings without a
// contact email are skipped.
func (s *Usecase) ConsumeBookingCreated(ctx context.Context, in ConsumeBookingCreatedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeBookingCreated")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid booking created payload dropped", "booking_id", in.BookingID, "error", err)
		return nil
	}

	if in.Email == "" {
		slog.InfoContext(ctx, "booking has no contact email, confirmation skipped", "booking_id", in.BookingID)
		return nil
	}

	msg, err := emailtmpl.BookingCreated(emailtmpl.BookingCreatedData{
		BookingID:     in.BookingID,
		FullName:      in.FullName,
		ServiceType:   in.ServiceType,
		FlooringType:  in.FlooringType,
		AreaSize:      in.AreaSize,
		Address:       in.Address,
		PreferredDate: in.PreferredDate,
		PreferredTime: in.PreferredTime,
		Year:          s.clock.Now().Year(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render booking created email", "booking_id", in.BookingID, "error", err)
		return nil
	}

	msg.From = s.sender()
	msg.To = []string{in.Email}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send booking created email", "booking_id", in.BookingID, "error", err)
		return err
	}

	return nil
}
