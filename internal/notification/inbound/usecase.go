package inbound

import (
	"context"

	"github.com/shandysiswandi/floorease/internal/notification/usecase"
)

type uc interface {
	ConsumePasswordResetOtp(ctx context.Context, in usecase.ConsumePasswordResetOtpInput) error
	ConsumeBookingCreated(ctx context.Context, in usecase.ConsumeBookingCreatedInput) error
}
