package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shandysiswandi/floorease/internal/notification/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/shared/event"
)

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cid := msg.Header(event.HeaderCorrelationID); cid != "" {
		return instrument.SetCorrelationID(ctx, cid)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// PasswordResetOtpNotification never logs the body; it carries a live code.
func (h *MQHandler) PasswordResetOtpNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasswordResetOtpNotification")
	defer span.End()

	slog.InfoContext(ctx, "consume: password reset otp notification", "msg_id", msg.ID, "redelivered", msg.Redelivered)

	var payload event.PasswordResetOtpMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of password reset otp notification", "msg_id", msg.ID, "error", err)
		return nil
	}

	var expiresAt time.Time
	if payload.ExpiresAt > 0 {
		expiresAt = time.Unix(payload.ExpiresAt, 0)
	}

	return h.uc.ConsumePasswordResetOtp(ctx, usecase.ConsumePasswordResetOtpInput{
		UserID:    payload.UserID,
		Email:     payload.Email,
		FullName:  payload.FullName,
		Code:      payload.Code,
		ExpiresAt: expiresAt,
	})
}

func (h *MQHandler) BookingCreatedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "BookingCreatedNotification")
	defer span.End()

	slog.InfoContext(ctx, "consume: booking created notification", "msg_id", msg.ID, "msg_body", string(msg.Body))

	var payload event.BookingCreatedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of booking created notification", "msg_body", string(msg.Body), "error", err)
		return nil
	}

	return h.uc.ConsumeBookingCreated(ctx, usecase.ConsumeBookingCreatedInput{
		BookingID:     payload.BookingID,
		FullName:      payload.FullName,
		Email:         payload.Email,
		Address:       payload.Address,
		ServiceType:   payload.ServiceType,
		FlooringType:  payload.FlooringType,
		AreaSize:      payload.AreaSize,
		PreferredDate: payload.PreferredDate,
		PreferredTime: payload.PreferredTime,
	})
}
