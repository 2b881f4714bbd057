package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/mail"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
)

type fakeMail struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newUsecase(t *testing.T) (*Usecase, *fakeMail, *clock.Fixed) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("mail:\n  from: FloorEase <no-reply@floorease.test>\n"))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	m := &fakeMail{}
	clk := clock.NewFixed(t0)
	return NewNotification(Dependency{
		RepoMail:   m,
		Config:     cfg,
		Clock:      clk,
		Validator:  v,
		Instrument: instrument.NewNoop(),
	}), m, clk
}

func resetInput() ConsumePasswordResetOtpInput {
	return ConsumePasswordResetOtpInput{
		UserID:    9,
		Email:     "asha@example.com",
		FullName:  "Asha",
		Code:      "483920",
		ExpiresAt: t0.Add(10 * time.Minute),
	}
}

func TestConsumePasswordResetOtp(t *testing.T) {
	uc, m, _ := newUsecase(t)

	require.NoError(t, uc.ConsumePasswordResetOtp(context.Background(), resetInput()))

	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, "Password Reset OTP - FloorEase", msg.Subject)
	assert.Equal(t, "FloorEase <no-reply@floorease.test>", msg.From)
	assert.Equal(t, []string{"asha@example.com"}, msg.To)
	assert.Contains(t, msg.TextBody, "483920")
	assert.Contains(t, msg.TextBody, "valid for 10 minutes")
}

func TestConsumePasswordResetOtp_Drops(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConsumePasswordResetOtpInput)
	}{
		{name: "missing email", mutate: func(in *ConsumePasswordResetOtpInput) { in.Email = "" }},
		{name: "short code", mutate: func(in *ConsumePasswordResetOtpInput) { in.Code = "123" }},
		{name: "no expiry", mutate: func(in *ConsumePasswordResetOtpInput) { in.ExpiresAt = time.Time{} }},
		{name: "already expired", mutate: func(in *ConsumePasswordResetOtpInput) { in.ExpiresAt = t0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, m, _ := newUsecase(t)
			in := resetInput()
			tt.mutate(&in)

			assert.NoError(t, uc.ConsumePasswordResetOtp(context.Background(), in))
			assert.Empty(t, m.sent)
		})
	}
}

func TestConsumePasswordResetOtp_DelayedDeliveryShowsRemainingMinutes(t *testing.T) {
	uc, m, clk := newUsecase(t)
	clk.Advance(4*time.Minute + 30*time.Second)

	require.NoError(t, uc.ConsumePasswordResetOtp(context.Background(), resetInput()))
	require.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0].TextBody, "valid for 6 minutes")
}

func TestConsumePasswordResetOtp_MailFailureIsReturned(t *testing.T) {
	uc, m, _ := newUsecase(t)
	m.err = errors.New("smtp down")

	assert.ErrorIs(t, uc.ConsumePasswordResetOtp(context.Background(), resetInput()), m.err)
}

func bookingInput() ConsumeBookingCreatedInput {
	return ConsumeBookingCreatedInput{
		BookingID:     77,
		FullName:      "Sita",
		Email:         "sita@example.com",
		Address:       "Lalitpur",
		ServiceType:   "Repair",
		FlooringType:  "SPC",
		AreaSize:      120.5,
		PreferredDate: "2025-03-10",
		PreferredTime: "Morning 8-12",
	}
}

func TestConsumeBookingCreated(t *testing.T) {
	uc, m, _ := newUsecase(t)

	require.NoError(t, uc.ConsumeBookingCreated(context.Background(), bookingInput()))

	require.Len(t, m.sent, 1)
	assert.Equal(t, "Booking Received - FloorEase", m.sent[0].Subject)
	assert.Equal(t, []string{"sita@example.com"}, m.sent[0].To)
	assert.Contains(t, m.sent[0].TextBody, "#77")
}

func TestConsumeBookingCreated_SkipsAndDrops(t *testing.T) {
	uc, m, _ := newUsecase(t)

	noEmail := bookingInput()
	noEmail.Email = ""
	assert.NoError(t, uc.ConsumeBookingCreated(context.Background(), noEmail))

	invalid := bookingInput()
	invalid.BookingID = 0
	assert.NoError(t, uc.ConsumeBookingCreated(context.Background(), invalid))

	assert.Empty(t, m.sent)

	m.err = errors.New("smtp down")
	assert.Error(t, uc.ConsumeBookingCreated(context.Background(), bookingInput()))
}
