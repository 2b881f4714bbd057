package inbound

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/floorease/internal/notification/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/goroutine"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/shared/event"
)

type stubUC struct {
	mu       sync.Mutex
	resets   []usecase.ConsumePasswordResetOtpInput
	bookings []usecase.ConsumeBookingCreatedInput
	cids     []string
	err      error
}

func (s *stubUC) ConsumePasswordResetOtp(ctx context.Context, in usecase.ConsumePasswordResetOtpInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, in)
	s.cids = append(s.cids, instrument.GetCorrelationID(ctx))
	return s.err
}

func (s *stubUC) ConsumeBookingCreated(ctx context.Context, in usecase.ConsumeBookingCreatedInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, in)
	s.cids = append(s.cids, instrument.GetCorrelationID(ctx))
	return s.err
}

func (s *stubUC) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resets), len(s.bookings)
}

type stubID struct{}

func (stubID) Generate() string { return "generated-cid" }

func TestMQHandler_PasswordResetOtp(t *testing.T) {
	uc := &stubUC{}
	h := &MQHandler{uc: uc, uuid: stubID{}, ins: instrument.NewNoop()}

	body, err := json.Marshal(event.PasswordResetOtpMessage{UserID: 9, Email: "a@x.com", FullName: "Asha", Code: "483920", ExpiresAt: 1740823800})
	require.NoError(t, err)

	err = h.PasswordResetOtpNotification(context.Background(), messaging.Message{
		Body:    body,
		Headers: map[string]string{event.HeaderCorrelationID: "cid-9"},
	})
	require.NoError(t, err)

	require.Len(t, uc.resets, 1)
	assert.Equal(t, "483920", uc.resets[0].Code)
	assert.True(t, uc.resets[0].ExpiresAt.Equal(time.Unix(1740823800, 0)))
	assert.Equal(t, []string{"cid-9"}, uc.cids)
}

func TestMQHandler_InvalidBodyIsAcked(t *testing.T) {
	uc := &stubUC{}
	h := &MQHandler{uc: uc, uuid: stubID{}, ins: instrument.NewNoop()}

	assert.NoError(t, h.PasswordResetOtpNotification(context.Background(), messaging.Message{Body: []byte("{")}))
	assert.NoError(t, h.BookingCreatedNotification(context.Background(), messaging.Message{Body: []byte("nope")}))

	resets, bookings := uc.counts()
	assert.Zero(t, resets)
	assert.Zero(t, bookings)
}

func TestMQHandler_UsecaseErrorIsReturned(t *testing.T) {
	uc := &stubUC{err: assert.AnError}
	h := &MQHandler{uc: uc, uuid: stubID{}, ins: instrument.NewNoop()}

	body, err := json.Marshal(event.BookingCreatedMessage{BookingID: 1})
	require.NoError(t, err)

	err = h.BookingCreatedNotification(context.Background(), messaging.Message{Body: body})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"generated-cid"}, uc.cids)
}

func TestRegisterMQConsumer(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte(`
modules:
  notification:
    consumer_names: ["booking_created_notification"]
`))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	bus := messaging.NewMemory()
	routine := goroutine.NewManager(4)
	uc := &stubUC{}

	started := RegisterMQConsumer(ctx, cfg, routine, bus, stubID{}, uc, instrument.NewNoop())
	assert.Equal(t, []string{event.BookingCreatedConsumerNotification}, started)

	body, err := json.Marshal(event.BookingCreatedMessage{BookingID: 5, FullName: "Sita"})
	require.NoError(t, err)

	// The consumer subscribes asynchronously; publish until it is listening.
	require.Eventually(t, func() bool {
		_ = bus.Publish(ctx, event.BookingCreatedDestination, messaging.Outgoing{Body: body})
		_, bookings := uc.counts()
		return bookings > 0
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, routine.Wait())

	resets, _ := uc.counts()
	assert.Zero(t, resets)
}
