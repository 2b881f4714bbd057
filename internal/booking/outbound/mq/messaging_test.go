package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
	"github.com/shandysiswandi/floorease/internal/shared/event"
)

type recordPublisher struct {
	topic string
	msg   messaging.Outgoing
	err   error
}

func (p *recordPublisher) Publish(_ context.Context, topic string, msg messaging.Outgoing) error {
	p.topic, p.msg = topic, msg
	return p.err
}

func TestMessaging_PublishBookingCreated(t *testing.T) {
	pub := &recordPublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "cid-2")

	b := entity.Booking{
		ID: 42, UserID: 7, FullName: "Sita", Email: "s@x.com", Phone: "9812345678",
		Address: "Lalitpur", AreaSize: 300, ServiceType: entity.ServicePolish,
		FlooringType: entity.FlooringWooden, PreferredDate: "2025-03-10",
		PreferredTime: entity.TimeAfternoon, Status: entity.StatusPending,
	}
	require.NoError(t, m.PublishBookingCreated(ctx, b))

	assert.Equal(t, event.BookingCreatedDestination, pub.topic)
	assert.Equal(t, "42", pub.msg.Key)
	assert.Equal(t, "cid-2", pub.msg.Headers[event.HeaderCorrelationID])

	var payload event.BookingCreatedMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &payload))
	assert.Equal(t, event.BookingCreatedMessage{
		BookingID:     42,
		UserID:        7,
		FullName:      "Sita",
		Email:         "s@x.com",
		Phone:         "9812345678",
		Address:       "Lalitpur",
		ServiceType:   "Polish",
		FlooringType:  "Wooden",
		AreaSize:      300,
		PreferredDate: "2025-03-10",
		PreferredTime: "Afternoon 12-4",
	}, payload)

	pub.err = errors.New("broker down")
	assert.Error(t, m.PublishBookingCreated(ctx, b))
}
