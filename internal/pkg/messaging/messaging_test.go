package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_FanOutAndRedeliver(t *testing.T) {
	bus := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus.queue("booking_created", "notification")
	bus.queue("booking_created", "audit")

	var (
		mu       sync.Mutex
		got      = map[string][]Message{}
		failOnce = true
		done     = make(chan struct{}, 4)
	)
	record := func(group string) Handler {
		return func(_ context.Context, msg Message) error {
			mu.Lock()
			defer mu.Unlock()
			if group == "notification" && failOnce {
				failOnce = false
				done <- struct{}{}
				return errors.New("smtp down")
			}
			got[group] = append(got[group], msg)
			done <- struct{}{}
			return nil
		}
	}

	go func() { _ = bus.Consume(ctx, "booking_created", record("notification"), WithGroup("notification")) }()
	go func() { _ = bus.Consume(ctx, "booking_created", record("audit"), WithGroup("audit")) }()

	require.NoError(t, bus.Publish(ctx, "booking_created", Outgoing{
		Key:     "b-1",
		Body:    []byte(`{"id":1}`),
		Headers: map[string]string{"cID": "cid-1"},
	}))

	for range 3 {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for deliveries")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got["audit"], 1)
	require.Len(t, got["notification"], 1)
	assert.False(t, got["audit"][0].Redelivered)
	assert.True(t, got["notification"][0].Redelivered)
	assert.Equal(t, "cid-1", got["notification"][0].Header("cID"))
	assert.JSONEq(t, `{"id":1}`, string(got["audit"][0].Body))
}

func TestMemory_Validation(t *testing.T) {
	bus := NewMemory()
	ctx := context.Background()

	assert.ErrorIs(t, bus.Publish(ctx, "", Outgoing{}), ErrTopicRequired)
	assert.ErrorIs(t, bus.Consume(ctx, "t", nil), ErrHandlerRequired)

	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.Publish(ctx, "t", Outgoing{}), ErrClosed)
}

func TestDispatch_RecoversPanic(t *testing.T) {
	err := dispatch(context.Background(), DriverMemory, func(context.Context, Message) error {
		panic("bad payload")
	}, Message{Topic: "t"})
	assert.ErrorContains(t, err, "panic")
}

func TestEnvelope(t *testing.T) {
	data, err := wrap(Outgoing{Key: "k", Body: []byte("hello"), Headers: map[string]string{"cID": "x"}})
	require.NoError(t, err)

	key, headers, body := unwrap(data)
	assert.Equal(t, "k", key)
	assert.Equal(t, map[string]string{"cID": "x"}, headers)
	assert.Equal(t, []byte("hello"), body)

	_, headers, body = unwrap([]byte(`{"plain":true}`))
	assert.Nil(t, headers)
	assert.Equal(t, []byte(`{"plain":true}`), body)
}

func TestNewFromDriver(t *testing.T) {
	m, err := NewFromDriver(context.Background(), "memory", FactoryOptions{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, m)

	_, err = NewFromDriver(context.Background(), "carrier-pigeon", FactoryOptions{})
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = NewFromDriver(context.Background(), DriverKafka, FactoryOptions{})
	assert.ErrorIs(t, err, ErrKafkaBrokersRequired)
}

func TestBuildConsumeOptions(t *testing.T) {
	co := buildConsumeOptions([]ConsumeOption{WithGroup("g"), WithConcurrency(4), nil})
	assert.Equal(t, consumeOptions{group: "g", concurrency: 4, maxInFlight: 4}, co)

	co = buildConsumeOptions([]ConsumeOption{WithConcurrency(-1), WithMaxInFlight(10)})
	assert.Equal(t, 1, co.concurrency)
	assert.Equal(t, 10, co.maxInFlight)
}
