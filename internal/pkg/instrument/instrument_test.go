package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_MasksAndCorrelates(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "floorease-test", "debug", nil, []string{"phone"})

	ctx := SetCorrelationID(context.Background(), "cid-1")
	log.InfoContext(ctx, "forgot password",
		"email", "asha@example.com",
		"otp", "123456",
		"phone", "9812345678",
		"payload", `{"new_password":"secret","email":"asha@example.com"}`,
	)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "forgot password", line["msg"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "floorease-test", line["service"])
	assert.Equal(t, "asha@example.com", line["email"])
	assert.Equal(t, redacted, line["otp"])
	assert.Equal(t, redacted, line["phone"])
	assert.JSONEq(t, `{"new_password":"***","email":"asha@example.com"}`, line["payload"].(string))
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "svc", "warn", nil, nil)

	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.With("token", "abc").Warn("shown")
	assert.Contains(t, buf.String(), `"token":"***"`)
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "x", GetCorrelationID(SetCorrelationID(context.Background(), "x")))
}

func TestNew_Disabled(t *testing.T) {
	ins, err := New(context.Background(), nil)
	require.NoError(t, err)

	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()
	assert.NoError(t, ins.Shutdown(context.Background()))
}
