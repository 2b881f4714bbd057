package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/floorease/internal/identity/outbound/email"
	"github.com/shandysiswandi/floorease/internal/identity/outbound/mq"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/messaging"
)

func TestNewNotifier(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantMail bool
		wantErr  bool
	}{
		{name: "unset defaults to mail", yaml: "modules: {}", wantMail: true},
		{name: "mail", yaml: "modules: {identity: {otp_delivery: mail}}", wantMail: true},
		{name: "broker", yaml: "modules: {identity: {otp_delivery: MQ}}"},
		{name: "unknown", yaml: "modules: {identity: {otp_delivery: sms}}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.NewViperFromBytes("yaml", []byte(tt.yaml))
			require.NoError(t, err)

			got, err := newNotifier(Dependency{
				Config:     cfg,
				Messaging:  messaging.NewMemory(),
				Clock:      clock.New(),
				Instrument: instrument.NewNoop(),
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantMail {
				assert.IsType(t, &email.Mail{}, got)
			} else {
				assert.IsType(t, &mq.Messaging{}, got)
			}
		})
	}
}
