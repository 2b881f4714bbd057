package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetState_Lifecycle(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	idle := IdleReset()
	assert.Equal(t, ResetIdle, idle.Phase())
	assert.True(t, idle.Expired(now))
	assert.Equal(t, idle, idle.Verify())
	assert.Equal(t, idle, idle.FailAttempt())
	assert.Zero(t, idle.ResendWait(now))

	issued := NewIssuedReset("h1", now)
	assert.Equal(t, ResetIssued, issued.Phase())
	assert.Equal(t, now.Add(OTPTTL), issued.ExpiresAt())
	assert.Equal(t, OTPResendWindow, issued.ResendWait(now))
	assert.Equal(t, 59*time.Second+500*time.Millisecond, issued.ResendWait(now.Add(500*time.Millisecond)))
	assert.Zero(t, issued.ResendWait(now.Add(2*time.Minute)))

	assert.False(t, issued.Expired(now.Add(OTPTTL)))
	assert.True(t, issued.Expired(now.Add(OTPTTL+time.Millisecond)))

	failed := issued
	for range OTPMaxAttempts {
		failed = failed.FailAttempt()
	}
	assert.True(t, failed.AttemptsExhausted())
	assert.Zero(t, failed.AttemptsRemaining())
	assert.Equal(t, 0, issued.Attempts(), "value receiver must not mutate")

	verified := issued.Verify()
	assert.True(t, verified.Verified())
	assert.Equal(t, "h1", verified.OTPHash())
	assert.Equal(t, issued.ExpiresAt(), verified.ExpiresAt())

	reissued := NewIssuedReset("h2", now.Add(time.Minute))
	assert.False(t, reissued.Verified())
	assert.Zero(t, reissued.Attempts())
}

func TestResetState_RecordRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, ResetRecord{}, IdleReset().Record())

	st := NewIssuedReset("h", now).FailAttempt().Verify()
	rec := st.Record()
	assert.Equal(t, "h", rec.OTPHash)
	assert.True(t, rec.OTPVerified)
	assert.Equal(t, 1, rec.OTPAttempts)
	assert.Equal(t, st, RestoreResetState(rec))
}

func TestRestoreResetState_NormalizesInconsistentRows(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  ResetRecord
	}{
		{name: "verified without hash", rec: ResetRecord{OTPVerified: true, OTPExpiresAt: &now}},
		{name: "hash without expiry", rec: ResetRecord{OTPHash: "h", OTPVerified: true, OTPAttempts: 2}},
		{name: "zero expiry", rec: ResetRecord{OTPHash: "h", OTPExpiresAt: &time.Time{}}},
		{name: "only last sent", rec: ResetRecord{OTPLastSentAt: &now}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := RestoreResetState(tt.rec)
			assert.Equal(t, ResetIdle, st.Phase())
			assert.Equal(t, IdleReset(), st)
		})
	}

	negative := RestoreResetState(ResetRecord{OTPHash: "h", OTPExpiresAt: &now, OTPAttempts: -3})
	assert.Equal(t, 0, negative.Attempts())
}

func TestRole_Ensure(t *testing.T) {
	assert.Equal(t, RoleAdmin, Role("admin").Ensure())
	assert.Equal(t, RoleUser, Role("").Ensure())
	assert.Equal(t, RoleUser, Role("root").Ensure())
}
