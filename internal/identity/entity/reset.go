package entity

import "time"

const (
	// OTPTTL is how long an issued code stays verifiable.
	OTPTTL = 10 * time.Minute
	// OTPResendWindow is the minimum gap between two issued codes.
	OTPResendWindow = 60 * time.Second
	// OTPMaxAttempts is the number of wrong codes tolerated per issued code.
	OTPMaxAttempts = 5
)

type ResetPhase uint8

const (
	ResetIdle ResetPhase = iota
	ResetIssued
	ResetVerified
)

func (p ResetPhase) String() string {
	switch p {
	case ResetIssued:
		return "issued"
	case ResetVerified:
		return "verified"
	default:
		return "idle"
	}
}

// ResetState is the password reset cycle of one user. The zero value is
// Idle. Issued and Verified always carry a hash and an expiry.
type ResetState struct {
	phase      ResetPhase
	otpHash    string
	expiresAt  time.Time
	attempts   int
	lastSentAt time.Time
}

// IdleReset is the state after a commit or before any request.
func IdleReset() ResetState { return ResetState{} }

// NewIssuedReset starts a fresh cycle at now, overwriting any previous one.
func NewIssuedReset(otpHash string, now time.Time) ResetState {
	return ResetState{
		phase:      ResetIssued,
		otpHash:    otpHash,
		expiresAt:  now.Add(OTPTTL),
		lastSentAt: now,
	}
}

// Verify marks an issued code as confirmed. Idle stays Idle.
func (r ResetState) Verify() ResetState {
	if r.phase == ResetIdle {
		return r
	}
	r.phase = ResetVerified
	return r
}

// FailAttempt records a wrong code.
func (r ResetState) FailAttempt() ResetState {
	if r.phase == ResetIdle {
		return r
	}
	r.attempts++
	return r
}

func (r ResetState) Phase() ResetPhase     { return r.phase }
func (r ResetState) OTPHash() string       { return r.otpHash }
func (r ResetState) ExpiresAt() time.Time  { return r.expiresAt }
func (r ResetState) Attempts() int         { return r.attempts }
func (r ResetState) LastSentAt() time.Time { return r.lastSentAt }
func (r ResetState) Verified() bool        { return r.phase == ResetVerified }

// Expired reports whether no code is verifiable at now. The expiry instant
// itself is still valid.
func (r ResetState) Expired(now time.Time) bool {
	return r.phase == ResetIdle || now.After(r.expiresAt)
}

func (r ResetState) AttemptsExhausted() bool {
	return r.attempts >= OTPMaxAttempts
}

func (r ResetState) AttemptsRemaining() int {
	return max(OTPMaxAttempts-r.attempts, 0)
}

// ResendWait is how long the caller must wait before a new code may be
// issued. Zero means now.
func (r ResetState) ResendWait(now time.Time) time.Duration {
	if r.lastSentAt.IsZero() {
		return 0
	}
	return max(r.lastSentAt.Add(OTPResendWindow).Sub(now), 0)
}

// ResetRecord is the flat persisted form of ResetState.
type ResetRecord struct {
	OTPHash       string
	OTPExpiresAt  *time.Time
	OTPVerified   bool
	OTPAttempts   int
	OTPLastSentAt *time.Time
}

func (r ResetState) Record() ResetRecord {
	if r.phase == ResetIdle {
		return ResetRecord{}
	}

	expiresAt, lastSentAt := r.expiresAt, r.lastSentAt
	rec := ResetRecord{
		OTPHash:      r.otpHash,
		OTPExpiresAt: &expiresAt,
		OTPVerified:  r.phase == ResetVerified,
		OTPAttempts:  r.attempts,
	}
	if !lastSentAt.IsZero() {
		rec.OTPLastSentAt = &lastSentAt
	}
	return rec
}

// RestoreResetState rebuilds the state from a stored record. A record
// without hash or expiry is Idle whatever its other columns say.
func RestoreResetState(rec ResetRecord) ResetState {
	if rec.OTPHash == "" || rec.OTPExpiresAt == nil || rec.OTPExpiresAt.IsZero() {
		return ResetState{}
	}

	r := ResetState{
		phase:     ResetIssued,
		otpHash:   rec.OTPHash,
		expiresAt: *rec.OTPExpiresAt,
		attempts:  max(rec.OTPAttempts, 0),
	}
	if rec.OTPVerified {
		r.phase = ResetVerified
	}
	if rec.OTPLastSentAt != nil {
		r.lastSentAt = *rec.OTPLastSentAt
	}
	return r
}
