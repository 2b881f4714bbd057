// Package event holds the broker topics and payloads shared between
// modules.
package event

// HeaderCorrelationID carries the request correlation id across the broker.
const HeaderCorrelationID = "cID"

const (
	PasswordResetOtpDestination          = "password_reset_otp"
	PasswordResetOtpConsumerNotification = "password_reset_otp_notification"
)

// PasswordResetOtpMessage carries a plaintext reset code to the mailer.
type PasswordResetOtpMessage struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Code      string `json:"code"`
	ExpiresAt int64  `json:"expires_at"` // unix seconds
}

const (
	BookingCreatedDestination          = "booking_created"
	BookingCreatedConsumerNotification = "booking_created_notification"
)

type BookingCreatedMessage struct {
	BookingID     int64   `json:"booking_id"`
	UserID        int64   `json:"user_id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	ServiceType   string  `json:"service_type"`
	FlooringType  string  `json:"flooring_type"`
	AreaSize      float64 `json:"area_size"`
	PreferredDate string  `json:"preferred_date"`
	PreferredTime string  `json:"preferred_time"`
}
