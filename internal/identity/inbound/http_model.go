package inbound

import (
	"net/http"

	"github.com/shandysiswandi/floorease/internal/identity/usecase"
)

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID           int64  `json:"id,string"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
}

func toUserResponse(u *usecase.UserSummary) UserResponse {
	return UserResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
	}
}

type RegisterResponse struct {
	UserResponse
}

func (RegisterResponse) StatusCode() int { return http.StatusCreated }
func (RegisterResponse) Message() string { return "Register success" }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func (LoginResponse) Message() string { return "Login success" }

type ProfileUpdateRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

type ProfileUpdateResponse struct {
	UserResponse
}

func (ProfileUpdateResponse) Message() string { return "Profile updated successfully" }

type ProfileImageResponse struct {
	UserResponse
}

func (ProfileImageResponse) Message() string { return "Profile image updated" }

type ProfileImageDeleteResponse struct {
	UserResponse
}

func (ProfileImageDeleteResponse) Message() string { return "Profile image deleted" }

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct{}

func (PasswordForgotResponse) Message() string {
	return "If an account with that email exists, we have sent a password reset OTP."
}

type PasswordVerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type PasswordVerifyOTPResponse struct {
	Verified bool `json:"verified"`
}

func (PasswordVerifyOTPResponse) Message() string { return "OTP verified" }

type PasswordResetRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Message() string { return "Password has been reset successfully" }
