package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/floorease/internal/identity/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.UserSummary, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	Profile(ctx context.Context) (*usecase.UserSummary, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) (*usecase.UserSummary, error)
	ProfileImageMaxBytes() int64
	ProfileImageUpdate(ctx context.Context, in usecase.ProfileImageUpdateInput) (*usecase.UserSummary, error)
	ProfileImageDelete(ctx context.Context) (*usecase.UserSummary, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordVerifyOTP(ctx context.Context, in usecase.PasswordVerifyOTPInput) (*usecase.PasswordVerifyOTPOutput, error)
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.Public(http.MethodPost, "/api/v1/identity/register", end.Register)
	r.Public(http.MethodPost, "/api/v1/identity/login", end.Login)

	// Password reset by OTP
	r.Public(http.MethodPost, "/api/v1/identity/password/forgot", end.PasswordForgot)
	r.Public(http.MethodPost, "/api/v1/identity/password/verify-otp", end.PasswordVerifyOTP)
	r.Public(http.MethodPost, "/api/v1/identity/password/reset", end.PasswordReset)

	// Profile (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
	r.PUT("/api/v1/identity/profile", end.ProfileUpdate)
	r.PUT("/api/v1/identity/profile/image", end.ProfileImageUpdate)
	r.DELETE("/api/v1/identity/profile/image", end.ProfileImageDelete)
}
