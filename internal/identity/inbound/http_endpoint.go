package inbound

import (
	"github.com/shandysiswandi/floorease/internal/identity/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

// HTTPEndpoint exposes account, profile and password reset handlers.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a user account with the user role.
// @Summary Register user
// @Description Creates an account; the email must not be registered yet.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse} "Registered user"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "User already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{UserResponse: toUserResponse(resp)}, nil
}

// Login authenticates a user and returns an access token.
// @Summary Authenticate user
// @Description Validates credentials and returns a bearer token with the user summary.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{AccessToken: resp.AccessToken, User: toUserResponse(&resp.User)}, nil
}

// Profile returns the authenticated user.
// @Summary Get profile
// @Tags Identity, Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=UserResponse} "Profile result"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return toUserResponse(resp), nil
}

// ProfileUpdate changes the provided profile fields.
// @Summary Update profile
// @Description Partial update; a new email must stay unique and a new password is re-hashed.
// @Tags Identity, Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileUpdateRequest true "Profile payload"
// @Success 200 {object} router.successResponse{data=ProfileUpdateResponse} "Updated profile"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile [put]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req ProfileUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return ProfileUpdateResponse{UserResponse: toUserResponse(resp)}, nil
}

// ProfileImageUpdate replaces the profile image.
// @Summary Upload profile image
// @Tags Identity, Profile
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "JPEG, PNG or WebP image"
// @Success 200 {object} router.successResponse{data=ProfileImageResponse} "Updated profile"
// @Failure 400 {object} router.errorResponse "Invalid multipart body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile/image [put]
func (h *HTTPEndpoint) ProfileImageUpdate(r *router.Request) (any, error) {
	file, err := r.ReadSingleFile("image", h.uc.ProfileImageMaxBytes())
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ProfileImageUpdate(r.Context(), usecase.ProfileImageUpdateInput{
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err != nil {
		return nil, err
	}

	return ProfileImageResponse{UserResponse: toUserResponse(resp)}, nil
}

// ProfileImageDelete removes the profile image.
// @Summary Delete profile image
// @Tags Identity, Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ProfileImageDeleteResponse} "Updated profile"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile/image [delete]
func (h *HTTPEndpoint) ProfileImageDelete(r *router.Request) (any, error) {
	resp, err := h.uc.ProfileImageDelete(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileImageDeleteResponse{UserResponse: toUserResponse(resp)}, nil
}

// PasswordForgot issues a reset code when the email is registered.
// @Summary Request password reset code
// @Description Always acknowledges; a code is only sent for registered emails. Requests are throttled per user.
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body PasswordForgotRequest true "Forgot payload"
// @Success 200 {object} router.successResponse{data=PasswordForgotResponse} "Acknowledged"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Resend throttled"
// @Failure 503 {object} router.errorResponse "Code could not be delivered"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/forgot [post]
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return PasswordForgotResponse{}, nil
}

// PasswordVerifyOTP confirms a reset code.
// @Summary Verify password reset code
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body PasswordVerifyOTPRequest true "Verify payload"
// @Success 200 {object} router.successResponse{data=PasswordVerifyOTPResponse} "Verified"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid email or OTP"
// @Failure 410 {object} router.errorResponse "OTP expired"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many attempts"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/verify-otp [post]
func (h *HTTPEndpoint) PasswordVerifyOTP(r *router.Request) (any, error) {
	var req PasswordVerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordVerifyOTP(r.Context(), usecase.PasswordVerifyOTPInput{
		Email: req.Email,
		OTP:   req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return PasswordVerifyOTPResponse{Verified: resp.Verified}, nil
}

// PasswordReset sets a new password after a verified code.
// @Summary Reset password
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Reset payload"
// @Success 200 {object} router.successResponse{data=PasswordResetResponse} "Password reset"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid email"
// @Failure 403 {object} router.errorResponse "OTP not verified"
// @Failure 410 {object} router.errorResponse "OTP expired"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:           req.Email,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}
