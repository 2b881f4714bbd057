package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/floorease/internal/identity/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

type stubUC struct {
	err       error
	forgot    usecase.PasswordForgotInput
	verify    usecase.PasswordVerifyOTPInput
	reset     usecase.PasswordResetInput
	imageType string
}

func (s *stubUC) Register(_ context.Context, in usecase.RegisterInput) (*usecase.UserSummary, error) {
	return &usecase.UserSummary{ID: 1, FullName: in.FullName, Email: in.Email, Phone: in.Phone, Role: "user"}, s.err
}

func (s *stubUC) Login(context.Context, usecase.LoginInput) (*usecase.LoginOutput, error) {
	return &usecase.LoginOutput{AccessToken: "tok", User: usecase.UserSummary{ID: 1}}, s.err
}

func (s *stubUC) Profile(ctx context.Context) (*usecase.UserSummary, error) {
	return &usecase.UserSummary{ID: jwt.GetAuth(ctx).UserID, Email: "a@x.com"}, s.err
}

func (s *stubUC) ProfileUpdate(context.Context, usecase.ProfileUpdateInput) (*usecase.UserSummary, error) {
	return &usecase.UserSummary{ID: 1}, s.err
}

func (s *stubUC) ProfileImageMaxBytes() int64 { return 1024 }

func (s *stubUC) ProfileImageUpdate(_ context.Context, in usecase.ProfileImageUpdateInput) (*usecase.UserSummary, error) {
	s.imageType = in.ContentType
	return &usecase.UserSummary{ID: 1, ProfileImage: "https://cdn.test/p.png"}, s.err
}

func (s *stubUC) ProfileImageDelete(context.Context) (*usecase.UserSummary, error) {
	return &usecase.UserSummary{ID: 1}, s.err
}

func (s *stubUC) PasswordForgot(_ context.Context, in usecase.PasswordForgotInput) error {
	s.forgot = in
	return s.err
}

func (s *stubUC) PasswordVerifyOTP(_ context.Context, in usecase.PasswordVerifyOTPInput) (*usecase.PasswordVerifyOTPOutput, error) {
	s.verify = in
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.PasswordVerifyOTPOutput{Verified: true}, nil
}

func (s *stubUC) PasswordReset(_ context.Context, in usecase.PasswordResetInput) error {
	s.reset = in
	return s.err
}

type stubJWT struct{}

func (stubJWT) Generate(jwt.Subject) (string, error) { return "good", nil }

func (stubJWT) Verify(token string) (jwt.Claims, error) {
	if token != "good" {
		return jwt.Claims{}, jwt.ErrInvalidToken
	}
	return jwt.Claims{UserID: 7, Role: "user"}, nil
}

type stubID struct{}

func (stubID) Generate() string { return "cid" }

func newServer(t *testing.T, uc uc) http.Handler {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: stubID{}, JWT: stubJWT{}})
	RegisterHTTPEndpoint(r, uc)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body, token string) (int, map[string]any, http.Header) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out, rec.Header()
}

func TestPasswordEndpoints_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantError  map[string]any
	}{
		{
			name:       "forgot acknowledged",
			path:       "/api/v1/identity/password/forgot",
			body:       `{"email":"a@x.com"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "forgot throttled",
			path:       "/api/v1/identity/password/forgot",
			body:       `{"email":"a@x.com"}`,
			err:        goerror.NewBusiness("Please wait", goerror.CodeTooManyRequest).WithField("retry_after_seconds", "42"),
			wantStatus: http.StatusTooManyRequests,
			wantError:  map[string]any{"retry_after_seconds": "42"},
		},
		{
			name:       "forgot delivery failure",
			path:       "/api/v1/identity/password/forgot",
			body:       `{"email":"a@x.com"}`,
			err:        goerror.NewDelivery(assert.AnError),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "verify wrong code",
			path:       "/api/v1/identity/password/verify-otp",
			body:       `{"email":"a@x.com","otp":"000000"}`,
			err:        goerror.NewBusiness("Invalid email or OTP", goerror.CodeUnauthorized).WithField("attempts_remaining", "4"),
			wantStatus: http.StatusUnauthorized,
			wantError:  map[string]any{"attempts_remaining": "4"},
		},
		{
			name:       "verify expired",
			path:       "/api/v1/identity/password/verify-otp",
			body:       `{"email":"a@x.com","otp":"483920"}`,
			err:        goerror.NewBusiness("expired", goerror.CodeExpired),
			wantStatus: http.StatusGone,
		},
		{
			name:       "reset not verified",
			path:       "/api/v1/identity/password/reset",
			body:       `{"email":"a@x.com","new_password":"newpass1","confirm_password":"newpass1"}`,
			err:        goerror.NewBusiness("OTP not verified", goerror.CodeForbidden),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "reset mismatch",
			path:       "/api/v1/identity/password/reset",
			body:       `{"email":"a@x.com","new_password":"newpass1","confirm_password":"x"}`,
			err:        goerror.NewInvalidInput(nil, "confirm_password", "Passwords do not match"),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  map[string]any{"confirm_password": "Passwords do not match"},
		},
		{
			name:       "bad json",
			path:       "/api/v1/identity/password/reset",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newServer(t, &stubUC{err: tt.err})

			status, body, header := doJSON(t, h, http.MethodPost, tt.path, tt.body, "")

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantError != nil {
				assert.Equal(t, tt.wantError, body["error"])
			}
			if status == http.StatusTooManyRequests {
				assert.Equal(t, "42", header.Get("Retry-After"))
			}
		})
	}
}

func TestPasswordEndpoints_PassInput(t *testing.T) {
	uc := &stubUC{}
	h := newServer(t, uc)

	status, body, _ := doJSON(t, h, http.MethodPost, "/api/v1/identity/password/verify-otp", `{"email":"a@x.com","otp":"483920"}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"verified": true}, body["data"])
	assert.Equal(t, usecase.PasswordVerifyOTPInput{Email: "a@x.com", OTP: "483920"}, uc.verify)

	status, _, _ = doJSON(t, h, http.MethodPost, "/api/v1/identity/password/reset", `{"email":"a@x.com","new_password":"newpass1","confirm_password":"newpass1"}`, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, usecase.PasswordResetInput{Email: "a@x.com", NewPassword: "newpass1", ConfirmPassword: "newpass1"}, uc.reset)
}

func TestAccountEndpoints(t *testing.T) {
	h := newServer(t, &stubUC{})

	status, body, _ := doJSON(t, h, http.MethodPost, "/api/v1/identity/register", `{"full_name":"Asha","email":"a@x.com","phone":"9812345678","password":"secret1"}`, "")
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Register success", body["message"])
	assert.Equal(t, "1", body["data"].(map[string]any)["id"])

	status, _, _ = doJSON(t, h, http.MethodGet, "/api/v1/identity/profile", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body, _ = doJSON(t, h, http.MethodGet, "/api/v1/identity/profile", "", "good")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7", body["data"].(map[string]any)["id"])
}

func TestProfileImageUpdate_SniffsContentType(t *testing.T) {
	uc := &stubUC{}
	h := newServer(t, uc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n0000"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/identity/profile/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", uc.imageType)
}
