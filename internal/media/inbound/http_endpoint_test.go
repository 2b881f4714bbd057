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

	"github.com/shandysiswandi/floorease/internal/media/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

type stubUC struct {
	err error
	in  usecase.ImageUploadInput
}

func (s *stubUC) ImageMaxBytes() int64 { return 64 }

func (s *stubUC) ImageUpload(_ context.Context, in usecase.ImageUploadInput) (*usecase.ImageUploadOutput, error) {
	s.in = in
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.ImageUploadOutput{
		URL:         "https://cdn.test/uploads/2025/03/a.png",
		Key:         "uploads/2025/03/a.png",
		ContentType: in.ContentType,
		Size:        int64(len(in.Data)),
	}, nil
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

func upload(t *testing.T, uc uc, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app: {}"))
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: stubID{}, JWT: stubJWT{}})
	RegisterHTTPEndpoint(r, uc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "floor.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestImageUpload_Endpoint(t *testing.T) {
	uc := &stubUC{}
	png := []byte("\x89PNG\r\n\x1a\n0000")

	rec := upload(t, uc, png)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "image/png", uc.in.ContentType)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Uploaded", body["message"])
	assert.Equal(t, map[string]any{
		"url":          "https://cdn.test/uploads/2025/03/a.png",
		"key":          "uploads/2025/03/a.png",
		"content_type": "image/png",
		"size":         float64(len(png)),
	}, body["data"])
}

func TestImageUpload_TooLarge(t *testing.T) {
	uc := &stubUC{}

	rec := upload(t, uc, bytes.Repeat([]byte("x"), 65))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, uc.in.Data)
}

func TestImageUpload_RateLimited(t *testing.T) {
	uc := &stubUC{err: goerror.NewBusiness("Too many uploads, please try again later", goerror.CodeTooManyRequest).
		WithField("retry_after_seconds", "30")}

	rec := upload(t, uc, []byte("\x89PNG\r\n\x1a\n0000"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
}
