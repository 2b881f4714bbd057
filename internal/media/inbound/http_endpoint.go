package inbound

import (
	"net/http"

	"github.com/shandysiswandi/floorease/internal/media/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ImageUpload stores an image and returns its public URL.
// @Summary Upload image
// @Description Uploads are rate limited per user.
// @Tags Media
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "JPEG, PNG or WebP image"
// @Success 201 {object} router.successResponse{data=ImageUploadResponse} "Uploaded image"
// @Failure 400 {object} router.errorResponse "Invalid multipart body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many uploads"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/media/images [post]
func (h *HTTPEndpoint) ImageUpload(r *router.Request) (any, error) {
	file, err := r.ReadSingleFile("image", h.uc.ImageMaxBytes())
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.ImageUpload(r.Context(), usecase.ImageUploadInput{
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err != nil {
		return nil, err
	}

	return ImageUploadResponse{
		URL:         resp.URL,
		Key:         resp.Key,
		ContentType: resp.ContentType,
		Size:        resp.Size,
	}, nil
}

type ImageUploadResponse struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func (ImageUploadResponse) StatusCode() int { return http.StatusCreated }
func (ImageUploadResponse) Message() string { return "Uploaded" }
