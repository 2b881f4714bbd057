package inbound

import (
	"context"

	"github.com/shandysiswandi/floorease/internal/media/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

type uc interface {
	ImageMaxBytes() int64
	ImageUpload(ctx context.Context, in usecase.ImageUploadInput) (*usecase.ImageUploadOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/media/images", end.ImageUpload)
}
