package inbound

import (
	"context"

	"github.com/shandysiswandi/floorease/internal/booking/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

type uc interface {
	BookingCreate(ctx context.Context, in usecase.BookingCreateInput) (*usecase.Booking, error)
	BookingMine(ctx context.Context) ([]usecase.Booking, error)

	BookingList(ctx context.Context, in usecase.BookingListInput) (*usecase.BookingListOutput, error)
	BookingUpdateStatus(ctx context.Context, in usecase.BookingUpdateStatusInput) (*usecase.Booking, error)
	BookingDelete(ctx context.Context, in usecase.BookingDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/bookings", end.BookingCreate)
	r.GET("/api/v1/bookings/mine", end.BookingMine)

	// Admin
	r.GET("/api/v1/bookings", end.BookingList)
	r.PATCH("/api/v1/bookings/:id/status", end.BookingUpdateStatus)
	r.DELETE("/api/v1/bookings/:id", end.BookingDelete)
}
