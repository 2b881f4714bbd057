package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/floorease/internal/booking/usecase"
)

type BookingCreateRequest struct {
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	AreaSize      float64 `json:"area_size"`
	ServiceType   string  `json:"service_type"`
	FlooringType  string  `json:"flooring_type"`
	PreferredDate string  `json:"preferred_date"`
	PreferredTime string  `json:"preferred_time"`
	Notes         string  `json:"notes"`
}

type BookingResponse struct {
	ID            int64     `json:"id,string"`
	UserID        int64     `json:"user_id,string"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	AreaSize      float64   `json:"area_size"`
	ServiceType   string    `json:"service_type"`
	FlooringType  string    `json:"flooring_type"`
	PreferredDate string    `json:"preferred_date"`
	PreferredTime string    `json:"preferred_time"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toBookingResponse(b usecase.Booking, _ int) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		FullName:      b.FullName,
		Email:         b.Email,
		Phone:         b.Phone,
		Address:       b.Address,
		AreaSize:      b.AreaSize,
		ServiceType:   b.ServiceType,
		FlooringType:  b.FlooringType,
		PreferredDate: b.PreferredDate,
		PreferredTime: b.PreferredTime,
		Notes:         b.Notes,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type BookingCreateResponse struct {
	BookingResponse
}

func (BookingCreateResponse) StatusCode() int { return http.StatusCreated }
func (BookingCreateResponse) Message() string { return "Booking created successfully" }

// BookingListResponse carries paging meta only for the admin list.
type BookingListResponse struct {
	Items []BookingResponse `json:"items"`

	page  int
	limit int
	total int64
	paged bool
}

func (BookingListResponse) Message() string { return "Bookings fetched successfully" }

func (r BookingListResponse) Meta() map[string]any {
	if !r.paged {
		return nil
	}
	return map[string]any{"page": r.page, "limit": r.limit, "total": r.total}
}

type BookingUpdateStatusRequest struct {
	Status string `json:"status"`
}

type BookingUpdateStatusResponse struct {
	BookingResponse
}

func (BookingUpdateStatusResponse) Message() string { return "Booking status updated successfully" }

type BookingDeleteResponse struct{}

func (BookingDeleteResponse) Message() string { return "Booking deleted successfully" }
