package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/floorease/internal/booking/usecase"
	"github.com/shandysiswandi/floorease/internal/pkg/router"
)

const headerIdempotencyKey = "Idempotency-Key"

type HTTPEndpoint struct {
	uc uc
}

// BookingCreate books a flooring service for the caller.
// @Summary Create booking
// @Description Retries carrying the same Idempotency-Key are rejected with 409.
// @Tags Booking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Client generated key"
// @Param request body BookingCreateRequest true "Booking payload"
// @Success 201 {object} router.successResponse{data=BookingResponse} "Created booking"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Duplicate request"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/bookings [post]
func (h *HTTPEndpoint) BookingCreate(r *router.Request) (any, error) {
	var req BookingCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.BookingCreate(r.Context(), usecase.BookingCreateInput{
		IdempotencyKey: r.GetHeader(headerIdempotencyKey),
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		AreaSize:       req.AreaSize,
		ServiceType:    req.ServiceType,
		FlooringType:   req.FlooringType,
		PreferredDate:  req.PreferredDate,
		PreferredTime:  req.PreferredTime,
		Notes:          req.Notes,
	})
	if err != nil {
		return nil, err
	}

	return BookingCreateResponse{BookingResponse: toBookingResponse(*resp, 0)}, nil
}

// BookingMine lists the caller's bookings, newest first.
// @Summary List my bookings
// @Tags Booking
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=[]BookingResponse} "Bookings"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/bookings/mine [get]
func (h *HTTPEndpoint) BookingMine(r *router.Request) (any, error) {
	resp, err := h.uc.BookingMine(r.Context())
	if err != nil {
		return nil, err
	}

	return BookingListResponse{Items: lo.Map(resp, toBookingResponse)}, nil
}

// BookingList lists all bookings for admins.
// @Summary List bookings
// @Tags Booking, Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending or completed"
// @Param search query string false "Search by phone, email or full name"
// @Param page query int false "Page, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} router.successResponse{data=[]BookingResponse} "Bookings"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/bookings [get]
func (h *HTTPEndpoint) BookingList(r *router.Request) (any, error) {
	page, err := r.GetQueryInt("page")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.BookingList(r.Context(), usecase.BookingListInput{
		Status: r.GetQuery("status"),
		Search: r.GetQuery("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return BookingListResponse{
		Items: lo.Map(resp.Items, toBookingResponse),
		page:  resp.Page,
		limit: resp.Limit,
		total: resp.Total,
		paged: true,
	}, nil
}

// BookingUpdateStatus moves a booking to a new status.
// @Summary Update booking status
// @Tags Booking, Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body BookingUpdateStatusRequest true "Status payload"
// @Success 200 {object} router.successResponse{data=BookingResponse} "Updated booking"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Booking not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/bookings/{id}/status [patch]
func (h *HTTPEndpoint) BookingUpdateStatus(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req BookingUpdateStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.BookingUpdateStatus(r.Context(), usecase.BookingUpdateStatusInput{
		ID:     id,
		Status: req.Status,
	})
	if err != nil {
		return nil, err
	}

	return BookingUpdateStatusResponse{BookingResponse: toBookingResponse(*resp, 0)}, nil
}

// BookingDelete removes a booking.
// @Summary Delete booking
// @Tags Booking, Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} router.successResponse "Deleted"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Booking not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/bookings/{id} [delete]
func (h *HTTPEndpoint) BookingDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.BookingDelete(r.Context(), usecase.BookingDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return BookingDeleteResponse{}, nil
}
