package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

func isNotFound(err error) bool {
	return errors.Is(err, goerror.ErrNotFound)
}

func notFound() error {
	return goerror.NewBusiness("Booking not found", goerror.CodeNotFound)
}

func normalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

type Booking struct {
	ID            int64
	UserID        int64
	FullName      string
	Email         string
	Phone         string
	Address       string
	AreaSize      float64
	ServiceType   string
	FlooringType  string
	PreferredDate string
	PreferredTime string
	Notes         string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func toBooking(b entity.Booking) Booking {
	return Booking{
		ID:            b.ID,
		UserID:        b.UserID,
		FullName:      b.FullName,
		Email:         b.Email,
		Phone:         b.Phone,
		Address:       b.Address,
		AreaSize:      b.AreaSize,
		ServiceType:   string(b.ServiceType),
		FlooringType:  string(b.FlooringType),
		PreferredDate: b.PreferredDate,
		PreferredTime: string(b.PreferredTime),
		Notes:         b.Notes,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
