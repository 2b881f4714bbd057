package usecase

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
)

var otpSpan = big.NewInt(900000)

// randomOTP draws uniformly from [100000, 999999].
func randomOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

func isNotFound(err error) bool {
	return errors.Is(err, goerror.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, goerror.ErrConflict)
}

type UserSummary struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	Role         string
	ProfileImage string
}

func toSummary(u *entity.User) UserSummary {
	return UserSummary{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         string(u.Role.Ensure()),
		ProfileImage: u.ProfileImage,
	}
}
