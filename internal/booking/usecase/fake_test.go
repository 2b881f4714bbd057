package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/floorease/internal/booking/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/idempotency"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/rbac"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
)

var errBoom = errors.New("boom")

type fakeDB struct {
	mu        sync.Mutex
	bookings  map[int64]entity.Booking
	createErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{bookings: make(map[int64]entity.Booking)}
}

func (f *fakeDB) CreateBooking(_ context.Context, b entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeDB) GetBookingByID(_ context.Context, id int64) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &b, nil
}

func (f *fakeDB) sorted(keep func(entity.Booking) bool) []entity.Booking {
	var out []entity.Booking
	for _, b := range f.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b entity.Booking) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out
}

func (f *fakeDB) ListBookingsByUser(_ context.Context, userID int64) ([]entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sorted(func(b entity.Booking) bool { return b.UserID == userID }), nil
}

func (f *fakeDB) ListBookings(_ context.Context, flt entity.ListFilter) ([]entity.Booking, int64, error) {
	if flt.Offset < 0 || flt.Limit <= 0 {
		return nil, 0, errors.New("fake: OFFSET must not be negative and LIMIT must be positive")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	q := strings.ToLower(flt.Search)
	all := f.sorted(func(b entity.Booking) bool {
		if flt.Status != "" && b.Status != flt.Status {
			return false
		}
		return q == "" ||
			strings.Contains(strings.ToLower(b.Phone), q) ||
			strings.Contains(strings.ToLower(b.Email), q) ||
			strings.Contains(strings.ToLower(b.FullName), q)
	})

	total := int64(len(all))
	if flt.Offset >= len(all) {
		return nil, total, nil
	}
	return all[flt.Offset:min(flt.Offset+flt.Limit, len(all))], total, nil
}

func (f *fakeDB) UpdateBookingStatus(_ context.Context, id int64, status entity.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return goerror.ErrNotFound
	}
	b.Status = status
	f.bookings[id] = b
	return nil
}

func (f *fakeDB) DeleteBooking(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.bookings[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeDB) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakePublisher struct {
	mu        sync.Mutex
	published []entity.Booking
	err       error
}

func (f *fakePublisher) PublishBookingCreated(_ context.Context, b entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.published = append(f.published, b)
	return f.err
}

// fakeIdempotency mirrors the Redis implementation with a map.
type fakeIdempotency struct {
	mu    sync.Mutex
	state map[string]string
	keys  []string
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error) error {
	f.mu.Lock()
	f.keys = append(f.keys, key)
	switch f.state[key] {
	case "completed":
		f.mu.Unlock()
		return idempotency.ErrCompleted
	case "in_progress":
		f.mu.Unlock()
		return idempotency.ErrInProgress
	}
	f.state[key] = "in_progress"
	f.mu.Unlock()

	err := fn(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		delete(f.state, key)
		return err
	}
	f.state[key] = "completed"
	return nil
}

type fixture struct {
	uc    *Usecase
	db    *fakeDB
	pub   *fakePublisher
	idem  *fakeIdempotency
	clock *clock.Fixed
}

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	sf, err := uid.NewSnowflake(1)
	require.NoError(t, err)

	enforcer, err := rbac.New(nil)
	require.NoError(t, err)

	f := &fixture{
		db:    newFakeDB(),
		pub:   &fakePublisher{},
		idem:  &fakeIdempotency{state: make(map[string]string)},
		clock: clock.NewFixed(t0),
	}

	f.uc = New(Dependency{
		RepoDB:      f.db,
		Publisher:   f.pub,
		Idempotency: f.idem,
		Enforcer:    enforcer,
		Validator:   v,
		UID:         sf,
		Clock:       f.clock,
		Instrument:  instrument.NewNoop(),
	})

	return f
}

func asUser(id int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id, UserEmail: "user@example.com", Role: rbac.RoleUser})
}

func asAdmin(id int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id, UserEmail: "admin@example.com", Role: rbac.RoleAdmin})
}

func validInput() BookingCreateInput {
	return BookingCreateInput{
		FullName:      "Sita Sharma",
		Email:         "Sita@Example.com",
		Phone:         "98 1234 5678",
		Address:       "Lalitpur",
		AreaSize:      450,
		PreferredDate: "2025-03-10",
	}
}

// seed creates a booking for userID, one minute after the previous seed.
func (f *fixture) seed(t *testing.T, userID int64, mutate func(*BookingCreateInput)) Booking {
	t.Helper()

	in := validInput()
	if mutate != nil {
		mutate(&in)
	}
	f.clock.Advance(time.Minute)

	out, err := f.uc.BookingCreate(asUser(userID), in)
	require.NoError(t, err)
	return *out
}
