package usecase

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/clock"
	"github.com/shandysiswandi/floorease/internal/pkg/config"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/hash"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"github.com/shandysiswandi/floorease/internal/pkg/jwt"
	"github.com/shandysiswandi/floorease/internal/pkg/locker"
	"github.com/shandysiswandi/floorease/internal/pkg/storage"
	"github.com/shandysiswandi/floorease/internal/pkg/uid"
	"github.com/shandysiswandi/floorease/internal/pkg/validator"
)

var errBoom = errors.New("boom")

type fakeDB struct {
	mu     sync.Mutex
	users  map[int64]entity.User
	saves  int
	getErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[int64]entity.User)}
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeDB) CreateUser(_ context.Context, user entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return goerror.ErrConflict
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeDB) UpdateUserProfile(_ context.Context, id int64, change entity.ProfileChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return goerror.ErrNotFound
	}
	for _, other := range f.users {
		if other.ID != id && other.Email == change.Email {
			return goerror.ErrConflict
		}
	}
	u.FullName, u.Email, u.Phone = change.FullName, change.Email, change.Phone
	if change.PasswordHash != "" {
		u.Password = change.PasswordHash
	}
	f.users[id] = u
	return nil
}

func (f *fakeDB) UpdateUserProfileImage(_ context.Context, id int64, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return goerror.ErrNotFound
	}
	u.ProfileImage = url
	f.users[id] = u
	return nil
}

func (f *fakeDB) SaveResetState(_ context.Context, userID int64, state entity.ResetState) error {
	// Yield between read and write so unserialized callers would interleave.
	runtime.Gosched()

	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return goerror.ErrNotFound
	}
	u.Reset = state
	f.users[userID] = u
	f.saves++
	return nil
}

func (f *fakeDB) CommitPassword(_ context.Context, userID int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return goerror.ErrNotFound
	}
	u.Password = passwordHash
	u.Reset = entity.IdleReset()
	f.users[userID] = u
	return nil
}

func (f *fakeDB) user(t *testing.T, email string) entity.User {
	t.Helper()
	u, err := f.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return *u
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []ResetOtpNotice
	err     error
}

func (f *fakeNotifier) SendResetOtp(_ context.Context, in ResetOtpNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.notices = append(f.notices, in)
	return f.err
}

func (f *fakeNotifier) last(t *testing.T) ResetOtpNotice {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.notices)
	return f.notices[len(f.notices)-1]
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notices)
}

type fixture struct {
	uc       *Usecase
	db       *fakeDB
	notifier *fakeNotifier
	clock    *clock.Fixed
	store    *storage.Memory
	password hash.Hash
	jwt      jwt.JWT

	mu    sync.Mutex
	codes []string
}

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

const testConfig = `
storage:
  public_base_url: https://cdn.test/media
modules:
  identity:
    reset_lock_ttl_seconds: 5
    profile_image_max_bytes: 64
`

// newFixture returns a usecase whose OTP generator yields codes in order
// and random codes afterwards.
func newFixture(t *testing.T, codes ...string) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	sf, err := uid.NewSnowflake(1)
	require.NoError(t, err)

	clk := clock.NewFixed(t0)
	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer: "floorease",
		TTL:    time.Hour,
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	f := &fixture{
		db:       newFakeDB(),
		notifier: &fakeNotifier{},
		clock:    clk,
		store:    storage.NewMemory(),
		password: hash.NewHMACSHA256("password-secret"),
		jwt:      tokens,
		codes:    codes,
	}

	f.uc = New(Dependency{
		RepoDB:     f.db,
		Notifier:   f.notifier,
		Storage:    f.store,
		Locker:     locker.NewMemory(),
		Validator:  v,
		Config:     cfg,
		Password:   f.password,
		OTPHash:    hash.NewHMACSHA256("otp-secret"),
		UID:        sf,
		UUID:       uid.NewUUID(),
		Clock:      clk,
		JWT:        tokens,
		Instrument: instrument.NewNoop(),
		OTPCode:    f.nextCode,
	})

	return f
}

func (f *fixture) nextCode() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.codes) == 0 {
		return randomOTP()
	}
	code := f.codes[0]
	f.codes = f.codes[1:]
	return code, nil
}

func (f *fixture) seedUser(t *testing.T, id int64, email, password string) entity.User {
	t.Helper()

	passHash, err := f.password.Hash(password)
	require.NoError(t, err)

	u := entity.User{
		ID:        id,
		FullName:  "Test User",
		Email:     email,
		Phone:     "9812345678",
		Password:  string(passHash),
		Role:      entity.RoleUser,
		CreatedAt: t0,
		UpdatedAt: t0,
	}
	require.NoError(t, f.db.CreateUser(context.Background(), u))
	return u
}

func authed(id int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id})
}
