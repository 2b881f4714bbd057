//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/migrations"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
)

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("floorease"),
		tcpostgres.WithUsername("floorease"),
		tcpostgres.WithPassword("floorease"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(ctr) })

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.Up(ctx, pool))
	return pool
}

func TestDB_UserAndResetState(t *testing.T) {
	ctx := context.Background()
	store := NewDB(newPool(t), instrument.NewNoop())
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	user := entity.User{
		ID: 1, FullName: "Asha", Email: "a@x.com", Phone: "9812345678",
		Password: "hash", Role: entity.RoleUser, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.CreateUser(ctx, user))

	dup := user
	dup.ID = 2
	dup.Email = "A@x.com"
	assert.ErrorIs(t, store.CreateUser(ctx, dup), goerror.ErrConflict)

	_, err := store.GetUserByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	got, err := store.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.ResetIdle, got.Reset.Phase())

	state := entity.NewIssuedReset("otp-hash", now).FailAttempt().Verify()
	require.NoError(t, store.SaveResetState(ctx, 1, state))

	got, err = store.GetUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, entity.ResetVerified, got.Reset.Phase())
	assert.Equal(t, 1, got.Reset.Attempts())
	assert.True(t, got.Reset.ExpiresAt().Equal(state.ExpiresAt()))
	assert.True(t, got.Reset.LastSentAt().Equal(now))

	require.NoError(t, store.CommitPassword(ctx, 1, "new-hash"))
	got, err = store.GetUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.Password)
	assert.Equal(t, entity.ResetIdle, got.Reset.Phase())

	require.NoError(t, store.UpdateUserProfile(ctx, 1, entity.ProfileChange{FullName: "Asha Rai", Email: "asha@x.com", Phone: "9800000000"}))
	require.NoError(t, store.UpdateUserProfileImage(ctx, 1, "https://cdn.test/a.png"))
	got, err = store.GetUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.Password, "empty password hash keeps the old one")
	assert.Equal(t, "asha@x.com", got.Email)
	assert.Equal(t, "https://cdn.test/a.png", got.ProfileImage)

	assert.ErrorIs(t, store.SaveResetState(ctx, 99, state), goerror.ErrNotFound)
}
