package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/persistence"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, persistence.RunMigrations(ctx, pool, filepath.Join("..", "..", "migrations"), zap.NewNop()))
	_, err = pool.Exec(ctx, `TRUNCATE user_notifications, travel_orders, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func createUser(t *testing.T, repo UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: "Tester", Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestPool(t))

	user := createUser(t, repo, "ana@example.com")
	assert.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	exists, err := repo.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	taken, err := repo.EmailTaken(ctx, "ana@example.com", user.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	err = repo.Create(ctx, &domain.User{Name: "Dup", Email: "ana@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	user.Name = "Ana Maria"
	require.NoError(t, repo.Update(ctx, user))
	loaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", loaded.Name)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), pgx.ErrNoRows)
}

func TestTravelOrderRepository_CreateGetFilter(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	users := NewUserRepository(pool)
	orders := NewTravelOrderRepository(pool)

	owner := createUser(t, users, "owner@example.com")
	other := createUser(t, users, "other@example.com")

	start := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	paris := &domain.TravelOrder{
		CustomerName: "John", Destiny: "Paris", StartDate: start, ReturnDate: start.AddDate(0, 0, 7),
		Status: domain.OrderStatusPending, UserID: owner.ID,
	}
	rome := &domain.TravelOrder{
		CustomerName: "Jane", Destiny: "Rome", StartDate: start, ReturnDate: start.AddDate(0, 0, 3),
		Status: domain.OrderStatusApproved, UserID: other.ID,
	}
	require.NoError(t, orders.Create(ctx, paris))
	require.NoError(t, orders.Create(ctx, rome))

	loaded, err := orders.GetByID(ctx, paris.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", loaded.CustomerName)
	assert.True(t, start.Equal(loaded.StartDate))
	assert.Equal(t, domain.OrderStatusPending, loaded.Status)

	dest := "Paris"
	byDest, err := orders.ListByFilter(ctx, OrderFilter{Destination: &dest})
	require.NoError(t, err)
	require.Len(t, byDest, 1)
	assert.Equal(t, paris.ID, byDest[0].ID)

	tomorrow := time.Now().Add(24 * time.Hour)
	yesterday := time.Now().Add(-24 * time.Hour)
	inRange, err := orders.ListByFilter(ctx, OrderFilter{CreatedFrom: &yesterday, CreatedBefore: &tomorrow})
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	outOfRange, err := orders.ListByFilter(ctx, OrderFilter{CreatedBefore: &yesterday})
	require.NoError(t, err)
	assert.Empty(t, outOfRange)

	byUser, err := orders.ListByUser(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, rome.ID, byUser[0].ID)

	all, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	rome.Status = domain.OrderStatusCancelled
	require.NoError(t, orders.Update(ctx, rome))
	reloaded, err := orders.GetByID(ctx, rome.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, reloaded.Status)

	require.NoError(t, orders.Delete(ctx, rome.ID))
	assert.ErrorIs(t, orders.Delete(ctx, rome.ID), pgx.ErrNoRows)

	missing := &domain.TravelOrder{ID: 9999, Destiny: "x", StartDate: start, ReturnDate: start, UserID: owner.ID}
	assert.ErrorIs(t, orders.Update(ctx, missing), pgx.ErrNoRows)
}

func TestUserNotificationRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	users := NewUserRepository(pool)
	notifications := NewUserNotificationRepository(pool)

	owner := createUser(t, users, "notify@example.com")

	n := &domain.UserNotification{UserID: owner.ID, Message: "Your trip is approved"}
	require.NoError(t, notifications.Create(ctx, n))
	assert.NotZero(t, n.ID)

	got, err := notifications.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Your trip is approved", got.Message)

	byUser, err := notifications.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	none, err := notifications.ListByUser(ctx, owner.ID+100)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	require.NoError(t, notifications.Delete(ctx, n.ID))
	_, err = notifications.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
