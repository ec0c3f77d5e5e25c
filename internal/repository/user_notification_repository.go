package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/travel-order-service/internal/domain"
)

// UserNotificationRepository manages user notification persistence.
type UserNotificationRepository interface {
	List(ctx context.Context) ([]domain.UserNotification, error)
	Create(ctx context.Context, notification *domain.UserNotification) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.UserNotification, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.UserNotification, error)
}

type userNotificationRepository struct {
	pool *pgxpool.Pool
}

// NewUserNotificationRepository constructs repository.
func NewUserNotificationRepository(pool *pgxpool.Pool) UserNotificationRepository {
	return &userNotificationRepository{pool: pool}
}

const notificationColumns = `id, user_id, message, created_at, updated_at`

func (r *userNotificationRepository) List(ctx context.Context) ([]domain.UserNotification, error) {
	return r.query(ctx, `SELECT `+notificationColumns+` FROM user_notifications ORDER BY id`)
}

func (r *userNotificationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserNotification, error) {
	return r.query(ctx, `SELECT `+notificationColumns+` FROM user_notifications WHERE user_id=$1 ORDER BY id`, userID)
}

func (r *userNotificationRepository) Create(ctx context.Context, notification *domain.UserNotification) error {
	const query = `
        INSERT INTO user_notifications (user_id, message)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, notification.UserID, notification.Message).
		Scan(&notification.ID, &notification.CreatedAt, &notification.UpdatedAt)
}

func (r *userNotificationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM user_notifications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userNotificationRepository) GetByID(ctx context.Context, id int64) (*domain.UserNotification, error) {
	var n domain.UserNotification
	err := r.pool.QueryRow(ctx, `SELECT `+notificationColumns+` FROM user_notifications WHERE id=$1`, id).
		Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *userNotificationRepository) query(ctx context.Context, sql string, args ...any) ([]domain.UserNotification, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []domain.UserNotification{}
	for rows.Next() {
		var n domain.UserNotification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
