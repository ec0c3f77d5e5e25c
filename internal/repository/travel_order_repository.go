package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/travel-order-service/internal/domain"
)

// OrderFilter captures order search parameters. Nil fields are not applied.
type OrderFilter struct {
	Destination   *string
	UserID        *int64
	CreatedFrom   *time.Time // inclusive
	CreatedBefore *time.Time // exclusive
}

// TravelOrderRepository encapsulates travel order persistence.
type TravelOrderRepository interface {
	List(ctx context.Context) ([]domain.TravelOrder, error)
	Create(ctx context.Context, order *domain.TravelOrder) error
	Update(ctx context.Context, order *domain.TravelOrder) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.TravelOrder, error)
	ListByFilter(ctx context.Context, filter OrderFilter) ([]domain.TravelOrder, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.TravelOrder, error)
}

type travelOrderRepository struct {
	pool *pgxpool.Pool
}

// NewTravelOrderRepository instantiates repository.
func NewTravelOrderRepository(pool *pgxpool.Pool) TravelOrderRepository {
	return &travelOrderRepository{pool: pool}
}

const travelOrderColumns = `id, customer_name, destiny, start_date, return_date, status, user_id, created_at, updated_at`

func (r *travelOrderRepository) List(ctx context.Context) ([]domain.TravelOrder, error) {
	return r.ListByFilter(ctx, OrderFilter{})
}

func (r *travelOrderRepository) Create(ctx context.Context, order *domain.TravelOrder) error {
	const query = `
        INSERT INTO travel_orders (customer_name, destiny, start_date, return_date, status, user_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.CustomerName,
		order.Destiny,
		order.StartDate,
		order.ReturnDate,
		order.Status,
		order.UserID,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *travelOrderRepository) Update(ctx context.Context, order *domain.TravelOrder) error {
	const query = `
        UPDATE travel_orders SET customer_name=$1, destiny=$2, start_date=$3, return_date=$4,
            status=$5, user_id=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		order.CustomerName,
		order.Destiny,
		order.StartDate,
		order.ReturnDate,
		order.Status,
		order.UserID,
		order.ID,
	).Scan(&order.UpdatedAt)
}

func (r *travelOrderRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM travel_orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *travelOrderRepository) GetByID(ctx context.Context, id int64) (*domain.TravelOrder, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+travelOrderColumns+` FROM travel_orders WHERE id=$1`, id)
	return scanTravelOrder(row)
}

func (r *travelOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.TravelOrder, error) {
	return r.ListByFilter(ctx, OrderFilter{UserID: &userID})
}

func (r *travelOrderRepository) ListByFilter(ctx context.Context, filter OrderFilter) ([]domain.TravelOrder, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Destination != nil {
		args = append(args, *filter.Destination)
		clauses = append(clauses, fmt.Sprintf("destiny=$%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM travel_orders WHERE %s ORDER BY id`,
		travelOrderColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.TravelOrder{}
	for rows.Next() {
		order, err := scanTravelOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func scanTravelOrder(row pgx.Row) (*domain.TravelOrder, error) {
	var order domain.TravelOrder
	if err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.Destiny,
		&order.StartDate,
		&order.ReturnDate,
		&order.Status,
		&order.UserID,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &order, nil
}
