package dto

import (
	"time"

	"github.com/spec-kit/travel-order-service/internal/domain"
)

// OrderResponse is the public projection of a travel order.
type OrderResponse struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Destiny      string    `json:"destiny"`
	StartDate    string    `json:"start_date"`
	ReturnDate   string    `json:"return_date"`
	Status       string    `json:"status"`
	UserID       int64     `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewOrderResponse projects an order.
func NewOrderResponse(o *domain.TravelOrder) OrderResponse {
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Destiny:      o.Destiny,
		StartDate:    o.StartDate.Format(domain.DateLayout),
		ReturnDate:   o.ReturnDate.Format(domain.DateLayout),
		Status:       string(o.Status),
		UserID:       o.UserID,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// NewOrderList projects orders; the result is never nil.
func NewOrderList(orders []domain.TravelOrder) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
