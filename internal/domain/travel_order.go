package domain

import "time"

// OrderStatus is the free-form lifecycle label of a travel order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusApproved  OrderStatus = "Approved"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// CancellationNoticeDays is the minimum number of days between today and the
// start of the travel for an order to be cancelled.
const CancellationNoticeDays = 30

// ErrMsgCancellationWindow is returned when the cancellation guard rejects an update.
const ErrMsgCancellationWindow = "You cannot cancel an order with less than 30 days until the travel"

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// TravelOrder is a customer's trip request.
type TravelOrder struct {
	ID           int64
	CustomerName string
	Destiny      string
	StartDate    time.Time
	ReturnDate   time.Time
	Status       OrderStatus
	UserID       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TravelOrderPatch carries the fields of a partial order update. Nil means untouched.
type TravelOrderPatch struct {
	CustomerName *string
	Destiny      *string
	StartDate    *time.Time
	ReturnDate   *time.Time
	Status       *OrderStatus
	UserID       *int64
}

// CancelsOrder reports whether the patch moves the order to Cancelled.
func (p TravelOrderPatch) CancelsOrder() bool {
	return p.Status != nil && *p.Status == OrderStatusCancelled
}

// Apply copies the set fields of the patch onto the order.
func (p TravelOrderPatch) Apply(order *TravelOrder) {
	if p.CustomerName != nil {
		order.CustomerName = *p.CustomerName
	}
	if p.Destiny != nil {
		order.Destiny = *p.Destiny
	}
	if p.StartDate != nil {
		order.StartDate = *p.StartDate
	}
	if p.ReturnDate != nil {
		order.ReturnDate = *p.ReturnDate
	}
	if p.Status != nil {
		order.Status = *p.Status
	}
	if p.UserID != nil {
		order.UserID = *p.UserID
	}
}

// CanTransitionToCancelled reports whether an order starting on startDate may
// be cancelled at now. Comparison is by calendar date and the boundary is
// inclusive: exactly CancellationNoticeDays ahead is allowed.
func CanTransitionToCancelled(now, startDate time.Time) bool {
	minAllowed := DateOf(now).AddDate(0, 0, CancellationNoticeDays)
	return !DateOf(startDate).Before(minAllowed)
}

// DateOf truncates t to midnight UTC of its calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
