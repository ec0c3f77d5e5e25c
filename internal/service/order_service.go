package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/events"
	"github.com/spec-kit/travel-order-service/internal/observability"
	"github.com/spec-kit/travel-order-service/internal/repository"
	apperrors "github.com/spec-kit/travel-order-service/pkg/util"
)

// OrderService coordinates travel order workflows.
type OrderService struct {
	orders     repository.TravelOrderRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	OrderRepo  repository.TravelOrderRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// OrderCreateInput describes order creation payload.
type OrderCreateInput struct {
	CustomerName string
	Destiny      string
	StartDate    time.Time
	ReturnDate   time.Time
	Status       domain.OrderStatus
	UserID       int64
}

// OrderFilterInput describes the optional filters of the order search.
type OrderFilterInput struct {
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	s := &OrderService{
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// List returns every order.
func (s *OrderService) List(ctx context.Context) ([]domain.TravelOrder, error) {
	return s.orders.List(ctx)
}

// Create stores a new order and announces it.
func (s *OrderService) Create(ctx context.Context, input OrderCreateInput) (*domain.TravelOrder, error) {
	order := &domain.TravelOrder{
		CustomerName: input.CustomerName,
		Destiny:      input.Destiny,
		StartDate:    domain.DateOf(input.StartDate),
		ReturnDate:   domain.DateOf(input.ReturnDate),
		Status:       input.Status,
		UserID:       input.UserID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTravelOrderCreated, order, events.TravelOrderCreatedPayload{
		Destiny: order.Destiny,
		Status:  order.Status,
	})
	return order, nil
}

// Get returns a single order.
func (s *OrderService) Get(ctx context.Context, id int64) (*domain.TravelOrder, error) {
	return s.orders.GetByID(ctx, id)
}

// Update applies a partial update. Moving an order to Cancelled requires the
// stored start date to be at least CancellationNoticeDays away; otherwise
// nothing is written.
func (s *OrderService) Update(ctx context.Context, id int64, patch domain.TravelOrderPatch) (*domain.TravelOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.CancelsOrder() {
		if !domain.CanTransitionToCancelled(s.now(), order.StartDate) {
			s.metrics.RecordCancellation(observability.CancellationRejected)
			s.logger.Info("order cancellation rejected",
				zap.Int64("order_id", order.ID),
				zap.String("start_date", order.StartDate.Format(domain.DateLayout)))
			return nil, apperrors.NewDomainRuleViolation(domain.ErrMsgCancellationWindow)
		}
		s.metrics.RecordCancellation(observability.CancellationAllowed)
	}

	oldStatus := order.Status
	patch.Apply(order)
	order.StartDate = domain.DateOf(order.StartDate)
	order.ReturnDate = domain.DateOf(order.ReturnDate)
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	if order.Status != oldStatus {
		if order.Status == domain.OrderStatusCancelled {
			s.logger.Info("order cancelled", zap.Int64("order_id", order.ID))
		}
		s.publish(ctx, events.EventTravelOrderStatusChanged, order, events.TravelOrderStatusChangedPayload{
			Destiny:   order.Destiny,
			OldStatus: oldStatus,
			NewStatus: order.Status,
		})
	}
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

// Filter searches orders by destination and creation date range. The range
// applies only when both dates are given, and the end date covers the whole day.
func (s *OrderService) Filter(ctx context.Context, input OrderFilterInput) ([]domain.TravelOrder, error) {
	filter := repository.OrderFilter{Destination: input.Destination}
	if input.StartDate != nil && input.EndDate != nil {
		from := domain.DateOf(*input.StartDate)
		before := domain.DateOf(*input.EndDate).AddDate(0, 0, 1)
		filter.CreatedFrom = &from
		filter.CreatedBefore = &before
	}
	return s.orders.ListByFilter(ctx, filter)
}

// ListByUser returns the orders owned by a user.
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]domain.TravelOrder, error) {
	return s.orders.ListByUser(ctx, userID)
}

// publish emits an order event. Subscriber failures never undo the write.
func (s *OrderService) publish(ctx context.Context, eventType events.EventType, order *domain.TravelOrder, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Timestamp: s.now(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("order event delivery incomplete",
			zap.String("event_type", string(eventType)),
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}
