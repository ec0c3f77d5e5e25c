// Package memory provides in-memory implementations of the repository
// interfaces. It is safe for concurrent use and intended for tests and local
// development without Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/travel-order-service/internal/domain"
	"github.com/spec-kit/travel-order-service/internal/repository"
)

// Store holds every entity and mimics the relational constraints of the
// Postgres schema: unique emails and cascading user deletion.
type Store struct {
	mu            sync.RWMutex
	nextID        int64
	users         map[int64]domain.User
	orders        map[int64]domain.TravelOrder
	notifications map[int64]domain.UserNotification

	// Now stamps created_at/updated_at. Tests may replace it.
	Now func() time.Time
}

var (
	_ repository.UserRepository             = (*userStore)(nil)
	_ repository.TravelOrderRepository      = (*orderStore)(nil)
	_ repository.UserNotificationRepository = (*notificationStore)(nil)
)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:        1,
		users:         make(map[int64]domain.User),
		orders:        make(map[int64]domain.TravelOrder),
		notifications: make(map[int64]domain.UserNotification),
		Now:           time.Now,
	}
}

func (s *Store) Users() repository.UserRepository { return &userStore{s} }

func (s *Store) Orders() repository.TravelOrderRepository { return &orderStore{s} }

func (s *Store) Notifications() repository.UserNotificationRepository {
	return &notificationStore{s}
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Users ----------------------------------------------------------------------

type userStore struct{ *Store }

func (s *userStore) List(context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		users = append(users, s.users[id])
	}
	return users, nil
}

func (s *userStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.emailTakenLocked(user.Email, 0) {
		return repository.ErrEmailTaken
	}
	now := s.Now()
	user.ID = s.nextIDLocked()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

func (s *userStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	if s.emailTakenLocked(user.Email, user.ID) {
		return repository.ErrEmailTaken
	}
	user.UpdatedAt = s.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *userStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.users, id)
	for oid, o := range s.orders {
		if o.UserID == id {
			delete(s.orders, oid)
		}
	}
	for nid, n := range s.notifications {
		if n.UserID == id {
			delete(s.notifications, nid)
		}
	}
	return nil
}

func (s *userStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *userStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok, nil
}

func (s *userStore) EmailTaken(_ context.Context, email string, exceptID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailTakenLocked(email, exceptID), nil
}

func (s *Store) emailTakenLocked(email string, exceptID int64) bool {
	for _, user := range s.users {
		if user.Email == email && user.ID != exceptID {
			return true
		}
	}
	return false
}

// Travel orders --------------------------------------------------------------

type orderStore struct{ *Store }

func (s *orderStore) List(ctx context.Context) ([]domain.TravelOrder, error) {
	return s.ListByFilter(ctx, repository.OrderFilter{})
}

func (s *orderStore) Create(_ context.Context, order *domain.TravelOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	order.ID = s.nextIDLocked()
	order.CreatedAt, order.UpdatedAt = now, now
	s.orders[order.ID] = *order
	return nil
}

func (s *orderStore) Update(_ context.Context, order *domain.TravelOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[order.ID]; !ok {
		return pgx.ErrNoRows
	}
	order.UpdatedAt = s.Now()
	s.orders[order.ID] = *order
	return nil
}

func (s *orderStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.orders, id)
	return nil
}

func (s *orderStore) GetByID(_ context.Context, id int64) (*domain.TravelOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &order, nil
}

func (s *orderStore) ListByUser(ctx context.Context, userID int64) ([]domain.TravelOrder, error) {
	return s.ListByFilter(ctx, repository.OrderFilter{UserID: &userID})
}

func (s *orderStore) ListByFilter(_ context.Context, filter repository.OrderFilter) ([]domain.TravelOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := []domain.TravelOrder{}
	for _, id := range sortedKeys(s.orders) {
		o := s.orders[id]
		if filter.Destination != nil && o.Destiny != *filter.Destination {
			continue
		}
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		if filter.CreatedFrom != nil && o.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedBefore != nil && !o.CreatedAt.Before(*filter.CreatedBefore) {
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Notifications --------------------------------------------------------------

type notificationStore struct{ *Store }

func (s *notificationStore) List(context.Context) ([]domain.UserNotification, error) {
	return s.filter(func(domain.UserNotification) bool { return true }), nil
}

func (s *notificationStore) ListByUser(_ context.Context, userID int64) ([]domain.UserNotification, error) {
	return s.filter(func(n domain.UserNotification) bool { return n.UserID == userID }), nil
}

func (s *notificationStore) Create(_ context.Context, n *domain.UserNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	n.ID = s.nextIDLocked()
	n.CreatedAt, n.UpdatedAt = now, now
	s.notifications[n.ID] = *n
	return nil
}

func (s *notificationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notifications[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.notifications, id)
	return nil
}

func (s *notificationStore) GetByID(_ context.Context, id int64) (*domain.UserNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &n, nil
}

func (s *notificationStore) filter(keep func(domain.UserNotification) bool) []domain.UserNotification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.UserNotification{}
	for _, id := range sortedKeys(s.notifications) {
		if n := s.notifications[id]; keep(n) {
			out = append(out, n)
		}
	}
	return out
}
