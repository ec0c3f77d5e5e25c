package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionToCancelled(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 45, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"far ahead", now.AddDate(0, 3, 0), true},
		{"exactly thirty days", time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), true},
		{"twenty nine days", time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC), false},
		{"today", now, false},
		{"in the past", now.AddDate(0, 0, -5), false},
		{"thirty days late in the day", time.Date(2026, 4, 9, 23, 59, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransitionToCancelled(now, tt.start))
		})
	}
}

func TestCanTransitionToCancelled_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)

	assert.True(t, CanTransitionToCancelled(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start))
	assert.True(t, CanTransitionToCancelled(time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC), start))
	assert.False(t, CanTransitionToCancelled(time.Date(2026, 3, 11, 0, 0, 1, 0, time.UTC), start))
}

func TestTravelOrderPatch(t *testing.T) {
	order := &TravelOrder{CustomerName: "Ana", Destiny: "Lisbon", Status: OrderStatusPending, UserID: 1}
	dest := "Paris"
	status := OrderStatusCancelled

	patch := TravelOrderPatch{Destiny: &dest, Status: &status}
	assert.True(t, patch.CancelsOrder())

	patch.Apply(order)
	assert.Equal(t, "Paris", order.Destiny)
	assert.Equal(t, OrderStatusCancelled, order.Status)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.Equal(t, int64(1), order.UserID)

	approved := OrderStatusApproved
	assert.False(t, TravelOrderPatch{Status: &approved}.CancelsOrder())
	assert.False(t, TravelOrderPatch{}.CancelsOrder())
}
