package domain

import "time"

// UserNotification is a message addressed to a single user.
type UserNotification struct {
	ID        int64
	UserID    int64
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
