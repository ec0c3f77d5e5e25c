package domain

import "time"

// Token represents issued bearer token metadata.
type Token struct {
	ID        string
	Value     string
	UserID    int64
	ExpiresAt time.Time
	IssuedAt  time.Time
}
