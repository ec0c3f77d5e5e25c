package domain

import "time"

// User is an account able to own travel orders and notifications.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch carries the fields of a partial user update. Password is plaintext.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
}
