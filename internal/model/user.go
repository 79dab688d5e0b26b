package model

import (
	"errors"
	"time"
)

// Validation errors for User.
var (
	ErrEmptyUsername   = errors.New("username cannot be empty")
	ErrUsernameTooLong = errors.New("username cannot exceed 255 characters")
	ErrEmptyPassword   = errors.New("password cannot be empty")
)

// User represents a registered account. Users are never serialized to
// clients; the password is stored only as a bcrypt hash.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Validate checks if the User has valid field values. The hash must be
// populated before the user reaches storage.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if len(u.Username) > MaxNameLength {
		return ErrUsernameTooLong
	}

	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}

	return nil
}
