package operator

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("operator not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveOperator   = errors.New("operator is inactive")
)

// Operator is a staff account that works the attention queue and manages the catalog.
type Operator struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsAdmin      bool
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
