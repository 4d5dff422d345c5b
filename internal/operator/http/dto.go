package http

import (
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/operator"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	Operator    OperatorResponse `json:"operator"`
}

type CreateOperatorRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
	IsAdmin     bool   `json:"is_admin"`
}

// OperatorResponse is the shape of operator data returned in API responses.
type OperatorResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name"`
	IsAdmin     bool       `json:"is_admin"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// NewOperatorResponse converts a domain operator to its API representation.
func NewOperatorResponse(o *operator.Operator) OperatorResponse {
	return OperatorResponse{
		ID:          o.ID,
		Email:       o.Email,
		DisplayName: o.DisplayName,
		IsAdmin:     o.IsAdmin,
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
		LastLoginAt: o.LastLoginAt,
	}
}
