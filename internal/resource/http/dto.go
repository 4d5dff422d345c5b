package http

import (
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/resource"
)

type CreateResourceRequest struct {
	Kind      string `json:"kind" binding:"required,oneof=asset crew"`
	ProductID string `json:"product_id"`
	Name      string `json:"name" binding:"required"`
	Capacity  int    `json:"capacity"`
}

type UpdateResourceRequest struct {
	Name     *string `json:"name"`
	Capacity *int    `json:"capacity"`
	IsActive *bool   `json:"is_active"`
}

type ResourceResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	ProductID *string   `json:"product_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResourceResponse(r *resource.Resource) ResourceResponse {
	return ResourceResponse{
		ID:        r.ID,
		Kind:      string(r.Kind),
		ProductID: r.ProductID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
	}
}
