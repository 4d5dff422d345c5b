package http

import (
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
)

type CreateProductRequest struct {
	Name                string `json:"name" binding:"required"`
	SchedulingMode      string `json:"scheduling_mode" binding:"required,oneof=slot_based day_rental"`
	SetupMinutes        int    `json:"setup_minutes" binding:"gte=0"`
	TeardownMinutes     int    `json:"teardown_minutes" binding:"gte=0"`
	TravelBufferMinutes int    `json:"travel_buffer_minutes" binding:"gte=0"`
	CleaningMinutes     int    `json:"cleaning_minutes" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name                *string `json:"name"`
	SetupMinutes        *int    `json:"setup_minutes"`
	TeardownMinutes     *int    `json:"teardown_minutes"`
	TravelBufferMinutes *int    `json:"travel_buffer_minutes"`
	CleaningMinutes     *int    `json:"cleaning_minutes"`
	IsActive            *bool   `json:"is_active"`
}

type SlotBody struct {
	Label      string `json:"label" binding:"required"`
	StartLocal string `json:"start_local" binding:"required"`
	EndLocal   string `json:"end_local" binding:"required"`
	IsActive   bool   `json:"is_active"`
}

type SlotResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Label      string    `json:"label"`
	StartLocal string    `json:"start_local"`
	EndLocal   string    `json:"end_local"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProductResponse struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	SchedulingMode      string         `json:"scheduling_mode"`
	SetupMinutes        int            `json:"setup_minutes"`
	TeardownMinutes     int            `json:"teardown_minutes"`
	TravelBufferMinutes int            `json:"travel_buffer_minutes"`
	CleaningMinutes     int            `json:"cleaning_minutes"`
	IsActive            bool           `json:"is_active"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	Slots               []SlotResponse `json:"slots"`
}

func NewSlotResponse(s *product.Slot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Label:      s.Label,
		StartLocal: s.StartLocal,
		EndLocal:   s.EndLocal,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
	}
}

func NewProductResponse(p *product.Product) ProductResponse {
	slots := make([]SlotResponse, 0, len(p.Slots))
	for i := range p.Slots {
		slots = append(slots, NewSlotResponse(&p.Slots[i]))
	}

	return ProductResponse{
		ID:                  p.ID,
		Name:                p.Name,
		SchedulingMode:      string(p.SchedulingMode),
		SetupMinutes:        p.SetupMinutes,
		TeardownMinutes:     p.TeardownMinutes,
		TravelBufferMinutes: p.TravelBufferMinutes,
		CleaningMinutes:     p.CleaningMinutes,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
		Slots:               slots,
	}
}
