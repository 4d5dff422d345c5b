package product

import (
	"context"
	"strings"
	"time"
)

type CreateRequest struct {
	Name                string
	SchedulingMode      string
	SetupMinutes        int
	TeardownMinutes     int
	TravelBufferMinutes int
	CleaningMinutes     int
}

type UpdateRequest struct {
	Name                *string
	SetupMinutes        *int
	TeardownMinutes     *int
	TravelBufferMinutes *int
	CleaningMinutes     *int
	IsActive            *bool
}

type SlotRequest struct {
	Label      string
	StartLocal string
	EndLocal   string
	IsActive   bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, activeOnly bool) ([]*Product, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Product, error)

	AddSlot(ctx context.Context, productID string, req SlotRequest) (*Slot, error)
	UpdateSlot(ctx context.Context, productID, slotID string, req SlotRequest) (*Slot, error)
	RemoveSlot(ctx context.Context, productID, slotID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	mode := SchedulingMode(req.SchedulingMode)
	if mode != ModeSlotBased && mode != ModeDayRental {
		return nil, ErrInvalidMode
	}

	p := &Product{
		Name:                strings.TrimSpace(req.Name),
		SchedulingMode:      mode,
		SetupMinutes:        req.SetupMinutes,
		TeardownMinutes:     req.TeardownMinutes,
		TravelBufferMinutes: req.TravelBufferMinutes,
		CleaningMinutes:     req.CleaningMinutes,
		IsActive:            true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]*Product, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.SetupMinutes != nil {
		p.SetupMinutes = *req.SetupMinutes
	}
	if req.TeardownMinutes != nil {
		p.TeardownMinutes = *req.TeardownMinutes
	}
	if req.TravelBufferMinutes != nil {
		p.TravelBufferMinutes = *req.TravelBufferMinutes
	}
	if req.CleaningMinutes != nil {
		p.CleaningMinutes = *req.CleaningMinutes
	}
	if req.IsActive != nil {
		// A slot-based product cannot be activated without at least one active slot.
		if *req.IsActive && p.SchedulingMode == ModeSlotBased && len(p.ActiveSlots()) == 0 {
			return nil, ErrNoActiveSlots
		}
		p.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) AddSlot(ctx context.Context, productID string, req SlotRequest) (*Slot, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := validateSlotTimes(req.StartLocal, req.EndLocal); err != nil {
		return nil, err
	}

	slot := &Slot{
		ProductID:  productID,
		Label:      strings.TrimSpace(req.Label),
		StartLocal: req.StartLocal,
		EndLocal:   req.EndLocal,
		IsActive:   req.IsActive,
	}

	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) UpdateSlot(ctx context.Context, productID, slotID string, req SlotRequest) (*Slot, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var existing *Slot
	for i := range p.Slots {
		if p.Slots[i].ID == slotID {
			existing = &p.Slots[i]
			break
		}
	}
	if existing == nil {
		return nil, ErrSlotNotFound
	}

	if err := validateSlotTimes(req.StartLocal, req.EndLocal); err != nil {
		return nil, err
	}

	existing.Label = strings.TrimSpace(req.Label)
	existing.StartLocal = req.StartLocal
	existing.EndLocal = req.EndLocal
	existing.IsActive = req.IsActive

	if err := s.repo.UpdateSlot(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *service) RemoveSlot(ctx context.Context, productID, slotID string) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	found := false
	for _, slot := range p.Slots {
		if slot.ID == slotID {
			found = true
			break
		}
	}
	if !found {
		return ErrSlotNotFound
	}

	return s.repo.DeleteSlot(ctx, slotID)
}

func validateSlotTimes(startLocal, endLocal string) error {
	start, err := time.Parse("15:04", startLocal)
	if err != nil {
		return ErrInvalidSlotTime
	}
	end, err := time.Parse("15:04", endLocal)
	if err != nil {
		return ErrInvalidSlotTime
	}
	if !end.After(start) {
		return ErrInvalidSlotTime
	}
	return nil
}
