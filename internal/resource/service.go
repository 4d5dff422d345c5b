package resource

import (
	"context"
	"strings"

	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
)

type CreateRequest struct {
	Kind      string
	ProductID string
	Name      string
	Capacity  int
}

type UpdateRequest struct {
	Name     *string
	Capacity *int
	IsActive *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Resource, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	List(ctx context.Context, filter Filter) ([]*Resource, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error)

	// ActiveAssets returns the active physical units of a product.
	ActiveAssets(ctx context.Context, productID string) ([]*Resource, error)
	// ActiveCrews returns the active operational resources.
	ActiveCrews(ctx context.Context) ([]*Resource, error)
}

type service struct {
	repo        Repository
	prodService product.Service
}

func NewService(repo Repository, prodService product.Service) Service {
	return &service{
		repo:        repo,
		prodService: prodService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Resource, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	kind := Kind(req.Kind)
	if kind != KindAsset && kind != KindCrew {
		return nil, ErrInvalidKind
	}

	res := &Resource{
		Kind:     kind,
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
		IsActive: true,
	}

	switch kind {
	case KindAsset:
		if req.ProductID == "" {
			return nil, ErrAssetNeedsProd
		}
		if _, err := s.prodService.GetByID(ctx, req.ProductID); err != nil {
			return nil, ErrAssetNeedsProd
		}
		pid := req.ProductID
		res.ProductID = &pid
		// Assets are exclusive-use regardless of the request.
		res.Capacity = 1
	case KindCrew:
		if res.Capacity < 1 {
			res.Capacity = 1
		}
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resource, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Resource, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		res.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		// Asset capacity is structural and stays 1.
		if res.Kind == KindCrew {
			res.Capacity = *req.Capacity
		}
	}
	if req.IsActive != nil {
		res.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) ActiveAssets(ctx context.Context, productID string) ([]*Resource, error) {
	return s.repo.List(ctx, Filter{
		Kind:       string(KindAsset),
		ProductID:  productID,
		ActiveOnly: true,
	})
}

func (s *service) ActiveCrews(ctx context.Context) ([]*Resource, error) {
	return s.repo.List(ctx, Filter{
		Kind:       string(KindCrew),
		ActiveOnly: true,
	})
}
