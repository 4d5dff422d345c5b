package resource

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
)

type memoryRepo struct {
	seq       int
	resources map[string]*Resource
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{resources: map[string]*Resource{}}
}

func (r *memoryRepo) Create(_ context.Context, res *Resource) error {
	r.seq++
	res.ID = fmt.Sprintf("res-%d", r.seq)
	cp := *res
	r.resources[res.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Resource, error) {
	res, ok := r.resources[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *memoryRepo) List(_ context.Context, filter Filter) ([]*Resource, error) {
	var out []*Resource
	for _, res := range r.resources {
		if filter.Kind != "" && string(res.Kind) != filter.Kind {
			continue
		}
		if filter.ActiveOnly && !res.IsActive {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, res *Resource) error {
	if _, ok := r.resources[res.ID]; !ok {
		return ErrNotFound
	}
	cp := *res
	r.resources[res.ID] = &cp
	return nil
}

type stubProducts struct {
	product.Service
	known map[string]bool
}

func (s stubProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	if !s.known[id] {
		return nil, product.ErrNotFound
	}
	return &product.Product{ID: id}, nil
}

func newTestService() Service {
	return NewService(newMemoryRepo(), stubProducts{known: map[string]bool{"prod-1": true}})
}

func TestCreateResource(t *testing.T) {
	t.Run("asset capacity is always 1", func(t *testing.T) {
		svc := newTestService()
		res, err := svc.Create(context.Background(), CreateRequest{
			Kind:      "asset",
			ProductID: "prod-1",
			Name:      "Castle Unit A",
			Capacity:  5,
		})
		require.NoError(t, err)
		assert.Equal(t, KindAsset, res.Kind)
		assert.Equal(t, 1, res.Capacity)
		require.NotNil(t, res.ProductID)
		assert.Equal(t, "prod-1", *res.ProductID)
	})

	t.Run("asset requires a known product", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Create(context.Background(), CreateRequest{
			Kind: "asset", Name: "Orphan Unit",
		})
		assert.ErrorIs(t, err, ErrAssetNeedsProd)

		_, err = svc.Create(context.Background(), CreateRequest{
			Kind: "asset", ProductID: "prod-404", Name: "Orphan Unit",
		})
		assert.ErrorIs(t, err, ErrAssetNeedsProd)
	})

	t.Run("crew capacity defaults to 1", func(t *testing.T) {
		svc := newTestService()
		res, err := svc.Create(context.Background(), CreateRequest{
			Kind: "crew", Name: "North Crew",
		})
		require.NoError(t, err)
		assert.Nil(t, res.ProductID)
		assert.Equal(t, 1, res.Capacity)
	})

	t.Run("crew keeps its capacity", func(t *testing.T) {
		svc := newTestService()
		res, err := svc.Create(context.Background(), CreateRequest{
			Kind: "crew", Name: "South Crew", Capacity: 3,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Capacity)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Create(context.Background(), CreateRequest{Kind: "vehicle", Name: "Truck"})
		assert.ErrorIs(t, err, ErrInvalidKind)
	})
}

func TestUpdateResource(t *testing.T) {
	svc := newTestService()

	asset, err := svc.Create(context.Background(), CreateRequest{
		Kind: "asset", ProductID: "prod-1", Name: "Castle Unit A",
	})
	require.NoError(t, err)

	// Asset capacity is structural; updates leave it at 1.
	capacity := 4
	got, err := svc.Update(context.Background(), asset.ID, UpdateRequest{Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Capacity)

	bad := 0
	_, err = svc.Update(context.Background(), asset.ID, UpdateRequest{Capacity: &bad})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}
