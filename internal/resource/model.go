package resource

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidKind     = errors.New("invalid resource kind")
	ErrAssetNeedsProd  = errors.New("asset must belong to a product")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
)

// Kind distinguishes physical rental units from operational resources.
type Kind string

const (
	// KindAsset is a physical rental unit; exclusive use, capacity fixed at 1.
	KindAsset Kind = "asset"
	// KindCrew is a delivery/pickup crew or vehicle.
	KindCrew Kind = "crew"
)

// Resource is a schedulable entry in the catalog. Its busy time lives
// entirely in the block ledger; the catalog row only carries identity
// and capacity.
type Resource struct {
	ID        string
	Kind      Kind
	ProductID *string // set for assets, nil for crews
	Name      string
	Capacity  int
	IsActive  bool
	CreatedAt time.Time
}

// Filter defines parameters for listing resources.
type Filter struct {
	Kind       string
	ProductID  string
	ActiveOnly bool
}
