package operator

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpeak-rentals/scheduling-backend/internal/auth"
)

type memoryRepo struct {
	seq       int
	operators map[string]*Operator
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{operators: map[string]*Operator{}}
}

func (r *memoryRepo) Create(_ context.Context, o *Operator) error {
	for _, existing := range r.operators {
		if existing.Email == o.Email {
			return ErrEmailAlreadyUsed
		}
	}
	r.seq++
	o.ID = fmt.Sprintf("op-%d", r.seq)
	cp := *o
	r.operators[o.ID] = &cp
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Operator, error) {
	o, ok := r.operators[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*Operator, error) {
	for _, o := range r.operators {
		if o.Email == email {
			cp := *o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	o, ok := r.operators[id]
	if !ok {
		return ErrNotFound
	}
	o.LastLoginAt = &t
	return nil
}

func (r *memoryRepo) List(_ context.Context) ([]*Operator, error) {
	var out []*Operator
	for _, o := range r.operators {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func newTestService() (Service, *memoryRepo) {
	repo := newMemoryRepo()
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestCreateOperator(t *testing.T) {
	svc, _ := newTestService()

	t.Run("normalizes email", func(t *testing.T) {
		o, err := svc.Create(context.Background(), CreateRequest{
			Email:    "  Ops@Sunpeak.Test ",
			Password: "long-enough-password",
		})
		require.NoError(t, err)
		assert.Equal(t, "ops@sunpeak.test", o.Email)
		assert.True(t, o.IsActive)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateRequest{
			Email:    "ops@sunpeak.test",
			Password: "long-enough-password",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateRequest{
			Email:    "other@sunpeak.test",
			Password: "short",
		})
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	svc, repo := newTestService()

	created, err := svc.Create(context.Background(), CreateRequest{
		Email:    "ops@sunpeak.test",
		Password: "long-enough-password",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		o, err := svc.Login(context.Background(), "OPS@sunpeak.test", "long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, created.ID, o.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ops@sunpeak.test", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks like bad credentials", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@sunpeak.test", "long-enough-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		repo.operators[created.ID].IsActive = false
		defer func() { repo.operators[created.ID].IsActive = true }()

		_, err := svc.Login(context.Background(), "ops@sunpeak.test", "long-enough-password")
		assert.ErrorIs(t, err, ErrInactiveOperator)
	})
}
