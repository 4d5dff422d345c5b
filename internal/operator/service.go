package operator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/auth"
)

type CreateRequest struct {
	Email       string
	Password    string
	DisplayName string
	IsAdmin     bool
}

// Service defines business logic related to operator accounts.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Operator, error)
	Login(ctx context.Context, email, password string) (*Operator, error)
	GetByID(ctx context.Context, id string) (*Operator, error)
	List(ctx context.Context) ([]*Operator, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new operator Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Operator, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(req.Password) < s.minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", s.minPasswordLength)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayNamePtr *string
	if strings.TrimSpace(req.DisplayName) != "" {
		d := strings.TrimSpace(req.DisplayName)
		displayNamePtr = &d
	}

	o := &Operator{
		Email:        cleanEmail,
		PasswordHash: hash,
		DisplayName:  displayNamePtr,
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Operator, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	o, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch operator by email: %w", err)
	}

	if !o.IsActive {
		return nil, ErrInactiveOperator
	}

	if err := s.hasher.Compare(o.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; do not fail login if the timestamp update fails.
	_ = s.repo.UpdateLastLogin(ctx, o.ID, time.Now().UTC())

	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Operator, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Operator, error) {
	return s.repo.List(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
