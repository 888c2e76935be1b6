package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendormart/internal/domain"
	"vendormart/internal/repository"

	"github.com/google/uuid"
)

// StoreInput is the payload for creating or updating a store. Ownership is
// never part of the payload; it is taken from the authenticated actor on
// create and immutable afterwards.
type StoreInput struct {
	ID          *uuid.UUID `json:"id" validate:"omitempty"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Email       string     `json:"email" validate:"required,email"`
	Phone       string     `json:"phone" validate:"required"`
	URL         string     `json:"url" validate:"required"`
	LogoURL     string     `json:"logo_url"`
}

// StoreService defines the interface for store business logic
type StoreService interface {
	Upsert(ctx context.Context, actor *domain.Actor, input *StoreInput) (*domain.Store, error)
	GetAll(ctx context.Context) ([]*domain.Store, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	GetByURL(ctx context.Context, url string) (*domain.Store, error)
	Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Store, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
}

// NewStoreService creates a new instance of StoreService
func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

// Upsert creates or updates a store. Seller only. The store is linked to the
// acting seller on create; the repository's update branch never touches the
// owner column.
func (s *storeService) Upsert(ctx context.Context, actor *domain.Actor, input *StoreInput) (*domain.Store, error) {
	if err := requireRole(actor, domain.RoleSeller); err != nil {
		return nil, err
	}
	if input == nil || input.Name == "" || input.Email == "" || input.Phone == "" || input.URL == "" {
		return nil, fmt.Errorf("%w: store name, email, phone, and url are required", ErrInvalidInput)
	}

	id := uuid.New()
	if input.ID != nil {
		id = *input.ID
	}

	now := time.Now()
	store := &domain.Store{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Email:       input.Email,
		Phone:       input.Phone,
		URL:         input.URL,
		LogoURL:     input.LogoURL,
		UserID:      actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	existing, err := s.storeRepo.FindConflicting(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("failed to validate store uniqueness: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Entity: "store", Field: storeConflictField(store, existing)}
	}

	saved, err := s.storeRepo.Upsert(ctx, store)
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, &ConflictError{Entity: "store", Field: dup.Field}
		}
		return nil, err
	}

	return saved, nil
}

// storeConflictField names the colliding field in priority order (name,
// then url, then email, then phone) so the reported conflict is
// deterministic regardless of which row matched.
func storeConflictField(candidate, existing *domain.Store) string {
	switch {
	case existing.Name == candidate.Name:
		return "name"
	case existing.URL == candidate.URL:
		return "url"
	case existing.Email == candidate.Email:
		return "email"
	default:
		return "phone"
	}
}

// GetAll retrieves all stores, most recently updated first. Public.
func (s *storeService) GetAll(ctx context.Context) ([]*domain.Store, error) {
	return s.storeRepo.List(ctx)
}

// Get retrieves a single store by ID. Public.
func (s *storeService) Get(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	return s.storeRepo.FindByID(ctx, id)
}

// GetByURL retrieves a single store by its URL slug. Public.
func (s *storeService) GetByURL(ctx context.Context, url string) (*domain.Store, error) {
	return s.storeRepo.FindByURL(ctx, url)
}

// Delete removes a store by ID. Admin only.
func (s *storeService) Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Store, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: store id is required", ErrInvalidInput)
	}
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	return s.storeRepo.Delete(ctx, id)
}
