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

// CategoryInput is the payload for creating or updating a category. A nil ID
// means create; a known ID means update that record in place.
type CategoryInput struct {
	ID       *uuid.UUID `json:"id" validate:"omitempty"`
	Name     string     `json:"name" validate:"required"`
	URL      string     `json:"url" validate:"required"`
	ImageURL string     `json:"image_url"`
}

// CategoryService defines the interface for category business logic
type CategoryService interface {
	Upsert(ctx context.Context, actor *domain.Actor, input *CategoryInput) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetSubCategories(ctx context.Context, categoryID uuid.UUID) ([]*domain.SubCategory, error)
	Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Category, error)
}

type categoryService struct {
	categoryRepo    repository.CategoryRepository
	subCategoryRepo repository.SubCategoryRepository
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	subCategoryRepo repository.SubCategoryRepository,
) CategoryService {
	return &categoryService{
		categoryRepo:    categoryRepo,
		subCategoryRepo: subCategoryRepo,
	}
}

// Upsert creates or updates a category. Admin only. Guards run in a fixed
// order (authentication, role, payload, uniqueness) so each failure mode is
// distinct, and no write happens until all of them pass.
func (s *categoryService) Upsert(ctx context.Context, actor *domain.Actor, input *CategoryInput) (*domain.Category, error) {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if input == nil || input.Name == "" || input.URL == "" {
		return nil, fmt.Errorf("%w: category name and url are required", ErrInvalidInput)
	}

	id := uuid.New()
	if input.ID != nil {
		id = *input.ID
	}

	now := time.Now()
	category := &domain.Category{
		ID:        id,
		Name:      input.Name,
		URL:       input.URL,
		ImageURL:  input.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := s.categoryRepo.FindConflicting(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to validate category uniqueness: %w", err)
	}
	if existing != nil {
		return nil, &ConflictError{Entity: "category", Field: categoryConflictField(category, existing)}
	}

	saved, err := s.categoryRepo.Upsert(ctx, category)
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, &ConflictError{Entity: "category", Field: displayURLField(dup.Field)}
		}
		return nil, err
	}

	return saved, nil
}

// categoryConflictField names the colliding field in priority order (name
// before URL) so the reported conflict is deterministic.
func categoryConflictField(candidate, existing *domain.Category) string {
	if existing.Name == candidate.Name {
		return "name"
	}
	return "URL"
}

// displayURLField uppercases the url column name for category and
// subcategory conflict messages, matching how those entities present it.
func displayURLField(field string) string {
	if field == "url" {
		return "URL"
	}
	return field
}

// GetAll retrieves all categories, most recently updated first. Public.
func (s *categoryService) GetAll(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get retrieves a single category by ID. Public.
func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

// GetSubCategories retrieves the subcategories of a category. Public.
func (s *categoryService) GetSubCategories(ctx context.Context, categoryID uuid.UUID) ([]*domain.SubCategory, error) {
	return s.subCategoryRepo.ListByCategory(ctx, categoryID)
}

// Delete removes a category by ID. Admin only. A category still referenced
// by subcategories or products fails on the restrict foreign keys and the
// store error propagates unmodified.
func (s *categoryService) Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Category, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: category id is required", ErrInvalidInput)
	}
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	return s.categoryRepo.Delete(ctx, id)
}
