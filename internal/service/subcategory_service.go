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

// SubCategoryInput is the payload for creating or updating a subcategory.
// The parent category must already exist; a dangling CategoryID fails on the
// foreign key at write time.
type SubCategoryInput struct {
	ID         *uuid.UUID `json:"id" validate:"omitempty"`
	Name       string     `json:"name" validate:"required"`
	URL        string     `json:"url" validate:"required"`
	CategoryID uuid.UUID  `json:"category_id" validate:"required"`
}

// SubCategoryService defines the interface for subcategory business logic
type SubCategoryService interface {
	Upsert(ctx context.Context, actor *domain.Actor, input *SubCategoryInput) (*domain.SubCategory, error)
	GetAll(ctx context.Context) ([]*domain.SubCategory, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error)
	Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.SubCategory, error)
}

type subCategoryService struct {
	subCategoryRepo repository.SubCategoryRepository
}

// NewSubCategoryService creates a new instance of SubCategoryService
func NewSubCategoryService(subCategoryRepo repository.SubCategoryRepository) SubCategoryService {
	return &subCategoryService{subCategoryRepo: subCategoryRepo}
}

// Upsert creates or updates a subcategory. Admin only. Guards run in the
// same fixed order as categories.
func (s *subCategoryService) Upsert(ctx context.Context, actor *domain.Actor, input *SubCategoryInput) (*domain.SubCategory, error) {
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if input == nil || input.Name == "" || input.URL == "" || input.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: subcategory name, url, and category are required", ErrInvalidInput)
	}

	id := uuid.New()
	if input.ID != nil {
		id = *input.ID
	}

	now := time.Now()
	subCategory := &domain.SubCategory{
		ID:         id,
		Name:       input.Name,
		URL:        input.URL,
		CategoryID: input.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	existing, err := s.subCategoryRepo.FindConflicting(ctx, subCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to validate subcategory uniqueness: %w", err)
	}
	if existing != nil {
		field := "URL"
		if existing.Name == subCategory.Name {
			field = "name"
		}
		return nil, &ConflictError{Entity: "subcategory", Field: field}
	}

	saved, err := s.subCategoryRepo.Upsert(ctx, subCategory)
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return nil, &ConflictError{Entity: "subcategory", Field: displayURLField(dup.Field)}
		}
		return nil, err
	}

	return saved, nil
}

// GetAll retrieves all subcategories, most recently updated first. Public.
func (s *subCategoryService) GetAll(ctx context.Context) ([]*domain.SubCategory, error) {
	return s.subCategoryRepo.List(ctx)
}

// Get retrieves a single subcategory by ID. Public.
func (s *subCategoryService) Get(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error) {
	return s.subCategoryRepo.FindByID(ctx, id)
}

// Delete removes a subcategory by ID. Admin only.
func (s *subCategoryService) Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.SubCategory, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: subcategory id is required", ErrInvalidInput)
	}
	if err := requireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}

	return s.subCategoryRepo.Delete(ctx, id)
}
