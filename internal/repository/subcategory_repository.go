package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vendormart/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrSubCategoryNotFound = errors.New("subcategory not found")
)

// SubCategoryRepository defines the interface for subcategory data access
type SubCategoryRepository interface {
	Upsert(ctx context.Context, subCategory *domain.SubCategory) (*domain.SubCategory, error)
	FindConflicting(ctx context.Context, subCategory *domain.SubCategory) (*domain.SubCategory, error)
	List(ctx context.Context) ([]*domain.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.SubCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error)
}

type subCategoryRepository struct {
	db *sql.DB
}

// NewSubCategoryRepository creates a new instance of SubCategoryRepository
func NewSubCategoryRepository(db *sql.DB) SubCategoryRepository {
	return &subCategoryRepository{db: db}
}

// Upsert creates the subcategory if the ID is new, otherwise updates the
// existing row, including moving it to another parent category.
func (r *subCategoryRepository) Upsert(ctx context.Context, subCategory *domain.SubCategory) (*domain.SubCategory, error) {
	query := `
		INSERT INTO sub_categories (id, name, url, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, url = EXCLUDED.url, category_id = EXCLUDED.category_id, updated_at = EXCLUDED.updated_at
		RETURNING id, name, url, category_id, created_at, updated_at
	`

	saved := &domain.SubCategory{}
	err := r.db.QueryRowContext(
		ctx,
		query,
		subCategory.ID,
		subCategory.Name,
		subCategory.URL,
		subCategory.CategoryID,
		subCategory.CreatedAt,
		subCategory.UpdatedAt,
	).Scan(
		&saved.ID,
		&saved.Name,
		&saved.URL,
		&saved.CategoryID,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)

	if err != nil {
		if dup, ok := asDuplicateError(err, "sub_categories"); ok {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to upsert subcategory: %w", err)
	}

	return saved, nil
}

// FindConflicting returns another subcategory claiming the candidate's name
// or URL, excluding the candidate's own ID. A nil result means no conflict.
func (r *subCategoryRepository) FindConflicting(ctx context.Context, subCategory *domain.SubCategory) (*domain.SubCategory, error) {
	query := `
		SELECT id, name, url, category_id, created_at, updated_at
		FROM sub_categories
		WHERE (name = $1 OR url = $2) AND id <> $3
		LIMIT 1
	`

	existing := &domain.SubCategory{}
	err := r.db.QueryRowContext(ctx, query, subCategory.Name, subCategory.URL, subCategory.ID).Scan(
		&existing.ID,
		&existing.Name,
		&existing.URL,
		&existing.CategoryID,
		&existing.CreatedAt,
		&existing.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check for conflicting subcategory: %w", err)
	}

	return existing, nil
}

// List retrieves all subcategories sorted by most recently updated first
func (r *subCategoryRepository) List(ctx context.Context) ([]*domain.SubCategory, error) {
	query := `
		SELECT id, name, url, category_id, created_at, updated_at
		FROM sub_categories
		ORDER BY updated_at DESC
	`

	return r.queryMany(ctx, query)
}

// ListByCategory retrieves the subcategories of one category, most recently
// updated first
func (r *subCategoryRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.SubCategory, error) {
	query := `
		SELECT id, name, url, category_id, created_at, updated_at
		FROM sub_categories
		WHERE category_id = $1
		ORDER BY updated_at DESC
	`

	return r.queryMany(ctx, query, categoryID)
}

func (r *subCategoryRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]*domain.SubCategory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	defer rows.Close()

	subCategories := []*domain.SubCategory{}
	for rows.Next() {
		subCategory := &domain.SubCategory{}
		err := rows.Scan(
			&subCategory.ID,
			&subCategory.Name,
			&subCategory.URL,
			&subCategory.CategoryID,
			&subCategory.CreatedAt,
			&subCategory.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subCategories = append(subCategories, subCategory)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subcategories: %w", err)
	}

	return subCategories, nil
}

// FindByID retrieves a subcategory by ID using parameterized queries
func (r *subCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error) {
	query := `
		SELECT id, name, url, category_id, created_at, updated_at
		FROM sub_categories
		WHERE id = $1
	`

	subCategory := &domain.SubCategory{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&subCategory.ID,
		&subCategory.Name,
		&subCategory.URL,
		&subCategory.CategoryID,
		&subCategory.CreatedAt,
		&subCategory.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find subcategory by ID: %w", err)
	}

	return subCategory, nil
}

// Delete removes a subcategory by ID and returns the deleted row
func (r *subCategoryRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error) {
	query := `
		DELETE FROM sub_categories
		WHERE id = $1
		RETURNING id, name, url, category_id, created_at, updated_at
	`

	subCategory := &domain.SubCategory{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&subCategory.ID,
		&subCategory.Name,
		&subCategory.URL,
		&subCategory.CategoryID,
		&subCategory.CreatedAt,
		&subCategory.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSubCategoryNotFound
		}
		return nil, fmt.Errorf("failed to delete subcategory: %w", err)
	}

	return subCategory, nil
}
