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
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Upsert(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindConflicting(ctx context.Context, category *domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Category, error)
}

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Upsert creates the category if the ID is new, otherwise updates the
// existing row in place. Unique-constraint violations surface as
// DuplicateError so the service can report the colliding field.
func (r *categoryRepository) Upsert(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO categories (id, name, url, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, url = EXCLUDED.url, image_url = EXCLUDED.image_url, updated_at = EXCLUDED.updated_at
		RETURNING id, name, url, image_url, created_at, updated_at
	`

	saved := &domain.Category{}
	err := r.db.QueryRowContext(
		ctx,
		query,
		category.ID,
		category.Name,
		category.URL,
		category.ImageURL,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(
		&saved.ID,
		&saved.Name,
		&saved.URL,
		&saved.ImageURL,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)

	if err != nil {
		if dup, ok := asDuplicateError(err, "categories"); ok {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to upsert category: %w", err)
	}

	return saved, nil
}

// FindConflicting returns another category claiming the candidate's name or
// URL, excluding the candidate's own ID. A nil result means no conflict.
func (r *categoryRepository) FindConflicting(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	query := `
		SELECT id, name, url, image_url, created_at, updated_at
		FROM categories
		WHERE (name = $1 OR url = $2) AND id <> $3
		LIMIT 1
	`

	existing := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, category.Name, category.URL, category.ID).Scan(
		&existing.ID,
		&existing.Name,
		&existing.URL,
		&existing.ImageURL,
		&existing.CreatedAt,
		&existing.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check for conflicting category: %w", err)
	}

	return existing, nil
}

// List retrieves all categories sorted by most recently updated first
func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, url, image_url, created_at, updated_at
		FROM categories
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		category := &domain.Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.URL,
			&category.ImageURL,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// FindByID retrieves a category by ID using parameterized queries
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, name, url, image_url, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.URL,
		&category.ImageURL,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

// Delete removes a category by ID and returns the deleted row. Deleting a
// category that products or subcategories still reference fails on the
// RESTRICT foreign keys and propagates as a plain store error.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		DELETE FROM categories
		WHERE id = $1
		RETURNING id, name, url, image_url, created_at, updated_at
	`

	category := &domain.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.URL,
		&category.ImageURL,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return category, nil
}
