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
	ErrStoreNotFound = errors.New("store not found")
)

// StoreRepository defines the interface for store data access
type StoreRepository interface {
	Upsert(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindConflicting(ctx context.Context, store *domain.Store) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	FindByURL(ctx context.Context, url string) (*domain.Store, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Store, error)
}

type storeRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new instance of StoreRepository
func NewStoreRepository(db *sql.DB) StoreRepository {
	return &storeRepository{db: db}
}

const storeColumns = "id, name, description, email, phone, url, logo_url, user_id, created_at, updated_at"

func scanStore(row interface{ Scan(...interface{}) error }) (*domain.Store, error) {
	store := &domain.Store{}
	err := row.Scan(
		&store.ID,
		&store.Name,
		&store.Description,
		&store.Email,
		&store.Phone,
		&store.URL,
		&store.LogoURL,
		&store.UserID,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Upsert creates the store if the ID is new, otherwise updates the existing
// row. The owning user is written only on create; the update branch never
// touches user_id, which keeps ownership immutable.
func (r *storeRepository) Upsert(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	query := `
		INSERT INTO stores (` + storeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, email = EXCLUDED.email,
		    phone = EXCLUDED.phone, url = EXCLUDED.url, logo_url = EXCLUDED.logo_url,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + storeColumns

	saved, err := scanStore(r.db.QueryRowContext(
		ctx,
		query,
		store.ID,
		store.Name,
		store.Description,
		store.Email,
		store.Phone,
		store.URL,
		store.LogoURL,
		store.UserID,
		store.CreatedAt,
		store.UpdatedAt,
	))

	if err != nil {
		if dup, ok := asDuplicateError(err, "stores"); ok {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to upsert store: %w", err)
	}

	return saved, nil
}

// FindConflicting returns another store claiming any of the candidate's
// unique fields (name, url, email, phone), excluding the candidate's own
// ID. A nil result means no conflict.
func (r *storeRepository) FindConflicting(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	query := `
		SELECT ` + storeColumns + `
		FROM stores
		WHERE (name = $1 OR url = $2 OR email = $3 OR phone = $4) AND id <> $5
		LIMIT 1
	`

	existing, err := scanStore(r.db.QueryRowContext(ctx, query, store.Name, store.URL, store.Email, store.Phone, store.ID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check for conflicting store: %w", err)
	}

	return existing, nil
}

// List retrieves all stores sorted by most recently updated first
func (r *storeRepository) List(ctx context.Context) ([]*domain.Store, error) {
	query := `
		SELECT ` + storeColumns + `
		FROM stores
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	stores := []*domain.Store{}
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}

	return stores, nil
}

// FindByID retrieves a store by ID using parameterized queries
func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	query := `
		SELECT ` + storeColumns + `
		FROM stores
		WHERE id = $1
	`

	store, err := scanStore(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to find store by ID: %w", err)
	}

	return store, nil
}

// FindByURL retrieves a store by its unique URL slug
func (r *storeRepository) FindByURL(ctx context.Context, url string) (*domain.Store, error) {
	query := `
		SELECT ` + storeColumns + `
		FROM stores
		WHERE url = $1
	`

	store, err := scanStore(r.db.QueryRowContext(ctx, query, url))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to find store by URL: %w", err)
	}

	return store, nil
}

// Delete removes a store by ID and returns the deleted row. Deleting a
// store that still has products fails on the RESTRICT foreign key.
func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	query := `
		DELETE FROM stores
		WHERE id = $1
		RETURNING ` + storeColumns

	store, err := scanStore(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to delete store: %w", err)
	}

	return store, nil
}
