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
	ErrProductNotFound = errors.New("product not found")
)

// SlugKind selects which slug namespace a lookup runs against. Product and
// variant slugs are unique within their own kind, not across kinds.
type SlugKind string

const (
	SlugKindProduct        SlugKind = "product"
	SlugKindProductVariant SlugKind = "productVariant"
)

// ProductRepository defines the interface for product and variant data
// access. Variant child collections (images, colors, sizes) are always
// written together with their owning variant in one transaction.
type ProductRepository interface {
	CreateWithVariant(ctx context.Context, product *domain.Product, variant *domain.ProductVariant) (*domain.Product, error)
	AddVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error)
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	SlugExists(ctx context.Context, kind SlugKind, slug string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "id, name, description, slug, brand, store_id, category_id, sub_category_id, created_at, updated_at"

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Slug,
		&product.Brand,
		&product.StoreID,
		&product.CategoryID,
		&product.SubCategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// CreateWithVariant inserts a product together with its first variant and
// the variant's child collections in a single transaction, so a product can
// never exist without at least one variant.
func (r *productRepository) CreateWithVariant(ctx context.Context, product *domain.Product, variant *domain.ProductVariant) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = tx.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Slug,
		product.Brand,
		product.StoreID,
		product.CategoryID,
		product.SubCategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		if dup, ok := asDuplicateError(err, "products"); ok {
			return nil, dup
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := insertVariant(ctx, tx, variant); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit product creation: %w", err)
	}

	product.Variants = []domain.ProductVariant{*variant}
	return product, nil
}

// AddVariant inserts a new variant and its child collections under an
// existing product in a single transaction.
func (r *productRepository) AddVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertVariant(ctx, tx, variant); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit variant creation: %w", err)
	}

	return variant, nil
}

func insertVariant(ctx context.Context, tx *sql.Tx, variant *domain.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, name, description, slug, is_sale, sku, keywords, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		variant.ID,
		variant.ProductID,
		variant.Name,
		variant.Description,
		variant.Slug,
		variant.IsSale,
		variant.SKU,
		variant.Keywords,
		variant.CreatedAt,
		variant.UpdatedAt,
	)
	if err != nil {
		if dup, ok := asDuplicateError(err, "product_variants"); ok {
			return dup
		}
		return fmt.Errorf("failed to create product variant: %w", err)
	}

	for i := range variant.Images {
		variant.Images[i].VariantID = variant.ID
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO variant_images (id, variant_id, url, alt) VALUES ($1, $2, $3, $4)`,
			variant.Images[i].ID, variant.ID, variant.Images[i].URL, variant.Images[i].Alt,
		)
		if err != nil {
			return fmt.Errorf("failed to create variant image: %w", err)
		}
	}

	for i := range variant.Colors {
		variant.Colors[i].VariantID = variant.ID
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO variant_colors (id, variant_id, name) VALUES ($1, $2, $3)`,
			variant.Colors[i].ID, variant.ID, variant.Colors[i].Name,
		)
		if err != nil {
			return fmt.Errorf("failed to create variant color: %w", err)
		}
	}

	for i := range variant.Sizes {
		variant.Sizes[i].VariantID = variant.ID
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO variant_sizes (id, variant_id, size, quantity, price, discount) VALUES ($1, $2, $3, $4, $5, $6)`,
			variant.Sizes[i].ID, variant.ID, variant.Sizes[i].Size, variant.Sizes[i].Quantity, variant.Sizes[i].Price, variant.Sizes[i].Discount,
		)
		if err != nil {
			return fmt.Errorf("failed to create variant size: %w", err)
		}
	}

	return nil
}

// List retrieves all products sorted by most recently updated first.
// Variants are not loaded here; use FindByID for the full tree.
func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product by ID with its variants and their child
// collections fully loaded.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	variants, err := r.loadVariants(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	return product, nil
}

func (r *productRepository) loadVariants(ctx context.Context, productID uuid.UUID) ([]domain.ProductVariant, error) {
	query := `
		SELECT id, product_id, name, description, slug, is_sale, sku, keywords, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product variants: %w", err)
	}
	defer rows.Close()

	variants := []domain.ProductVariant{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		variant := domain.ProductVariant{}
		err := rows.Scan(
			&variant.ID,
			&variant.ProductID,
			&variant.Name,
			&variant.Description,
			&variant.Slug,
			&variant.IsSale,
			&variant.SKU,
			&variant.Keywords,
			&variant.CreatedAt,
			&variant.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product variant: %w", err)
		}
		index[variant.ID] = len(variants)
		variants = append(variants, variant)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product variants: %w", err)
	}

	if len(variants) == 0 {
		return variants, nil
	}

	if err := r.loadVariantChildren(ctx, productID, variants, index); err != nil {
		return nil, err
	}

	return variants, nil
}

// loadVariantChildren fetches images, colors, and sizes for every variant of
// the product in three queries and stitches them onto the variant slice.
func (r *productRepository) loadVariantChildren(ctx context.Context, productID uuid.UUID, variants []domain.ProductVariant, index map[uuid.UUID]int) error {
	const variantFilter = `variant_id IN (SELECT id FROM product_variants WHERE product_id = $1)`

	imageRows, err := r.db.QueryContext(ctx,
		`SELECT id, variant_id, url, alt FROM variant_images WHERE `+variantFilter, productID)
	if err != nil {
		return fmt.Errorf("failed to list variant images: %w", err)
	}
	defer imageRows.Close()
	for imageRows.Next() {
		image := domain.VariantImage{}
		if err := imageRows.Scan(&image.ID, &image.VariantID, &image.URL, &image.Alt); err != nil {
			return fmt.Errorf("failed to scan variant image: %w", err)
		}
		if i, ok := index[image.VariantID]; ok {
			variants[i].Images = append(variants[i].Images, image)
		}
	}
	if err = imageRows.Err(); err != nil {
		return fmt.Errorf("error iterating variant images: %w", err)
	}

	colorRows, err := r.db.QueryContext(ctx,
		`SELECT id, variant_id, name FROM variant_colors WHERE `+variantFilter, productID)
	if err != nil {
		return fmt.Errorf("failed to list variant colors: %w", err)
	}
	defer colorRows.Close()
	for colorRows.Next() {
		color := domain.VariantColor{}
		if err := colorRows.Scan(&color.ID, &color.VariantID, &color.Name); err != nil {
			return fmt.Errorf("failed to scan variant color: %w", err)
		}
		if i, ok := index[color.VariantID]; ok {
			variants[i].Colors = append(variants[i].Colors, color)
		}
	}
	if err = colorRows.Err(); err != nil {
		return fmt.Errorf("error iterating variant colors: %w", err)
	}

	sizeRows, err := r.db.QueryContext(ctx,
		`SELECT id, variant_id, size, quantity, price, discount FROM variant_sizes WHERE `+variantFilter, productID)
	if err != nil {
		return fmt.Errorf("failed to list variant sizes: %w", err)
	}
	defer sizeRows.Close()
	for sizeRows.Next() {
		size := domain.VariantSize{}
		if err := sizeRows.Scan(&size.ID, &size.VariantID, &size.Size, &size.Quantity, &size.Price, &size.Discount); err != nil {
			return fmt.Errorf("failed to scan variant size: %w", err)
		}
		if i, ok := index[size.VariantID]; ok {
			variants[i].Sizes = append(variants[i].Sizes, size)
		}
	}
	if err = sizeRows.Err(); err != nil {
		return fmt.Errorf("error iterating variant sizes: %w", err)
	}

	return nil
}

// SlugExists reports whether any record of the given kind already claims
// the slug
func (r *productRepository) SlugExists(ctx context.Context, kind SlugKind, slug string) (bool, error) {
	table := "products"
	if kind == SlugKindProductVariant {
		table = "product_variants"
	}

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check %s slug: %w", kind, err)
	}

	return exists, nil
}

// Delete removes a product by ID and returns the deleted row. Variants and
// their child collections are removed by the CASCADE foreign keys.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `
		DELETE FROM products
		WHERE id = $1
		RETURNING ` + productColumns

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return product, nil
}
