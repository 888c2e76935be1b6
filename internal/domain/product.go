package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a sellable item belonging to a store, a category, and
// a subcategory. Every product owns at least one variant; the first variant
// is created together with the product.
type Product struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Description   string           `json:"description" db:"description"`
	Slug          string           `json:"slug" db:"slug"`
	Brand         string           `json:"brand" db:"brand"`
	StoreID       uuid.UUID        `json:"store_id" db:"store_id"`
	CategoryID    uuid.UUID        `json:"category_id" db:"category_id"`
	SubCategoryID uuid.UUID        `json:"sub_category_id" db:"sub_category_id"`
	Variants      []ProductVariant `json:"variants,omitempty" db:"-"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`
}

// ProductVariant represents one purchasable variation of a product.
// Keywords are stored comma-joined. Child collections (images, colors,
// sizes) are created wholesale with the variant and never patched.
type ProductVariant struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	ProductID   uuid.UUID      `json:"product_id" db:"product_id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description" db:"description"`
	Slug        string         `json:"slug" db:"slug"`
	IsSale      bool           `json:"is_sale" db:"is_sale"`
	SKU         string         `json:"sku" db:"sku"`
	Keywords    string         `json:"keywords" db:"keywords"`
	Images      []VariantImage `json:"images,omitempty" db:"-"`
	Colors      []VariantColor `json:"colors,omitempty" db:"-"`
	Sizes       []VariantSize  `json:"sizes,omitempty" db:"-"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// VariantImage is an image owned by a variant. Alt text is derived from the
// last path segment of the URL when the variant is assembled.
type VariantImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VariantID uuid.UUID `json:"variant_id" db:"variant_id"`
	URL       string    `json:"url" db:"url"`
	Alt       string    `json:"alt" db:"alt"`
}

// VariantColor is a color option owned by a variant
type VariantColor struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VariantID uuid.UUID `json:"variant_id" db:"variant_id"`
	Name      string    `json:"name" db:"name"`
}

// VariantSize is a size option with its own stock and pricing
type VariantSize struct {
	ID        uuid.UUID `json:"id" db:"id"`
	VariantID uuid.UUID `json:"variant_id" db:"variant_id"`
	Size      string    `json:"size" db:"size"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	Discount  float64   `json:"discount" db:"discount"`
}
