package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vendormart/internal/domain"
	"vendormart/internal/repository"

	"github.com/google/uuid"
)

// slugWriteAttempts bounds how often a write is retried with a fresh slug
// after a write-time slug collision. Concurrent callers can both pass the
// slug lookup and race to the same slug; the unique constraint catches the
// loser, who retries here.
const slugWriteAttempts = 3

// ImageInput is one image reference in a product payload. Alt text is
// derived from the URL's last path segment.
type ImageInput struct {
	URL string `json:"url" validate:"required"`
}

// SizeInput is one size option in a product payload
type SizeInput struct {
	Size     string  `json:"size" validate:"required"`
	Quantity int     `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
	Discount float64 `json:"discount" validate:"gte=0"`
}

// ProductInput is the flattened payload for the product upsert. It always
// describes one variant; when the ID names an existing product the variant
// fields become a new variant of that product and the product fields are
// ignored.
type ProductInput struct {
	ID                 *uuid.UUID   `json:"id" validate:"omitempty"`
	Name               string       `json:"name" validate:"required"`
	Description        string       `json:"description"`
	Brand              string       `json:"brand"`
	CategoryID         uuid.UUID    `json:"category_id" validate:"required"`
	SubCategoryID      uuid.UUID    `json:"sub_category_id" validate:"required"`
	VariantName        string       `json:"variant_name" validate:"required"`
	VariantDescription string       `json:"variant_description"`
	IsSale             bool         `json:"is_sale"`
	SKU                string       `json:"sku"`
	Keywords           []string     `json:"keywords"`
	Images             []ImageInput `json:"images"`
	Colors             []string     `json:"colors"`
	Sizes              []SizeInput  `json:"sizes"`
}

// ProductService defines the interface for product business logic
type ProductService interface {
	Upsert(ctx context.Context, actor *domain.Actor, storeURL string, input *ProductInput) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
) ProductService {
	return &productService{
		productRepo: productRepo,
		storeRepo:   storeRepo,
	}
}

// Upsert creates a product with its first variant, or adds a new variant
// when the payload's ID names an existing product. Seller only. The branch
// is keyed on whether the product already exists, so resubmitting the same
// product ID grows its variant list instead of duplicating the product.
func (s *productService) Upsert(ctx context.Context, actor *domain.Actor, storeURL string, input *ProductInput) (*domain.Product, error) {
	if err := requireRole(actor, domain.RoleSeller); err != nil {
		return nil, err
	}
	if input == nil || input.Name == "" || input.VariantName == "" ||
		input.CategoryID == uuid.Nil || input.SubCategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: product name, variant name, category, and subcategory are required", ErrInvalidInput)
	}

	store, err := s.storeRepo.FindByURL(ctx, storeURL)
	if err != nil {
		return nil, err
	}

	if input.ID != nil {
		existing, err := s.productRepo.FindByID(ctx, *input.ID)
		if err != nil && err != repository.ErrProductNotFound {
			return nil, fmt.Errorf("failed to find product: %w", err)
		}
		if existing != nil {
			return s.addVariant(ctx, existing, input)
		}
	}

	return s.createProduct(ctx, store, input)
}

// createProduct writes a new product together with its first variant. Both
// slugs are generated up front; a write-time slug collision regenerates them
// and retries.
func (s *productService) createProduct(ctx context.Context, store *domain.Store, input *ProductInput) (*domain.Product, error) {
	id := uuid.New()
	if input.ID != nil {
		id = *input.ID
	}

	for attempt := 0; attempt < slugWriteAttempts; attempt++ {
		productSlug, err := GenerateUniqueSlug(ctx, s.productRepo, repository.SlugKindProduct, input.Name)
		if err != nil {
			return nil, err
		}
		variantSlug, err := GenerateUniqueSlug(ctx, s.productRepo, repository.SlugKindProductVariant, input.VariantName)
		if err != nil {
			return nil, err
		}

		now := time.Now()
		product := &domain.Product{
			ID:            id,
			Name:          input.Name,
			Description:   input.Description,
			Slug:          productSlug,
			Brand:         input.Brand,
			StoreID:       store.ID,
			CategoryID:    input.CategoryID,
			SubCategoryID: input.SubCategoryID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		variant := buildVariant(product.ID, variantSlug, input, now)

		saved, err := s.productRepo.CreateWithVariant(ctx, product, variant)
		if err != nil {
			if isSlugCollision(err) {
				continue
			}
			return nil, err
		}
		return saved, nil
	}

	return nil, fmt.Errorf("failed to create product %q: slug collisions persisted", input.Name)
}

// addVariant writes a new variant under an existing product and returns the
// product with the grown variant list.
func (s *productService) addVariant(ctx context.Context, product *domain.Product, input *ProductInput) (*domain.Product, error) {
	for attempt := 0; attempt < slugWriteAttempts; attempt++ {
		variantSlug, err := GenerateUniqueSlug(ctx, s.productRepo, repository.SlugKindProductVariant, input.VariantName)
		if err != nil {
			return nil, err
		}

		variant := buildVariant(product.ID, variantSlug, input, time.Now())
		saved, err := s.productRepo.AddVariant(ctx, variant)
		if err != nil {
			if isSlugCollision(err) {
				continue
			}
			return nil, err
		}

		product.Variants = append(product.Variants, *saved)
		return product, nil
	}

	return nil, fmt.Errorf("failed to add variant %q: slug collisions persisted", input.VariantName)
}

func isSlugCollision(err error) bool {
	var dup *repository.DuplicateError
	return errors.As(err, &dup) && dup.Field == "slug"
}

// buildVariant assembles a variant and its child collections from the
// payload. Children are always created fresh with the variant; there is no
// incremental merge.
func buildVariant(productID uuid.UUID, variantSlug string, input *ProductInput, now time.Time) *domain.ProductVariant {
	variant := &domain.ProductVariant{
		ID:          uuid.New(),
		ProductID:   productID,
		Name:        input.VariantName,
		Description: input.VariantDescription,
		Slug:        variantSlug,
		IsSale:      input.IsSale,
		SKU:         input.SKU,
		Keywords:    strings.Join(input.Keywords, ","),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, image := range input.Images {
		variant.Images = append(variant.Images, domain.VariantImage{
			ID:  uuid.New(),
			URL: image.URL,
			Alt: altFromURL(image.URL),
		})
	}
	for _, color := range input.Colors {
		variant.Colors = append(variant.Colors, domain.VariantColor{
			ID:   uuid.New(),
			Name: color,
		})
	}
	for _, size := range input.Sizes {
		variant.Sizes = append(variant.Sizes, domain.VariantSize{
			ID:       uuid.New(),
			Size:     size.Size,
			Quantity: size.Quantity,
			Price:    size.Price,
			Discount: size.Discount,
		})
	}

	return variant
}

// altFromURL derives image alt text from the last path segment of the URL
func altFromURL(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// GetAll retrieves all products, most recently updated first. Public.
func (s *productService) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.List(ctx)
}

// Get retrieves a single product by ID with its variants. Public.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

// Delete removes a product by ID. Seller only; variants and their children
// go with it via the cascade foreign keys.
func (s *productService) Delete(ctx context.Context, actor *domain.Actor, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
	}
	if err := requireRole(actor, domain.RoleSeller); err != nil {
		return nil, err
	}

	return s.productRepo.Delete(ctx, id)
}
