package transport

import (
	"context"
	"net/http"
	"sync"

	"vendormart/internal/domain"
	"vendormart/internal/middleware"
	"vendormart/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// stubAuth injects a fixed actor the way the JWT middleware would. A nil
// actor leaves the request unauthenticated so the services reject it.
func stubAuth(actor *domain.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actor != nil {
				ctx := context.WithValue(r.Context(), middleware.UserIDKey, actor.ID.String())
				ctx = context.WithValue(ctx, middleware.UserRoleKey, string(actor.Role))
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// In-memory repositories backing the handler tests.

type memCategoryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{items: make(map[uuid.UUID]*domain.Category)}
}

func (m *memCategoryRepo) Upsert(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *category
	if existing, ok := m.items[category.ID]; ok {
		saved.CreatedAt = existing.CreatedAt
	}
	m.items[category.ID] = &saved
	out := saved
	return &out, nil
}

func (m *memCategoryRepo) FindConflicting(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.ID == category.ID {
			continue
		}
		if existing.Name == category.Name || existing.URL == category.URL {
			out := *existing
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Category{}
	for _, category := range m.items {
		c := *category
		out = append(out, &c)
	}
	return out, nil
}

func (m *memCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.items[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	out := *category
	return &out, nil
}

func (m *memCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.items[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	delete(m.items, id)
	return category, nil
}

type memSubCategoryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.SubCategory
}

func newMemSubCategoryRepo() *memSubCategoryRepo {
	return &memSubCategoryRepo{items: make(map[uuid.UUID]*domain.SubCategory)}
}

func (m *memSubCategoryRepo) Upsert(ctx context.Context, subCategory *domain.SubCategory) (*domain.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *subCategory
	m.items[subCategory.ID] = &saved
	out := saved
	return &out, nil
}

func (m *memSubCategoryRepo) FindConflicting(ctx context.Context, subCategory *domain.SubCategory) (*domain.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.ID == subCategory.ID {
			continue
		}
		if existing.Name == subCategory.Name || existing.URL == subCategory.URL {
			out := *existing
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memSubCategoryRepo) List(ctx context.Context) ([]*domain.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.SubCategory{}
	for _, subCategory := range m.items {
		s := *subCategory
		out = append(out, &s)
	}
	return out, nil
}

func (m *memSubCategoryRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]*domain.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.SubCategory{}
	for _, subCategory := range m.items {
		if subCategory.CategoryID == categoryID {
			s := *subCategory
			out = append(out, &s)
		}
	}
	return out, nil
}

func (m *memSubCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subCategory, ok := m.items[id]
	if !ok {
		return nil, repository.ErrSubCategoryNotFound
	}
	out := *subCategory
	return &out, nil
}

func (m *memSubCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.SubCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subCategory, ok := m.items[id]
	if !ok {
		return nil, repository.ErrSubCategoryNotFound
	}
	delete(m.items, id)
	return subCategory, nil
}

type memStoreRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*domain.Store
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{items: make(map[uuid.UUID]*domain.Store)}
}

func (m *memStoreRepo) Upsert(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *store
	if existing, ok := m.items[store.ID]; ok {
		saved.CreatedAt = existing.CreatedAt
		saved.UserID = existing.UserID
	}
	m.items[store.ID] = &saved
	out := saved
	return &out, nil
}

func (m *memStoreRepo) FindConflicting(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.ID == store.ID {
			continue
		}
		if existing.Name == store.Name || existing.URL == store.URL ||
			existing.Email == store.Email || existing.Phone == store.Phone {
			out := *existing
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStoreRepo) List(ctx context.Context) ([]*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Store{}
	for _, store := range m.items {
		s := *store
		out = append(out, &s)
	}
	return out, nil
}

func (m *memStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.items[id]
	if !ok {
		return nil, repository.ErrStoreNotFound
	}
	out := *store
	return &out, nil
}

func (m *memStoreRepo) FindByURL(ctx context.Context, url string) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, store := range m.items {
		if store.URL == url {
			out := *store
			return &out, nil
		}
	}
	return nil, repository.ErrStoreNotFound
}

func (m *memStoreRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.items[id]
	if !ok {
		return nil, repository.ErrStoreNotFound
	}
	delete(m.items, id)
	return store, nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*domain.Product
	slugs    map[repository.SlugKind]map[string]bool
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products: make(map[uuid.UUID]*domain.Product),
		slugs: map[repository.SlugKind]map[string]bool{
			repository.SlugKindProduct:        {},
			repository.SlugKindProductVariant: {},
		},
	}
}

func (m *memProductRepo) CreateWithVariant(ctx context.Context, product *domain.Product, variant *domain.ProductVariant) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *product
	saved.Variants = []domain.ProductVariant{*variant}
	m.products[product.ID] = &saved
	m.slugs[repository.SlugKindProduct][product.Slug] = true
	m.slugs[repository.SlugKindProductVariant][variant.Slug] = true
	out := saved
	return &out, nil
}

func (m *memProductRepo) AddVariant(ctx context.Context, variant *domain.ProductVariant) (*domain.ProductVariant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[variant.ProductID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	product.Variants = append(product.Variants, *variant)
	m.slugs[repository.SlugKindProductVariant][variant.Slug] = true
	out := *variant
	return &out, nil
}

func (m *memProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Product{}
	for _, product := range m.products {
		p := *product
		p.Variants = nil
		out = append(out, &p)
	}
	return out, nil
}

func (m *memProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	out := *product
	out.Variants = append([]domain.ProductVariant{}, product.Variants...)
	return &out, nil
}

func (m *memProductRepo) SlugExists(ctx context.Context, kind repository.SlugKind, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugs[kind][slug], nil
}

func (m *memProductRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	delete(m.products, id)
	return product, nil
}
