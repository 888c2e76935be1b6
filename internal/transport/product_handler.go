package transport

import (
	"net/http"

	"vendormart/internal/middleware"
	"vendormart/internal/repository"
	"vendormart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes. Products are created under a
// store addressed by its URL slug, matching how sellers navigate the
// dashboard.
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{productID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Delete("/{productID}", h.Delete)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/stores/{storeURL}/products", h.Upsert)
	})
}

// Upsert handles product creation and variant addition. A payload whose ID
// names an existing product adds a new variant to it; anything else creates
// a product with its first variant.
func (h *ProductHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req service.ProductInput
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	actor, _ := middleware.GetActor(r.Context())
	storeURL := chi.URLParam(r, "storeURL")

	product, err := h.productService.Upsert(r.Context(), actor, storeURL, &req)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrStoreNotFound)
		return
	}

	h.logger.Info("Product saved",
		zap.String("product_id", product.ID.String()),
		zap.Int("variants", len(product.Variants)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// List handles listing all products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, nil)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get handles fetching a single product with its variants
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrProductNotFound)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles removing a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	product, err := h.productService.Delete(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrProductNotFound)
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", product.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, product)
}
