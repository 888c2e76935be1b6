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

// CategoryHandler handles HTTP requests for category operations
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers all category routes. Reads are public; writes go
// through the auth middleware, with the service doing the role check.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{categoryID}", h.Get)
		r.Get("/{categoryID}/subcategories", h.ListSubCategories)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Upsert)
			r.Delete("/{categoryID}", h.Delete)
		})
	})
}

// Upsert handles category creation and update
func (h *CategoryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req service.CategoryInput
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	category, err := h.categoryService.Upsert(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.logger, err, nil)
		return
	}

	h.logger.Info("Category saved", zap.String("category_id", category.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// List handles listing all categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, nil)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Get handles fetching a single category
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrCategoryNotFound)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// ListSubCategories handles listing the subcategories of one category
func (h *CategoryHandler) ListSubCategories(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	subCategories, err := h.categoryService.GetSubCategories(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, nil)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subCategories)
}

// Delete handles removing a category
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "categoryID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	category, err := h.categoryService.Delete(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrCategoryNotFound)
		return
	}

	h.logger.Info("Category deleted", zap.String("category_id", category.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, category)
}
