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

// SubCategoryHandler handles HTTP requests for subcategory operations
type SubCategoryHandler struct {
	subCategoryService service.SubCategoryService
	logger             *zap.Logger
}

// NewSubCategoryHandler creates a new SubCategoryHandler
func NewSubCategoryHandler(subCategoryService service.SubCategoryService, logger *zap.Logger) *SubCategoryHandler {
	return &SubCategoryHandler{
		subCategoryService: subCategoryService,
		logger:             logger,
	}
}

// RegisterRoutes registers all subcategory routes
func (h *SubCategoryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/subcategories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{subCategoryID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Upsert)
			r.Delete("/{subCategoryID}", h.Delete)
		})
	})
}

// Upsert handles subcategory creation and update
func (h *SubCategoryHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req service.SubCategoryInput
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	subCategory, err := h.subCategoryService.Upsert(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.logger, err, nil)
		return
	}

	h.logger.Info("Subcategory saved", zap.String("subcategory_id", subCategory.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, subCategory)
}

// List handles listing all subcategories
func (h *SubCategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	subCategories, err := h.subCategoryService.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, nil)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subCategories)
}

// Get handles fetching a single subcategory
func (h *SubCategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "subCategoryID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid subcategory ID")
		return
	}

	subCategory, err := h.subCategoryService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrSubCategoryNotFound)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, subCategory)
}

// Delete handles removing a subcategory
func (h *SubCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "subCategoryID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid subcategory ID")
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	subCategory, err := h.subCategoryService.Delete(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrSubCategoryNotFound)
		return
	}

	h.logger.Info("Subcategory deleted", zap.String("subcategory_id", subCategory.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, subCategory)
}
