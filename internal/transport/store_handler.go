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

// StoreHandler handles HTTP requests for store operations
type StoreHandler struct {
	storeService service.StoreService
	logger       *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(storeService service.StoreService, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		logger:       logger,
	}
}

// RegisterRoutes registers all store routes. Stores are addressable both by
// ID and by their URL slug.
func (h *StoreHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/stores", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{storeID}", h.Get)
		r.Get("/url/{storeURL}", h.GetByURL)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Upsert)
			r.Delete("/{storeID}", h.Delete)
		})
	})
}

// Upsert handles store creation and update
func (h *StoreHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req service.StoreInput
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	store, err := h.storeService.Upsert(r.Context(), actor, &req)
	if err != nil {
		writeServiceError(w, h.logger, err, nil)
		return
	}

	h.logger.Info("Store saved", zap.String("store_id", store.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, store)
}

// List handles listing all stores
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.storeService.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, nil)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stores)
}

// Get handles fetching a single store by ID
func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid store ID")
		return
	}

	store, err := h.storeService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrStoreNotFound)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, store)
}

// GetByURL handles fetching a single store by its URL slug
func (h *StoreHandler) GetByURL(w http.ResponseWriter, r *http.Request) {
	store, err := h.storeService.GetByURL(r.Context(), chi.URLParam(r, "storeURL"))
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrStoreNotFound)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, store)
}

// Delete handles removing a store
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "storeID"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid store ID")
		return
	}

	actor, _ := middleware.GetActor(r.Context())

	store, err := h.storeService.Delete(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, h.logger, err, repository.ErrStoreNotFound)
		return
	}

	h.logger.Info("Store deleted", zap.String("store_id", store.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, store)
}
