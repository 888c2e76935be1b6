package transport

import (
	"errors"
	"net/http"

	"vendormart/internal/middleware"
	"vendormart/internal/service"

	"go.uber.org/zap"
)

// writeServiceError maps a service failure to an HTTP status. The notFound
// sentinel is per entity kind, so each handler passes its own. Conflict and
// invalid-input messages are written to be end-user-presentable and are
// surfaced verbatim; anything unrecognized is logged and hidden behind a
// generic 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, notFound error) {
	var conflict *service.ConflictError

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthenticated")
	case errors.Is(err, service.ErrUnauthorized):
		middleware.RespondWithError(w, http.StatusForbidden, "unauthorized access")
	case errors.Is(err, service.ErrInvalidInput):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &conflict):
		middleware.RespondWithError(w, http.StatusConflict, conflict.Error())
	case notFound != nil && errors.Is(err, notFound):
		middleware.RespondWithError(w, http.StatusNotFound, notFound.Error())
	default:
		logger.Error("Request failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeBody decodes and validates a JSON payload, writing the proper 400
// response itself. Returns false when the request was already answered.
func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
