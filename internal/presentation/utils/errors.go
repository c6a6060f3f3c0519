package utils

import (
	"errors"
	"net/http"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/json"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
)

// WriteDomainError maps domain errors to status codes. Anything unknown is
// logged and answered with a generic 500.
func WriteDomainError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		json.WriteValidationError(w, err)
	case errors.Is(err, domain.ErrNotMember):
		json.WriteForbiddenError(w, "You are not a member of this trip")
	case errors.Is(err, domain.ErrTripNotFound):
		json.WriteNotFoundError(w, "Trip not found. Please check the code.")
	case errors.Is(err, domain.ErrSoloTripNotFound):
		json.WriteNotFoundError(w, "Trip not found")
	case errors.Is(err, domain.ErrUserNotFound):
		json.WriteNotFoundError(w, "User not found")
	default:
		logger.Error(logging.RequestResponse, logging.ExternalService, "request failed", map[logging.ExtraKey]any{
			logging.Method:       r.Method,
			logging.Path:         r.URL.Path,
			logging.ErrorMessage: err.Error(),
		})
		json.WriteInternalError(w, err)
	}
}
