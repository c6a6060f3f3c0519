package trips

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/tripsync/internal/application/usecases/trip"
	"github.com/hilthontt/tripsync/internal/infrastructure/json"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/presentation/utils"
)

type Handler struct {
	useCase trip.UseCase
	logger  logging.Logger
}

func NewHandler(useCase trip.UseCase, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{useCase: useCase, logger: logger}
}

// CreateTripHandler godoc
// @Summary      Save a solo trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body saveTripRequest true "Trip"
// @Success      201 {object} tripResponse
// @Failure      400 {object} json.ErrorResponse
// @Failure      500 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /trips [post]
func (h *Handler) CreateTripHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	var req saveTripRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	created, err := h.useCase.Create(r.Context(), identity, in)
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusCreated, toTripResponse(*created))
}

// ListTripsHandler godoc
// @Summary      List the caller's solo trips
// @Description  Trips whose end date has passed are listed under pastTrips
// @Tags         trips
// @Produce      json
// @Success      200 {object} listTripsResponse
// @Failure      500 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /trips [get]
func (h *Handler) ListTripsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	list, err := h.useCase.List(r.Context(), identity)
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusOK, listTripsResponse{
		CurrentTrips: toTripResponses(list.CurrentTrips),
		PastTrips:    toTripResponses(list.PastTrips),
	})
}

// GetTripHandler godoc
// @Summary      Get a solo trip
// @Tags         trips
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} tripResponse
// @Failure      404 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /trips/{id} [get]
func (h *Handler) GetTripHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	found, err := h.useCase.Get(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusOK, toTripResponse(*found))
}

// UpdateTripHandler godoc
// @Summary      Overwrite a solo trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body saveTripRequest true "Trip"
// @Success      200 {object} tripResponse
// @Failure      400 {object} json.ErrorResponse
// @Failure      404 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /trips/{id} [put]
func (h *Handler) UpdateTripHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	var req saveTripRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	updated, err := h.useCase.Update(r.Context(), identity, chi.URLParam(r, "id"), in)
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusOK, toTripResponse(*updated))
}

// DeleteTripHandler godoc
// @Summary      Delete a solo trip
// @Tags         trips
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} deleteTripResponse
// @Failure      404 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /trips/{id} [delete]
func (h *Handler) DeleteTripHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	if err := h.useCase.Delete(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusOK, deleteTripResponse{Message: "Trip deleted"})
}
