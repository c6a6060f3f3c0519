package collaborations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hilthontt/tripsync/internal/application/usecases/collaboration"
	"github.com/hilthontt/tripsync/internal/infrastructure/json"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/presentation/utils"
)

type Handler struct {
	useCase collaboration.UseCase
	logger  logging.Logger
}

func NewHandler(useCase collaboration.UseCase, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{useCase: useCase, logger: logger}
}

// CreateTripHandler godoc
// @Summary      Create a collaborative trip
// @Description  Creates a trip with the caller as its only member and an empty itinerary
// @Tags         collaborations
// @Accept       json
// @Produce      json
// @Param        request body createTripRequest true "Trip name"
// @Param        X-Connection-ID header string false "Realtime connection to join to the trip room"
// @Success      201 {object} tripResponse
// @Failure      400 {object} json.ErrorResponse
// @Failure      401 {object} json.ErrorResponse
// @Failure      500 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /collaborations [post]
func (h *Handler) CreateTripHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	var req createTripRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	trip, err := h.useCase.CreateTrip(r.Context(), req.TripName, identity, utils.ConnectionID(r))
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusCreated, toTripResponse(*trip))
}

// JoinTripHandler godoc
// @Summary      Join a trip by code
// @Description  Adds the caller to the trip members and returns the current itinerary
// @Tags         collaborations
// @Accept       json
// @Produce      json
// @Param        request body joinTripRequest true "Trip code"
// @Param        X-Connection-ID header string false "Realtime connection to join to the trip room"
// @Success      200 {object} joinTripResponse
// @Failure      400 {object} json.ErrorResponse "Trip code is required"
// @Failure      404 {object} json.ErrorResponse "Trip or user not found"
// @Failure      500 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /collaborations/join [post]
func (h *Handler) JoinTripHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	var req joinTripRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	res, err := h.useCase.JoinTrip(r.Context(), req.TripCode, identity, utils.ConnectionID(r))
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	it := orEmpty(res.Itinerary)
	json.Write(w, http.StatusOK, joinTripResponse{
		Message:    "Successfully joined the trip!",
		TripName:   res.TripName,
		TripCode:   res.TripCode,
		Days:       it.Days,
		Activities: it.Activities,
	})
}

// UpdateItineraryHandler godoc
// @Summary      Replace a trip's itinerary
// @Description  Replaces days and/or activities. Supplied activities replace the whole mapping.
// @Tags         collaborations
// @Accept       json
// @Produce      json
// @Param        tripCode path string true "Trip code"
// @Param        request body updateItineraryRequest true "Days and/or activities"
// @Param        X-Connection-ID header string false "Connection excluded from the broadcast"
// @Success      200 {object} updateItineraryResponse
// @Failure      400 {object} json.ErrorResponse "Days or activities are required"
// @Failure      403 {object} json.ErrorResponse "Not a member"
// @Failure      404 {object} json.ErrorResponse "Trip not found"
// @Failure      500 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /collaborations/update/{tripCode} [put]
func (h *Handler) UpdateItineraryHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	var req updateItineraryRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	in := collaboration.UpdateInput{
		TripCode:     chi.URLParam(r, "tripCode"),
		Identity:     identity,
		ConnectionID: utils.ConnectionID(r),
	}
	if req.Days != nil {
		in.Days = []string(*req.Days)
		if in.Days == nil {
			in.Days = []string{}
		}
	}
	if req.Activities != nil {
		in.Activities = req.Activities.Strings()
	}

	it, err := h.useCase.UpdateItinerary(r.Context(), in)
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	it = orEmpty(it)
	json.Write(w, http.StatusOK, updateItineraryResponse{
		Message:    "Itinerary updated successfully!",
		Days:       it.Days,
		Activities: it.Activities,
	})
}

// ListTripsHandler godoc
// @Summary      List the caller's collaborative trips
// @Tags         collaborations
// @Produce      json
// @Success      200 {object} listTripsResponse
// @Failure      500 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /collaborations [get]
func (h *Handler) ListTripsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	list, err := h.useCase.ListTrips(r.Context(), identity)
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
// @Summary      Get trip details
// @Tags         collaborations
// @Produce      json
// @Param        tripCode path string true "Trip code"
// @Success      200 {object} tripDetailsResponse
// @Failure      403 {object} json.ErrorResponse
// @Failure      404 {object} json.ErrorResponse
// @Failure      500 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /collaborations/{tripCode} [get]
func (h *Handler) GetTripHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	trip, err := h.useCase.GetTrip(r.Context(), chi.URLParam(r, "tripCode"), identity)
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	resp := toTripResponse(*trip)
	json.Write(w, http.StatusOK, tripDetailsResponse{
		TripName:   resp.TripName,
		TripCode:   resp.TripCode,
		Members:    resp.Members,
		Days:       resp.Days,
		Activities: resp.Activities,
	})
}
