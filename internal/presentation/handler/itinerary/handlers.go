package itinerary

import (
	"errors"
	"net/http"

	"github.com/hilthontt/tripsync/internal/application/usecases/itinerary"
	"github.com/hilthontt/tripsync/internal/infrastructure/json"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/validate"
	"github.com/hilthontt/tripsync/internal/presentation/utils"
)

type Handler struct {
	useCase itinerary.UseCase
	logger  logging.Logger
}

func NewHandler(useCase itinerary.UseCase, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{useCase: useCase, logger: logger}
}

// maxTripDays caps how many days a single generation may expand.
const maxTripDays = 366

var (
	startDateRule = validate.Field("startDate", validate.Required(), validate.Date())
	endDateRule   = validate.Field("endDate", validate.Required(), validate.Date())
)

// GenerateHandler godoc
// @Summary      Draft an itinerary for a date range
// @Description  Expands the range into empty days, or asks the AI for activities when useAI is set. AI failures fall back to empty days.
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        request body generateRequest true "Destination and dates"
// @Success      200 {object} generateResponse
// @Failure      400 {object} json.ErrorResponse
// @Security     BearerAuth
// @Router       /itinerary/generate [post]
func (h *Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	rangeRule := validate.Field("endDate", validate.WithinDays(req.StartDate, maxTripDays))
	if err := errors.Join(startDateRule(req.StartDate), endDateRule(req.EndDate), rangeRule(req.EndDate)); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	start, _ := validate.ParseDate(req.StartDate)
	end, _ := validate.ParseDate(req.EndDate)

	res, err := h.useCase.Generate(r.Context(), req.Destination, start, end, req.UseAI)
	if err != nil {
		utils.WriteDomainError(w, r, h.logger, err)
		return
	}

	json.Write(w, http.StatusOK, generateResponse{
		Source:     string(res.Source),
		Days:       res.Itinerary.Days,
		Activities: res.Itinerary.Activities,
		Reason:     res.Reason,
	})
}
