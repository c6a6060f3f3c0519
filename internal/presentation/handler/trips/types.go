package trips

import (
	"errors"
	"fmt"
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/validate"
)

type saveTripRequest struct {
	ItineraryName string             `json:"itineraryName" example:"Summer in Lisbon"`
	Destination   string             `json:"destination" example:"Lisbon"`
	StartDate     string             `json:"startDate" example:"2025-06-20"`
	EndDate       string             `json:"endDate" example:"2025-06-23"`
	Days          domain.DayList     `json:"days" swaggertype:"array,string"`
	Activities    domain.ActivityMap `json:"activities" swaggertype:"object"`
}

var (
	itineraryNameRule = validate.Field("itineraryName", validate.Required(), validate.MaxLength(120))
	destinationRule   = validate.Field("destination", validate.Required(), validate.MaxLength(200))
	startDateRule     = validate.Field("startDate", validate.Required(), validate.Date())
	endDateRule       = validate.Field("endDate", validate.Required(), validate.Date())
)

func (req saveTripRequest) toInput() (domain.SoloTripInput, error) {
	if err := errors.Join(
		itineraryNameRule(req.ItineraryName),
		destinationRule(req.Destination),
		startDateRule(req.StartDate),
		endDateRule(req.EndDate),
	); err != nil {
		return domain.SoloTripInput{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	start, _ := validate.ParseDate(req.StartDate)
	end, _ := validate.ParseDate(req.EndDate)
	if end.Before(start) {
		return domain.SoloTripInput{}, fmt.Errorf("%w: endDate must not precede startDate", domain.ErrInvalidInput)
	}

	return domain.SoloTripInput{
		ItineraryName: req.ItineraryName,
		Destination:   req.Destination,
		StartDate:     start,
		EndDate:       end,
		Days:          []string(req.Days),
		Activities:    req.Activities.Strings(),
	}, nil
}

type tripResponse struct {
	ID            string              `json:"id"`
	ItineraryName string              `json:"itineraryName"`
	Destination   string              `json:"destination"`
	StartDate     time.Time           `json:"startDate"`
	EndDate       time.Time           `json:"endDate"`
	Days          []string            `json:"days"`
	Activities    map[string][]string `json:"activities"`
}

type listTripsResponse struct {
	CurrentTrips []tripResponse `json:"currentTrips"`
	PastTrips    []tripResponse `json:"pastTrips"`
}

type deleteTripResponse struct {
	Message string `json:"message" example:"Trip deleted"`
}

func toTripResponse(t domain.SoloTrip) tripResponse {
	days := t.Days
	if days == nil {
		days = []string{}
	}
	activities := t.Activities
	if activities == nil {
		activities = map[string][]string{}
	}

	return tripResponse{
		ID:            t.ID,
		ItineraryName: t.ItineraryName,
		Destination:   t.Destination,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		Days:          days,
		Activities:    activities,
	}
}

func toTripResponses(trips []domain.SoloTrip) []tripResponse {
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	return out
}
