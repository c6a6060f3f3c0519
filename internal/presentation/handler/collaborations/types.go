package collaborations

import (
	"time"

	"github.com/hilthontt/tripsync/internal/domain"
)

type createTripRequest struct {
	TripName string `json:"tripName" example:"Goa 2025"`
}

type joinTripRequest struct {
	TripCode string `json:"tripCode" example:"K7QW2M"`
}

// updateItineraryRequest leaves a field nil when it is absent or null.
type updateItineraryRequest struct {
	Days       *domain.DayList     `json:"days" swaggertype:"array,string"`
	Activities *domain.ActivityMap `json:"activities" swaggertype:"object"`
}

type tripResponse struct {
	ID         string              `json:"id"`
	TripCode   string              `json:"tripCode" example:"K7QW2M"`
	TripName   string              `json:"tripName" example:"Goa 2025"`
	Members    []string            `json:"members"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

type joinTripResponse struct {
	Message    string              `json:"message" example:"Successfully joined the trip!"`
	TripName   string              `json:"tripName"`
	TripCode   string              `json:"tripCode"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
}

type updateItineraryResponse struct {
	Message    string              `json:"message" example:"Itinerary updated successfully!"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
}

type tripDetailsResponse struct {
	TripName   string              `json:"tripName"`
	TripCode   string              `json:"tripCode"`
	Members    []string            `json:"members"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
}

type listTripsResponse struct {
	CurrentTrips []tripResponse `json:"currentTrips"`
	PastTrips    []tripResponse `json:"pastTrips"`
}

func orEmpty(it domain.Itinerary) domain.Itinerary {
	if it.Days == nil {
		it.Days = []string{}
	}
	if it.Activities == nil {
		it.Activities = map[string][]string{}
	}
	return it
}

func toTripResponse(t domain.Trip) tripResponse {
	it := orEmpty(t.Itinerary)
	members := t.Members
	if members == nil {
		members = []string{}
	}

	return tripResponse{
		ID:         t.ID,
		TripCode:   t.TripCode,
		TripName:   t.TripName,
		Members:    members,
		Days:       it.Days,
		Activities: it.Activities,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func toTripResponses(trips []domain.Trip) []tripResponse {
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripResponse(t))
	}
	return out
}
