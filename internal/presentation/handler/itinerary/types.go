package itinerary

type generateRequest struct {
	Destination string `json:"destination" example:"Kyoto"`
	StartDate   string `json:"startDate" example:"2025-04-01"`
	EndDate     string `json:"endDate" example:"2025-04-03"`
	UseAI       bool   `json:"useAI"`
}

type generateResponse struct {
	Source     string              `json:"source" enums:"manual,ai,fallback"`
	Days       []string            `json:"days"`
	Activities map[string][]string `json:"activities"`
	Reason     string              `json:"reason,omitempty"`
}
