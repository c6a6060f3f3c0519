package messaging

const (
	TripsQueue      = "trips"
	DeadLetterQueue = "dead_letter_queue"
)

// TripEventData is the payload of every trip routing key.
type TripEventData struct {
	TripCode    string `json:"tripCode"`
	TripName    string `json:"tripName"`
	UserID      string `json:"userId"`
	MemberCount int    `json:"memberCount"`
	DayCount    int    `json:"dayCount"`
}
