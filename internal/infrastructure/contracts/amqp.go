package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	UserID string `json:"userId"`
	Data   []byte `json:"data"`
}

// Routing keys
const (
	EventTripCreated      = "trip.created"
	EventMemberJoined     = "member.joined"
	EventItineraryUpdated = "itinerary.updated"
)

var TripEvents = []string{
	EventTripCreated,
	EventMemberJoined,
	EventItineraryUpdated,
}
