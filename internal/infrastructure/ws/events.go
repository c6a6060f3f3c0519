package ws

// Client to server.
const (
	TripJoined           = "tripJoined"
	JoinTripRoom         = "joinTripRoom"
	LeaveTripRoom        = "leaveTripRoom"
	RequestItinerarySync = "requestItinerarySync"
)

// Both directions.
const (
	TripCreated      = "tripCreated"
	ItineraryUpdated = "itineraryUpdated"
	UserTyping       = "userTyping"
	PresenceUpdated  = "presenceUpdated"
)

// Server to client.
const (
	Connected              = "connected"
	ItinerarySync          = "itinerarySync"
	UserJoinedNotification = "userJoinedNotification"
	UserLeftNotification   = "userLeftNotification"

	ErrorEvent  = "error"
	JoinFailed  = "error.join"
	RateLimited = "error.rate_limited"
	BadMessage  = "error.bad_message"
)

const (
	PresenceOnline  = "online"
	PresenceOffline = "offline"
)
