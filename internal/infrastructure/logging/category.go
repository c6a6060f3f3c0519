package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	IO              Category = "IO"
	Internal        Category = "Internal"
	MongoDB         Category = "MongoDB"
	Redis           Category = "Redis"
	RabbitMQ        Category = "RabbitMQ"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
	WebSocket       Category = "WebSocket"
	AI              Category = "AI"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// Collaboration
	TripCreate      SubCategory = "TripCreate"
	TripJoin        SubCategory = "TripJoin"
	ItineraryUpdate SubCategory = "ItineraryUpdate"
	Generation      SubCategory = "Generation"

	// WebSocket
	Connection SubCategory = "Connection"
	Room       SubCategory = "Room"
	Broadcast  SubCategory = "Broadcast"

	// Persistence
	Insert SubCategory = "Insert"
	Select SubCategory = "Select"
	Update SubCategory = "Update"
	Delete SubCategory = "Delete"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	ClientIp     ExtraKey = "ClientIp"
	HostIp       ExtraKey = "HostIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	BodySize     ExtraKey = "BodySize"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	RequestBody  ExtraKey = "RequestBody"
	ResponseBody ExtraKey = "ResponseBody"
	ErrorMessage ExtraKey = "ErrorMessage"
	TripCode     ExtraKey = "TripCode"
	UserID       ExtraKey = "UserId"
	ConnectionID ExtraKey = "ConnectionId"
	EventType    ExtraKey = "EventType"
	Destination  ExtraKey = "Destination"
	RequestID    ExtraKey = "RequestId"
)
