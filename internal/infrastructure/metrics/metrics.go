package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const ServiceName = "tripsync"

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "http", "request_duration_seconds"),
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"method", "route", "status"})
	HubConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "hub", "connections"),
		Help: "Number of registered realtime connections",
	})
	HubRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "hub", "rooms"),
		Help: "Number of trip rooms with at least one connection",
	})
	HubEventsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "hub", "events_sent_total"),
		Help: "Events queued to connections, by event type",
	}, []string{"event"})
	HubEventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "hub", "events_dropped_total"),
		Help: "Events dropped because a connection's send buffer was full",
	}, []string{"event"})
	ItineraryGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "itinerary", "generations_total"),
		Help: "Itinerary generations by result source",
	}, []string{"source"})
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "http", "rate_limited_total"),
		Help: "Requests rejected by the rate limiter",
	})
	goRoutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "go", "goroutines"),
		Help: "Number of goroutines at last scrape",
	})
	sysMemoryAlloc = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "sys", "memory_alloc_bytes"),
		Help: "Bytes of allocated heap objects at last scrape",
	})
)
