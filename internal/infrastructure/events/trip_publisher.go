package events

import (
	"context"
	"encoding/json"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/contracts"
	"github.com/hilthontt/tripsync/internal/infrastructure/messaging"
)

// TripPublisher announces collaboration changes to other services.
type TripPublisher interface {
	PublishTripCreated(ctx context.Context, trip domain.Trip) error
	PublishMemberJoined(ctx context.Context, trip domain.Trip, userID string) error
	PublishItineraryUpdated(ctx context.Context, trip domain.Trip, userID string) error
}

type rabbitTripPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewTripPublisher(rabbitmq *messaging.RabbitMQ) TripPublisher {
	return &rabbitTripPublisher{rabbitmq: rabbitmq}
}

func (p *rabbitTripPublisher) PublishTripCreated(ctx context.Context, trip domain.Trip) error {
	return p.publish(ctx, contracts.EventTripCreated, trip, trip.Members[0])
}

func (p *rabbitTripPublisher) PublishMemberJoined(ctx context.Context, trip domain.Trip, userID string) error {
	return p.publish(ctx, contracts.EventMemberJoined, trip, userID)
}

func (p *rabbitTripPublisher) PublishItineraryUpdated(ctx context.Context, trip domain.Trip, userID string) error {
	return p.publish(ctx, contracts.EventItineraryUpdated, trip, userID)
}

func (p *rabbitTripPublisher) publish(ctx context.Context, routingKey string, trip domain.Trip, userID string) error {
	data, err := json.Marshal(tripEventData(trip, userID))
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		UserID: userID,
		Data:   data,
	})
}

func tripEventData(trip domain.Trip, userID string) messaging.TripEventData {
	return messaging.TripEventData{
		TripCode:    trip.TripCode,
		TripName:    trip.TripName,
		UserID:      userID,
		MemberCount: len(trip.Members),
		DayCount:    len(trip.Days),
	}
}

type nopTripPublisher struct{}

// NewNopTripPublisher is used when messaging is disabled.
func NewNopTripPublisher() TripPublisher {
	return nopTripPublisher{}
}

func (nopTripPublisher) PublishTripCreated(context.Context, domain.Trip) error { return nil }

func (nopTripPublisher) PublishMemberJoined(context.Context, domain.Trip, string) error { return nil }

func (nopTripPublisher) PublishItineraryUpdated(context.Context, domain.Trip, string) error {
	return nil
}
