package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hilthontt/tripsync/internal/domain"
	"github.com/hilthontt/tripsync/internal/infrastructure/contracts"
	"github.com/hilthontt/tripsync/internal/infrastructure/logging"
	"github.com/hilthontt/tripsync/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

// TripConsumer turns trip events into audit log entries.
type TripConsumer struct {
	rabbitmq *messaging.RabbitMQ
	audit    domain.TripAuditRepository
	logger   logging.Logger
}

func NewTripConsumer(rabbitmq *messaging.RabbitMQ, audit domain.TripAuditRepository, logger logging.Logger) *TripConsumer {
	return &TripConsumer{
		rabbitmq: rabbitmq,
		audit:    audit,
		logger:   logger,
	}
}

func (c *TripConsumer) Listen(ctx context.Context) error {
	return c.rabbitmq.ConsumeMessages(ctx, messaging.TripsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		err := c.handle(ctx, msg.RoutingKey, msg.Body)
		if err != nil {
			c.logger.Error(logging.RabbitMQ, logging.Insert, "failed to record trip event", map[logging.ExtraKey]any{
				logging.EventType:    msg.RoutingKey,
				logging.ErrorMessage: err.Error(),
			})
		}
		return err
	})
}

func (c *TripConsumer) handle(ctx context.Context, routingKey string, body []byte) error {
	var message contracts.AmqpMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	var payload messaging.TripEventData
	if err := json.Unmarshal(message.Data, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	var entry *domain.TripAuditLog
	switch routingKey {
	case contracts.EventTripCreated:
		entry = domain.NewTripCreatedLog(payload.TripCode, payload.UserID, payload.TripName)
	case contracts.EventMemberJoined:
		entry = domain.NewMemberJoinedLog(payload.TripCode, payload.UserID, payload.MemberCount)
	case contracts.EventItineraryUpdated:
		entry = domain.NewItineraryUpdatedLog(payload.TripCode, payload.UserID, payload.DayCount)
	default:
		return fmt.Errorf("unknown routing key %q", routingKey)
	}

	return c.audit.Log(ctx, entry)
}
