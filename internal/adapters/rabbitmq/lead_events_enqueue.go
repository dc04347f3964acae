package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventPublisher - то, что адаптеру нужно от производителя (pkg/rabbitmq.Publisher)
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// leadCreatedEvent - DTO события для CRM
type leadCreatedEvent struct {
	LeadID          string    `json:"lead_id"`
	Kind            string    `json:"kind"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Message         string    `json:"message,omitempty"`
	PropertySlug    string    `json:"property_slug,omitempty"`
	PropertyAddress string    `json:"property_address,omitempty"`
	PropertyType    string    `json:"property_type,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// LeadEventsAdapter реализует port.LeadNotifierPort через RabbitMQ.
type LeadEventsAdapter struct {
	producer   EventPublisher
	routingKey string
}

func NewLeadEventsAdapter(producer EventPublisher, routingKey string) (*LeadEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routing key cannot be empty")
	}
	return &LeadEventsAdapter{producer: producer, routingKey: routingKey}, nil
}

func (a *LeadEventsAdapter) NotifyLeadCreated(ctx context.Context, lead domain.Lead) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "LeadEventsAdapter",
		"routing_key": a.routingKey,
		"lead_id":     lead.ID,
	})

	body, err := json.Marshal(leadCreatedEvent{
		LeadID:          lead.ID.String(),
		Kind:            string(lead.Kind),
		Name:            lead.Name,
		Email:           lead.Email,
		Phone:           lead.Phone,
		Message:         lead.Message,
		PropertySlug:    lead.PropertySlug,
		PropertyAddress: lead.PropertyAddress,
		PropertyType:    lead.PropertyType,
		CreatedAt:       lead.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal lead event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     lead.ID.String(),
		CorrelationId: contextkeys.TraceIDFromContext(ctx),
		Timestamp:     time.Now().UTC(),
		Body:          body,
	}

	if err := a.producer.Publish(ctx, a.routingKey, msg); err != nil {
		return err
	}

	logger.Debug("Lead event published", nil)
	return nil
}
