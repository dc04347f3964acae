package noop

import (
	"context"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

// LeadRepository используется без базы данных (локальная разработка):
// заявка только пишется в лог.
type LeadRepository struct{}

func (LeadRepository) Save(ctx context.Context, lead domain.Lead) error {
	contextkeys.LoggerFromContext(ctx).Warn("Lead storage is disabled, lead is only logged", port.Fields{
		"lead_id": lead.ID,
		"kind":    lead.Kind,
		"email":   lead.Email,
	})
	return nil
}

// LeadNotifier используется, когда RabbitMQ выключен.
type LeadNotifier struct{}

func (LeadNotifier) NotifyLeadCreated(ctx context.Context, lead domain.Lead) error { return nil }
