package port

import (
	"context"
	"versus-web/internal/core/domain"
)

type LeadRepositoryPort interface {
	Save(ctx context.Context, lead domain.Lead) error
}

// LeadNotifierPort уведомляет CRM о новой заявке
type LeadNotifierPort interface {
	NotifyLeadCreated(ctx context.Context, lead domain.Lead) error
}

// LeadValidatorPort проверяет форму по JSON-схеме
type LeadValidatorPort interface {
	ValidateLead(input domain.LeadInput) error
}
