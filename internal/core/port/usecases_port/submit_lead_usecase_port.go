package usecases_port

import (
	"context"
	"versus-web/internal/core/domain"
)

type SubmitLeadUseCase interface {
	Execute(ctx context.Context, input domain.LeadInput) (*domain.Lead, error)
}
