package usecases_port

import (
	"context"
	"versus-web/internal/core/domain"
)

type GetPropertyDetailsUseCase interface {
	Execute(ctx context.Context, slug string) (*domain.PropertyDetails, error)
}
