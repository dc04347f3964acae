package usecases_port

import (
	"context"
	"versus-web/internal/core/domain"
)

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, filters domain.FilterState, page int) (*domain.PropertyPage, error)
}
