package usecases_port

import (
	"context"
	"versus-web/internal/core/domain"
)

type GetHomeUseCase interface {
	Execute(ctx context.Context) (*domain.HomeContent, error)
}

type GetTeamUseCase interface {
	Execute(ctx context.Context) ([]domain.TeamMember, error)
}

type GetLegalPageUseCase interface {
	Execute(ctx context.Context, slug string) (*domain.LegalPage, error)
}
