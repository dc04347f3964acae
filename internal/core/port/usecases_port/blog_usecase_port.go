package usecases_port

import (
	"context"
	"versus-web/internal/core/domain"
)

type ListPostsUseCase interface {
	Execute(ctx context.Context, page int) (*domain.PostPage, error)
}

type GetPostUseCase interface {
	Execute(ctx context.Context, slug string) (*domain.Post, error)
}
