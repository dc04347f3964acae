package port

import (
	"context"
	"versus-web/internal/core/domain"
)

// ContentSourcePort - источник контента (headless CMS).
//
// Реализация клиента CMS возвращает ошибки как есть. Страницам отдается
// обертка, которая сворачивает любую ошибку в пустой результат или nil.
type ContentSourcePort interface {
	ListProperties(ctx context.Context, filters domain.FilterState, page, perPage int) (*domain.PropertyPage, error)
	GetProperty(ctx context.Context, slug string) (*domain.Property, error)
	ListPosts(ctx context.Context, page, perPage int) (*domain.PostPage, error)
	GetPost(ctx context.Context, slug string) (*domain.Post, error)
	ListTeam(ctx context.Context) ([]domain.TeamMember, error)
	GetPage(ctx context.Context, slug string) (*domain.LegalPage, error)
}
