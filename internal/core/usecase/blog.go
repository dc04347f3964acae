package usecase

import (
	"context"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

// PostsPerPage - размер страницы блога
const PostsPerPage = 9

type ListPostsUseCase struct {
	source port.ContentSourcePort
}

func NewListPostsUseCase(source port.ContentSourcePort) *ListPostsUseCase {
	return &ListPostsUseCase{source: source}
}

func (uc *ListPostsUseCase) Execute(ctx context.Context, page int) (*domain.PostPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListPosts",
		"page":     page,
	})

	if page < 1 {
		page = 1
	}

	result, err := uc.source.ListPosts(ctx, page, PostsPerPage)
	if err != nil {
		ucLogger.Error("Content source returned an error", err, nil)
		return nil, err
	}
	if result == nil {
		result = &domain.PostPage{}
	}
	if result.CurrentPage == 0 {
		result.CurrentPage = page
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"items_on_page": len(result.Items)})
	return result, nil
}

type GetPostUseCase struct {
	source port.ContentSourcePort
}

func NewGetPostUseCase(source port.ContentSourcePort) *GetPostUseCase {
	return &GetPostUseCase{source: source}
}

func (uc *GetPostUseCase) Execute(ctx context.Context, slug string) (*domain.Post, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetPost",
		"slug":     slug,
	})

	post, err := uc.source.GetPost(ctx, slug)
	if err != nil {
		ucLogger.Error("Content source returned an error", err, nil)
		return nil, err
	}
	if post == nil {
		ucLogger.Info("Post not found", nil)
		return nil, domain.ErrNotFound
	}
	return post, nil
}
