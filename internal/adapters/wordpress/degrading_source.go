package wordpress

import (
	"context"
	"errors"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

// DegradingSource оборачивает источник контента и никогда не возвращает ошибку:
// коллекции превращаются в пустые, одиночные объекты - в nil. Страницы рисуют
// пустое состояние. Каждая проглоченная ошибка пишется в лог, кроме "не найдено".
type DegradingSource struct {
	next port.ContentSourcePort
}

func NewDegradingSource(next port.ContentSourcePort) *DegradingSource {
	return &DegradingSource{next: next}
}

func (s *DegradingSource) swallow(ctx context.Context, method string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		return
	}
	contextkeys.LoggerFromContext(ctx).Error("Content fetch failed, serving empty result", err, port.Fields{
		"component": "DegradingSource",
		"method":    method,
	})
}

func (s *DegradingSource) ListProperties(ctx context.Context, filters domain.FilterState, page, perPage int) (*domain.PropertyPage, error) {
	result, err := s.next.ListProperties(ctx, filters, page, perPage)
	if err != nil || result == nil {
		if err != nil {
			s.swallow(ctx, "ListProperties", err)
		}
		return &domain.PropertyPage{Items: []domain.Property{}, CurrentPage: page}, nil
	}
	return result, nil
}

func (s *DegradingSource) GetProperty(ctx context.Context, slug string) (*domain.Property, error) {
	property, err := s.next.GetProperty(ctx, slug)
	if err != nil {
		s.swallow(ctx, "GetProperty", err)
		return nil, nil
	}
	return property, nil
}

func (s *DegradingSource) ListPosts(ctx context.Context, page, perPage int) (*domain.PostPage, error) {
	result, err := s.next.ListPosts(ctx, page, perPage)
	if err != nil || result == nil {
		if err != nil {
			s.swallow(ctx, "ListPosts", err)
		}
		return &domain.PostPage{Items: []domain.Post{}, CurrentPage: page}, nil
	}
	return result, nil
}

func (s *DegradingSource) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := s.next.GetPost(ctx, slug)
	if err != nil {
		s.swallow(ctx, "GetPost", err)
		return nil, nil
	}
	return post, nil
}

func (s *DegradingSource) ListTeam(ctx context.Context) ([]domain.TeamMember, error) {
	members, err := s.next.ListTeam(ctx)
	if err != nil {
		s.swallow(ctx, "ListTeam", err)
		return []domain.TeamMember{}, nil
	}
	if members == nil {
		members = []domain.TeamMember{}
	}
	return members, nil
}

func (s *DegradingSource) GetPage(ctx context.Context, slug string) (*domain.LegalPage, error) {
	page, err := s.next.GetPage(ctx, slug)
	if err != nil {
		s.swallow(ctx, "GetPage", err)
		return nil, nil
	}
	return page, nil
}
