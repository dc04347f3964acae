package usecase

import (
	"context"
	"sync"
	"versus-web/internal/core/domain"
)

// fakeSource - источник контента в памяти. Запоминает последний запрос листинга.
type fakeSource struct {
	mu sync.Mutex

	properties map[string]*domain.Property
	page       *domain.PropertyPage
	posts      *domain.PostPage
	post       *domain.Post
	team       []domain.TeamMember
	pages      map[string]*domain.LegalPage
	err        error

	lastFilters domain.FilterState
	lastPage    int
	lastPerPage int
	pageCalls   int
}

func (s *fakeSource) ListProperties(ctx context.Context, filters domain.FilterState, page, perPage int) (*domain.PropertyPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilters, s.lastPage, s.lastPerPage = filters, page, perPage
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func (s *fakeSource) GetProperty(ctx context.Context, slug string) (*domain.Property, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.properties[slug], nil
}

func (s *fakeSource) ListPosts(ctx context.Context, page, perPage int) (*domain.PostPage, error) {
	s.mu.Lock()
	s.lastPage, s.lastPerPage = page, perPage
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.posts, nil
}

func (s *fakeSource) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *fakeSource) ListTeam(ctx context.Context) ([]domain.TeamMember, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.team, nil
}

func (s *fakeSource) GetPage(ctx context.Context, slug string) (*domain.LegalPage, error) {
	s.mu.Lock()
	s.pageCalls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.pages[slug], nil
}

// mapStorage - хранилище согласия в памяти
type mapStorage struct {
	values map[string]string
	err    error
}

func newMapStorage() *mapStorage {
	return &mapStorage{values: make(map[string]string)}
}

func (s *mapStorage) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *mapStorage) Set(key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	return nil
}
