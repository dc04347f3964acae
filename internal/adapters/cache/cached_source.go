package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

// keyPrefix - общий префикс ключей, чтобы сбрасывать кэш сайта одной командой
const keyPrefix = "versus:cms:"

// CachedSource - read-through кэш ответов CMS с временем жизни (аналог ISR revalidate).
// Пустые результаты и ошибки не кэшируются, чтобы временный сбой CMS не
// закреплял пустую страницу на весь TTL.
type CachedSource struct {
	next  port.ContentSourcePort
	cache port.CachePort
	ttl   time.Duration
}

func NewCachedSource(next port.ContentSourcePort, cache port.CachePort, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl}
}

// lookup читает ключ из кэша. Ошибки кэша не фатальны: идем в CMS.
func lookup[T any](ctx context.Context, c port.CachePort, key string) (*T, bool) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CachedSource",
		"cache_key": key,
	})

	data, found, err := c.Get(ctx, key)
	if err != nil {
		logger.Warn("Cache read failed", port.Fields{"error": err.Error()})
		return nil, false
	}
	if !found {
		logger.Debug("Cache miss", nil)
		return nil, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Warn("Cached value is corrupted", port.Fields{"error": err.Error()})
		return nil, false
	}
	logger.Debug("Cache hit", nil)
	return &value, true
}

func (s *CachedSource) store(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Cache write failed", port.Fields{
			"component": "CachedSource",
			"cache_key": key,
			"error":     err.Error(),
		})
	}
}

func propertiesKey(filters domain.FilterState, page, perPage int) string {
	return keyPrefix + "properties:" + filters.Query() + ":" + strconv.Itoa(page) + ":" + strconv.Itoa(perPage)
}

func (s *CachedSource) ListProperties(ctx context.Context, filters domain.FilterState, page, perPage int) (*domain.PropertyPage, error) {
	key := propertiesKey(filters, page, perPage)
	if cached, ok := lookup[domain.PropertyPage](ctx, s.cache, key); ok {
		return cached, nil
	}

	result, err := s.next.ListProperties(ctx, filters, page, perPage)
	if err != nil {
		return nil, err
	}
	if result != nil && !result.IsEmpty() {
		s.store(ctx, key, result)
	}
	return result, nil
}

func (s *CachedSource) GetProperty(ctx context.Context, slug string) (*domain.Property, error) {
	key := keyPrefix + "property:" + slug
	if cached, ok := lookup[domain.Property](ctx, s.cache, key); ok {
		return cached, nil
	}

	property, err := s.next.GetProperty(ctx, slug)
	if err != nil {
		return nil, err
	}
	if property != nil {
		s.store(ctx, key, property)
	}
	return property, nil
}

func (s *CachedSource) ListPosts(ctx context.Context, page, perPage int) (*domain.PostPage, error) {
	key := fmt.Sprintf("%sposts:%d:%d", keyPrefix, page, perPage)
	if cached, ok := lookup[domain.PostPage](ctx, s.cache, key); ok {
		return cached, nil
	}

	result, err := s.next.ListPosts(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	if result != nil && !result.IsEmpty() {
		s.store(ctx, key, result)
	}
	return result, nil
}

func (s *CachedSource) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	key := keyPrefix + "post:" + slug
	if cached, ok := lookup[domain.Post](ctx, s.cache, key); ok {
		return cached, nil
	}

	post, err := s.next.GetPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post != nil {
		s.store(ctx, key, post)
	}
	return post, nil
}

func (s *CachedSource) ListTeam(ctx context.Context) ([]domain.TeamMember, error) {
	key := keyPrefix + "team"
	if cached, ok := lookup[[]domain.TeamMember](ctx, s.cache, key); ok {
		return *cached, nil
	}

	members, err := s.next.ListTeam(ctx)
	if err != nil {
		return nil, err
	}
	if len(members) > 0 {
		s.store(ctx, key, members)
	}
	return members, nil
}

func (s *CachedSource) GetPage(ctx context.Context, slug string) (*domain.LegalPage, error) {
	key := keyPrefix + "page:" + slug
	if cached, ok := lookup[domain.LegalPage](ctx, s.cache, key); ok {
		return cached, nil
	}

	page, err := s.next.GetPage(ctx, slug)
	if err != nil {
		return nil, err
	}
	if page != nil {
		s.store(ctx, key, page)
	}
	return page, nil
}
