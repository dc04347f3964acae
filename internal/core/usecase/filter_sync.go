package usecase

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

// FilterSynchronizer держит локальную (еще не примененную) копию фильтров
// листинга и переносит ее в URL только по явному действию пользователя.
// Исключение - сортировка, она применяется сразу.
type FilterSynchronizer struct {
	basePath  string
	navigator port.NavigatorPort

	mu        sync.Mutex
	committed domain.FilterState // то, что сейчас в URL
	local     domain.FilterState // то, что пользователь накрутил в форме

	// inFlight - число незавершенных переходов. Loading() считается от него,
	// а не от таймера.
	inFlight atomic.Int32
}

// NewFilterSynchronizer инициализирует фильтры из query-параметров текущего URL.
func NewFilterSynchronizer(basePath string, current url.Values, navigator port.NavigatorPort) *FilterSynchronizer {
	state := domain.FilterStateFromQuery(current)
	return &FilterSynchronizer{
		basePath:  basePath,
		navigator: navigator,
		committed: state,
		local:     state,
	}
}

// UpdateLocalFilter меняет только локальное состояние, URL не трогается.
func (s *FilterSynchronizer) UpdateLocalFilter(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local.Set(field, value)
}

// LocalFilters возвращает копию локального состояния.
func (s *FilterSynchronizer) LocalFilters() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.local
}

// CommittedFilters возвращает фильтры, которые сейчас записаны в URL.
func (s *FilterSynchronizer) CommittedFilters() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// ApplyFilters пишет непустые локальные поля в URL и сбрасывает пагинацию.
func (s *FilterSynchronizer) ApplyFilters(ctx context.Context) (string, error) {
	s.mu.Lock()
	state := s.local
	s.mu.Unlock()

	return s.commit(ctx, "apply", state)
}

// ClearFilters сбрасывает все фильтры и переходит на адрес без query-строки.
func (s *FilterSynchronizer) ClearFilters(ctx context.Context) (string, error) {
	state := domain.DefaultFilterState()

	s.mu.Lock()
	s.local = state
	s.mu.Unlock()

	return s.commit(ctx, "clear", state)
}

// SetSort применяет сортировку сразу, без кнопки "Buscar".
// Неприменённые локальные правки других полей в URL не попадают.
func (s *FilterSynchronizer) SetSort(ctx context.Context, value string) (string, error) {
	s.mu.Lock()
	s.local.Sort = value
	state := s.committed
	state.Sort = value
	s.mu.Unlock()

	return s.commit(ctx, "sort", state)
}

// Loading - true, пока выполняется хотя бы один переход.
func (s *FilterSynchronizer) Loading() bool {
	return s.inFlight.Load() > 0
}

// TargetURL строит адрес для набора фильтров без перехода.
func (s *FilterSynchronizer) TargetURL(state domain.FilterState) string {
	return domain.PageURL(s.basePath, state, 1)
}

func (s *FilterSynchronizer) commit(ctx context.Context, action string, state domain.FilterState) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "FilterSynchronizer",
		"action":    action,
	})

	target := s.TargetURL(state)
	logger.Debug("Navigating to filtered listing", port.Fields{"target": target})

	s.inFlight.Add(1)
	err := s.navigator.Navigate(ctx, target)
	s.inFlight.Add(-1)

	if err != nil {
		logger.Error("Navigation failed", err, port.Fields{"target": target})
		return target, fmt.Errorf("failed to navigate to %s: %w", target, err)
	}

	s.mu.Lock()
	s.committed = state
	s.mu.Unlock()

	return target, nil
}
