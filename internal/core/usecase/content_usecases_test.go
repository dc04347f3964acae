package usecase

import (
	"context"
	"errors"
	"testing"
	"versus-web/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindProperties_ClampsPageAndUsesPageSize(t *testing.T) {
	source := &fakeSource{page: &domain.PropertyPage{
		Items:      []domain.Property{{Slug: "piso-centro"}},
		Total:      1,
		TotalPages: 1,
	}}
	uc := NewFindPropertiesUseCase(source)

	filters := domain.FilterState{Type: "piso", Sort: domain.DefaultSort}
	result, err := uc.Execute(context.Background(), filters, -3)
	require.NoError(t, err)

	assert.Equal(t, 1, source.lastPage)
	assert.Equal(t, PropertiesPerPage, source.lastPerPage)
	assert.Equal(t, filters, source.lastFilters)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Len(t, result.Items, 1)
}

func TestFindProperties_NilResultBecomesEmptyPage(t *testing.T) {
	uc := NewFindPropertiesUseCase(&fakeSource{})

	result, err := uc.Execute(context.Background(), domain.DefaultFilterState(), 2)
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
	assert.Equal(t, 2, result.CurrentPage)
}

func TestFindProperties_PropagatesSourceError(t *testing.T) {
	uc := NewFindPropertiesUseCase(&fakeSource{err: domain.ErrUpstream})
	_, err := uc.Execute(context.Background(), domain.DefaultFilterState(), 1)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGetPropertyDetails_NotFound(t *testing.T) {
	uc := NewGetPropertyDetailsUseCase(&fakeSource{})
	_, err := uc.Execute(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetPropertyDetails_NearbyByGeohash(t *testing.T) {
	villa := domain.Property{Slug: "villa-marbella", City: "Marbella", Latitude: 36.5100, Longitude: -4.8850}
	source := &fakeSource{
		properties: map[string]*domain.Property{villa.Slug: &villa},
		page: &domain.PropertyPage{Items: []domain.Property{
			villa,
			{Slug: "atico-vecino", City: "Marbella", Latitude: 36.5110, Longitude: -4.8860},
			{Slug: "lejos", City: "Marbella", Latitude: 40.4168, Longitude: -3.7038},
			{Slug: "sin-coordenadas", City: "Marbella"},
		}},
	}
	uc := NewGetPropertyDetailsUseCase(source)

	details, err := uc.Execute(context.Background(), villa.Slug)
	require.NoError(t, err)

	assert.Equal(t, villa, details.Property)
	assert.Equal(t, "Marbella", source.lastFilters.City)

	slugs := make([]string, 0, len(details.Nearby))
	for _, p := range details.Nearby {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"atico-vecino", "sin-coordenadas"}, slugs)
}

func TestGetPropertyDetails_NearbyLimit(t *testing.T) {
	base := domain.Property{Slug: "base", City: "Madrid"}
	items := []domain.Property{base}
	for _, slug := range []string{"a", "b", "c", "d", "e"} {
		items = append(items, domain.Property{Slug: slug, City: "Madrid"})
	}
	source := &fakeSource{
		properties: map[string]*domain.Property{base.Slug: &base},
		page:       &domain.PropertyPage{Items: items},
	}

	details, err := NewGetPropertyDetailsUseCase(source).Execute(context.Background(), "base")
	require.NoError(t, err)
	assert.Len(t, details.Nearby, 3)
}

func TestGetHome_PrefersFeaturedAndLimitsPosts(t *testing.T) {
	source := &fakeSource{
		page: &domain.PropertyPage{Items: []domain.Property{
			{Slug: "normal"},
			{Slug: "destacada", Featured: true},
		}},
		posts: &domain.PostPage{Items: []domain.Post{{Slug: "1"}, {Slug: "2"}, {Slug: "3"}, {Slug: "4"}}},
	}

	home, err := NewGetHomeUseCase(source).Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, home.Featured, 1)
	assert.Equal(t, "destacada", home.Featured[0].Slug)
	assert.Len(t, home.LatestPosts, 3)
}

func TestGetHome_FallsBackToLatestProperties(t *testing.T) {
	source := &fakeSource{
		page: &domain.PropertyPage{Items: []domain.Property{{Slug: "a"}, {Slug: "b"}}},
	}

	home, err := NewGetHomeUseCase(source).Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, home.Featured, 2)
	assert.Empty(t, home.LatestPosts)
}

func TestGetTeam_SortsByOrder(t *testing.T) {
	source := &fakeSource{team: []domain.TeamMember{
		{Name: "Carmen", Order: 3},
		{Name: "Andrés", Order: 1},
		{Name: "Beatriz", Order: 1},
	}}

	members, err := NewGetTeamUseCase(source).Execute(context.Background())
	require.NoError(t, err)

	names := []string{members[0].Name, members[1].Name, members[2].Name}
	assert.Equal(t, []string{"Andrés", "Beatriz", "Carmen"}, names)
}

func TestGetLegalPage(t *testing.T) {
	privacy := &domain.LegalPage{Slug: LegalPrivacy, Title: "Política de privacidad"}
	source := &fakeSource{pages: map[string]*domain.LegalPage{LegalPrivacy: privacy}}
	uc := NewGetLegalPageUseCase(source)

	page, err := uc.Execute(context.Background(), LegalPrivacy)
	require.NoError(t, err)
	assert.Equal(t, privacy, page)

	// страница есть в слагах, но в CMS ее нет
	_, err = uc.Execute(context.Background(), LegalCookies)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// произвольные страницы CMS через этот use case не отдаются
	calls := source.pageCalls
	_, err = uc.Execute(context.Background(), "sobre-nosotros")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, calls, source.pageCalls)
}

func TestBlogUseCases(t *testing.T) {
	source := &fakeSource{posts: &domain.PostPage{Items: []domain.Post{{Slug: "hola"}}, TotalPages: 1}}

	result, err := NewListPostsUseCase(source).Execute(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, PostsPerPage, source.lastPerPage)

	_, err = NewGetPostUseCase(source).Execute(context.Background(), "hola")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	source.post = &domain.Post{Slug: "hola"}
	post, err := NewGetPostUseCase(source).Execute(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "hola", post.Slug)
}
