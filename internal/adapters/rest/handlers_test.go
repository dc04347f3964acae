package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"
	"versus-web/internal/adapters/consent"
	"versus-web/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListing_EmptyStateWithStatus200(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doGet(t, site, "/propiedades?city=Nowhere")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), emptyListingText)
	assert.NotContains(t, rec.Body.String(), `class="pagination"`)
}

func TestListing_PassesFiltersAndPage(t *testing.T) {
	var gotFilters domain.FilterState
	var gotPage int
	site := newTestSite(t, siteDeps{
		findProperties: func(ctx context.Context, filters domain.FilterState, page int) (*domain.PropertyPage, error) {
			gotFilters, gotPage = filters, page
			return &domain.PropertyPage{
				Items:       []domain.Property{{Slug: "villa-mar", Title: "Villa Mar", Price: 350000, Currency: "EUR"}},
				Total:       30,
				TotalPages:  3,
				CurrentPage: page,
			}, nil
		},
	})

	rec := doGet(t, site, "/propiedades?type=villa&city=Marbella&page=2")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "villa", gotFilters.Type)
	assert.Equal(t, "Marbella", gotFilters.City)
	assert.Equal(t, 2, gotPage)

	body := rec.Body.String()
	assert.Contains(t, body, "Villa Mar")
	assert.Contains(t, body, "350.000 €")
	assert.Contains(t, body, "/propiedades/villa-mar")
	// ссылка на третью страницу сохраняет фильтры
	assert.Contains(t, body, "/propiedades?city=Marbella&amp;page=3&amp;type=villa")
	assert.NotContains(t, body, emptyListingText)
}

func TestApplyFilters_RedirectsWithCommittedQuery(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doPostForm(t, site, "/propiedades/filtros", url.Values{
		"return_query": {"city=Sevilla&page=4"},
		"type":         {"piso"},
		"city":         {"Marbella"},
		"price_max":    {"abc"},
		"price_min":    {""},
		"sort":         {domain.SortNewest},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/propiedades?city=Marbella&price_max=abc&type=piso", rec.Header().Get("Location"))
}

func TestApplyFilters_Clear(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doPostForm(t, site, "/propiedades/filtros", url.Values{
		"return_query": {"city=Sevilla&sort=price_asc&page=4"},
		"type":         {"piso"},
		"action":       {"clear"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, listingPath, rec.Header().Get("Location"))
}

func TestApplySort_KeepsCommittedFiltersOnly(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doPostForm(t, site, "/propiedades/orden", url.Values{
		"return_query": {"city=Marbella&page=2"},
		"sort":         {domain.SortPriceAsc},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/propiedades?city=Marbella&sort=price_asc", rec.Header().Get("Location"))
}

func TestPropertyDetail(t *testing.T) {
	site := newTestSite(t, siteDeps{
		getDetails: func(ctx context.Context, slug string) (*domain.PropertyDetails, error) {
			if slug != "villa-mar" {
				return nil, domain.ErrNotFound
			}
			return &domain.PropertyDetails{
				Property: domain.Property{Slug: "villa-mar", Title: "Villa Mar", Description: "<p>Piscina</p>"},
				Nearby:   []domain.Property{{Slug: "chalet-sol", Title: "Chalet Sol"}},
			}, nil
		},
	})

	rec := doGet(t, site, "/propiedades/villa-mar")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<p>Piscina</p>")
	assert.Contains(t, body, "Chalet Sol")
	assert.Contains(t, body, `name="property_slug" value="villa-mar"`)

	rec = doGet(t, site, "/propiedades/no-existe")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Página no encontrada")
}

func TestTeam_EmptyState(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doGet(t, site, "/equipo")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), emptyTeamText)
}

func TestTeam_BioIsEscaped(t *testing.T) {
	site := newTestSite(t, siteDeps{
		getTeam: func(ctx context.Context) ([]domain.TeamMember, error) {
			return []domain.TeamMember{{Name: "Ana García", Role: "Directora", Bio: "<b>hola</b>"}}, nil
		},
	})

	rec := doGet(t, site, "/equipo")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ana García")
	assert.Contains(t, body, "&lt;b&gt;hola&lt;/b&gt;")
	assert.NotContains(t, body, emptyTeamText)
}

func TestBlog_EmptyAndNotFound(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doGet(t, site, "/blog")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), emptyBlogText)

	rec = doGet(t, site, "/blog/no-existe")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLegalPages(t *testing.T) {
	site := newTestSite(t, siteDeps{
		getLegal: func(ctx context.Context, slug string) (*domain.LegalPage, error) {
			if slug == "cookies" {
				return &domain.LegalPage{Slug: slug, Title: "Política de cookies", Content: "<p>Usamos cookies</p>", UpdatedAt: time.Now()}, nil
			}
			return nil, domain.ErrNotFound
		},
	})

	rec := doGet(t, site, "/cookies")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<p>Usamos cookies</p>")

	rec = doGet(t, site, "/terminos")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitContact(t *testing.T) {
	var got domain.LeadInput
	site := newTestSite(t, siteDeps{
		submitLead: func(ctx context.Context, input domain.LeadInput) (*domain.Lead, error) {
			got = input
			if input.Email == "" {
				return nil, &domain.LeadValidationError{Fields: map[string]string{"email": "required"}}
			}
			return &domain.Lead{Kind: input.Kind}, nil
		},
	})

	t.Run("validation error re-renders the form", func(t *testing.T) {
		rec := doPostForm(t, site, contactPath, url.Values{
			"name":    {"Ana"},
			"message": {"Hola, quiero visitar el piso"},
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), `value="Ana"`)
		assert.Equal(t, domain.LeadContact, got.Kind)
		assert.False(t, got.PrivacyAccepted)
	})

	t.Run("success redirects with sent flag", func(t *testing.T) {
		rec := doPostForm(t, site, contactPath, url.Values{
			"name":             {" Ana "},
			"email":            {"ana@example.com"},
			"message":          {"Hola, quiero visitar el piso"},
			"privacy_accepted": {"on"},
		})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/contacto?enviado=1", rec.Header().Get("Location"))
		assert.Equal(t, "Ana", got.Name)
		assert.True(t, got.PrivacyAccepted)
	})
}

func TestSubmitSell_UseCaseFailure(t *testing.T) {
	site := newTestSite(t, siteDeps{
		submitLead: func(ctx context.Context, input domain.LeadInput) (*domain.Lead, error) {
			assert.Equal(t, domain.LeadValuation, input.Kind)
			return nil, assert.AnError
		},
	})

	rec := doPostForm(t, site, sellPath, url.Values{"name": {"Luis"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestConsent_BannerLifecycle(t *testing.T) {
	store := consent.NewMemoryStorage()
	site := newTestSite(t, siteDeps{consentStore: store})

	rec := doGet(t, site, "/equipo")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="consent-banner"`)

	rec = doPostForm(t, site, "/consentimiento", url.Values{
		"action":    {"accept_all"},
		"return_to": {"/equipo"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/equipo", rec.Header().Get("Location"))

	raw, ok := store.Get(domain.ConsentStorageKey)
	require.True(t, ok)
	var record domain.ConsentRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.True(t, record.Preferences.Analytics)
	assert.Equal(t, "1.0", record.Version)

	rec = doGet(t, site, "/equipo")
	assert.NotContains(t, rec.Body.String(), `id="consent-banner"`)
}

func TestConsent_JSONResponse(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doPostForm(t, site, "/consentimiento", url.Values{
		"action":          {"custom"},
		"personalization": {"on"},
	}, "Accept", "application/json")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp consentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Preferences.Necessary)
	assert.False(t, resp.Preferences.Analytics)
	assert.True(t, resp.Preferences.Personalization)
}

func TestConsent_RejectsUnknownActionAndOpenRedirect(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doPostForm(t, site, "/consentimiento", url.Values{"action": {"maybe"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doPostForm(t, site, "/consentimiento", url.Values{
		"action":    {"reject"},
		"return_to": {"//evil.example.com"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSafeReturnPath(t *testing.T) {
	assert.Equal(t, "/blog?page=2", safeReturnPath("/blog?page=2"))
	assert.Equal(t, "/", safeReturnPath(""))
	assert.Equal(t, "/", safeReturnPath("https://evil.example.com"))
	assert.Equal(t, "/", safeReturnPath("//evil.example.com"))
	assert.Equal(t, "/", safeReturnPath(`/\evil.example.com`))
}

func TestAPI_Pagination(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doGet(t, site, "/api/v1/pagination?current=5&total=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PaginationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.ShouldPaginate)

	var rendered []int
	for _, m := range resp.Markers {
		if m.Ellipsis {
			rendered = append(rendered, 0)
			continue
		}
		rendered = append(rendered, m.Page)
	}
	assert.Equal(t, []int{1, 0, 4, 5, 6, 0, 10}, rendered)
	assert.True(t, resp.Markers[3].Current)

	rec = doGet(t, site, "/api/v1/pagination?current=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(t, site, "/api/v1/pagination?total=0")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.ShouldPaginate)
	assert.Empty(t, resp.Markers)
}

func TestAPI_Properties(t *testing.T) {
	site := newTestSite(t, siteDeps{
		findProperties: func(ctx context.Context, filters domain.FilterState, page int) (*domain.PropertyPage, error) {
			return &domain.PropertyPage{
				Items:       []domain.Property{{Slug: "piso-centro", Title: "Piso centro", Price: 0}},
				Total:       1,
				TotalPages:  1,
				CurrentPage: 1,
			}, nil
		},
	})

	rec := doGet(t, site, "/api/v1/properties?city=Marbella")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PaginatedPropertiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Consultar precio", resp.Data[0].PriceText)
	assert.Equal(t, "city=Marbella", resp.Query)
	assert.False(t, resp.Pagination.ShouldPaginate)
}

func TestAPI_PropertiesUseCaseError(t *testing.T) {
	site := newTestSite(t, siteDeps{
		findProperties: func(ctx context.Context, filters domain.FilterState, page int) (*domain.PropertyPage, error) {
			return nil, assert.AnError
		},
	})

	rec := doGet(t, site, "/api/v1/properties")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthzAndTraceID(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	req := httptestRequest(http.MethodGet, "/healthz")
	req.Header.Set("X-Trace-ID", "abc-123")
	rec := serve(site, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get("X-Trace-ID"))

	rec = doGet(t, site, "/equipo")
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestStaticAndUnknownRoutes(t *testing.T) {
	site := newTestSite(t, siteDeps{})

	rec := doGet(t, site, "/static/site.css")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(t, site, "/no/existe")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/no/existe")
}
