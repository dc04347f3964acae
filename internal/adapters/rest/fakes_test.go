package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"versus-web/internal/adapters/consent"
	logger_adapter "versus-web/internal/adapters/logger"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Функциональные фейки use case-ов: тест задает только то, что ему нужно.

type findPropertiesFunc func(ctx context.Context, filters domain.FilterState, page int) (*domain.PropertyPage, error)

func (f findPropertiesFunc) Execute(ctx context.Context, filters domain.FilterState, page int) (*domain.PropertyPage, error) {
	return f(ctx, filters, page)
}

type getDetailsFunc func(ctx context.Context, slug string) (*domain.PropertyDetails, error)

func (f getDetailsFunc) Execute(ctx context.Context, slug string) (*domain.PropertyDetails, error) {
	return f(ctx, slug)
}

type listPostsFunc func(ctx context.Context, page int) (*domain.PostPage, error)

func (f listPostsFunc) Execute(ctx context.Context, page int) (*domain.PostPage, error) {
	return f(ctx, page)
}

type getPostFunc func(ctx context.Context, slug string) (*domain.Post, error)

func (f getPostFunc) Execute(ctx context.Context, slug string) (*domain.Post, error) {
	return f(ctx, slug)
}

type getHomeFunc func(ctx context.Context) (*domain.HomeContent, error)

func (f getHomeFunc) Execute(ctx context.Context) (*domain.HomeContent, error) {
	return f(ctx)
}

type getTeamFunc func(ctx context.Context) ([]domain.TeamMember, error)

func (f getTeamFunc) Execute(ctx context.Context) ([]domain.TeamMember, error) {
	return f(ctx)
}

type getLegalFunc func(ctx context.Context, slug string) (*domain.LegalPage, error)

func (f getLegalFunc) Execute(ctx context.Context, slug string) (*domain.LegalPage, error) {
	return f(ctx, slug)
}

type submitLeadFunc func(ctx context.Context, input domain.LeadInput) (*domain.Lead, error)

func (f submitLeadFunc) Execute(ctx context.Context, input domain.LeadInput) (*domain.Lead, error) {
	return f(ctx, input)
}

// siteDeps - зависимости тестового сайта. Пустые поля заменяются
// фейками, которые возвращают пустой контент.
type siteDeps struct {
	findProperties findPropertiesFunc
	getDetails     getDetailsFunc
	listPosts      listPostsFunc
	getPost        getPostFunc
	getHome        getHomeFunc
	getTeam        getTeamFunc
	getLegal       getLegalFunc
	submitLead     submitLeadFunc
	consentStore   *consent.MemoryStorage
}

func (d *siteDeps) withDefaults() {
	if d.findProperties == nil {
		d.findProperties = func(ctx context.Context, filters domain.FilterState, page int) (*domain.PropertyPage, error) {
			return &domain.PropertyPage{Items: []domain.Property{}, CurrentPage: page}, nil
		}
	}
	if d.getDetails == nil {
		d.getDetails = func(ctx context.Context, slug string) (*domain.PropertyDetails, error) {
			return nil, domain.ErrNotFound
		}
	}
	if d.listPosts == nil {
		d.listPosts = func(ctx context.Context, page int) (*domain.PostPage, error) {
			return &domain.PostPage{Items: []domain.Post{}, CurrentPage: page}, nil
		}
	}
	if d.getPost == nil {
		d.getPost = func(ctx context.Context, slug string) (*domain.Post, error) {
			return nil, domain.ErrNotFound
		}
	}
	if d.getHome == nil {
		d.getHome = func(ctx context.Context) (*domain.HomeContent, error) {
			return &domain.HomeContent{}, nil
		}
	}
	if d.getTeam == nil {
		d.getTeam = func(ctx context.Context) ([]domain.TeamMember, error) {
			return []domain.TeamMember{}, nil
		}
	}
	if d.getLegal == nil {
		d.getLegal = func(ctx context.Context, slug string) (*domain.LegalPage, error) {
			return nil, domain.ErrNotFound
		}
	}
	if d.submitLead == nil {
		d.submitLead = func(ctx context.Context, input domain.LeadInput) (*domain.Lead, error) {
			return &domain.Lead{ID: uuid.New(), Kind: input.Kind, Name: input.Name, Email: input.Email}, nil
		}
	}
	if d.consentStore == nil {
		d.consentStore = consent.NewMemoryStorage()
	}
}

func newTestSite(t *testing.T, deps siteDeps) http.Handler {
	t.Helper()
	deps.withDefaults()

	consentHandler := NewConsentHandler(ConsentSettings{
		Version: "1.0",
		NewStorage: func(w http.ResponseWriter, r *http.Request) port.ConsentStoragePort {
			return deps.consentStore
		},
	})

	renderer, err := NewRenderer("Versus", "https://versus.test", consentHandler)
	require.NoError(t, err)

	handlers := Handlers{
		Pages:      NewPagesHandler(deps.getHome, deps.getTeam, deps.getLegal, renderer),
		Properties: NewPropertiesHandler(deps.findProperties, deps.getDetails, renderer),
		Blog:       NewBlogHandler(deps.listPosts, deps.getPost, renderer),
		Leads:      NewLeadHandler(deps.submitLead, renderer),
		Consent:    consentHandler,
		API:        NewAPIHandler(deps.findProperties),
	}

	logger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{Writer: io.Discard})
	return NewRouter([]string{"https://versus.test"}, handlers, logger)
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doPostForm(t *testing.T, h http.Handler, target string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func httptestRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
