package rest

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
	"time"
	"versus-web/internal/core/port"
	"versus-web/internal/core/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const staticPrefix = "/static/"

//go:embed static
var staticFS embed.FS

// Handlers - все входящие обработчики сайта
type Handlers struct {
	Pages      *PagesHandler
	Properties *PropertiesHandler
	Blog       *BlogHandler
	Leads      *LeadHandler
	Consent    *ConsentHandler
	API        *APIHandler
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(listenPort string, corsOrigins []string, handlers Handlers, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + listenPort,
			Handler:           NewRouter(corsOrigins, handlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает маршруты сайта
func NewRouter(corsOrigins []string, h Handlers, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle(staticPrefix+"*", http.StripPrefix(staticPrefix, http.FileServer(http.FS(static))))

	r.Get("/healthz", h.Pages.Healthz)

	r.Get("/", h.Pages.Home)

	r.Route(listingPath, func(r chi.Router) {
		r.Get("/", h.Properties.List)
		r.Post("/filtros", h.Properties.ApplyFilters)
		r.Post("/orden", h.Properties.ApplySort)
		r.Get("/{slug}", h.Properties.Detail)
	})

	r.Route(blogPath, func(r chi.Router) {
		r.Get("/", h.Blog.List)
		r.Get("/{slug}", h.Blog.Detail)
	})

	r.Get("/equipo", h.Pages.Team)

	r.Get(contactPath, h.Leads.ContactForm)
	r.Post(contactPath, h.Leads.SubmitContact)
	r.Get(sellPath, h.Leads.SellForm)
	r.Post(sellPath, h.Leads.SubmitSell)

	r.Get("/privacidad", h.Pages.Legal(usecase.LegalPrivacy))
	r.Get("/cookies", h.Pages.Legal(usecase.LegalCookies))
	r.Get("/terminos", h.Pages.Legal(usecase.LegalTerms))

	r.Post("/consentimiento", h.Consent.Save)

	// JSON для виджетов, в том числе с других доменов агентства
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
			ExposedHeaders: []string{"X-Trace-ID"},
			MaxAge:         300,
		}))
		r.Get("/properties", h.API.Properties)
		r.Get("/pagination", h.API.Pagination)
	})

	r.NotFound(h.Pages.NotFound)

	return r
}

// Handler отдает роутер (для httptest)
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
