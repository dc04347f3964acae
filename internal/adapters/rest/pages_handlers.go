package rest

import (
	"errors"
	"net/http"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
	"versus-web/internal/core/port/usecases_port"
)

const emptyTeamText = "Información del equipo no disponible"

type PagesHandler struct {
	getHomeUC  usecases_port.GetHomeUseCase
	getTeamUC  usecases_port.GetTeamUseCase
	getLegalUC usecases_port.GetLegalPageUseCase
	renderer   *Renderer
}

func NewPagesHandler(getHomeUC usecases_port.GetHomeUseCase,
	getTeamUC usecases_port.GetTeamUseCase,
	getLegalUC usecases_port.GetLegalPageUseCase,
	renderer *Renderer) *PagesHandler {
	return &PagesHandler{
		getHomeUC:  getHomeUC,
		getTeamUC:  getTeamUC,
		getLegalUC: getLegalUC,
		renderer:   renderer,
	}
}

// Home обрабатывает GET /
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Home"})

	content, err := h.getHomeUC.Execute(r.Context())
	if err != nil || content == nil {
		if err != nil {
			handlerLogger.Error("Use case failed", err, nil)
		}
		content = &domain.HomeContent{}
	}

	h.renderer.Render(w, r, http.StatusOK, "home", PageMeta{
		Description: "Agencia inmobiliaria: compra, venta y alquiler de viviendas.",
	}, homeView{
		Featured:    content.Featured,
		LatestPosts: content.LatestPosts,
		Filters:     newFilterFormView(domain.DefaultFilterState()),
	})
}

// Team обрабатывает GET /equipo
func (h *PagesHandler) Team(w http.ResponseWriter, r *http.Request) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Team"})

	members, err := h.getTeamUC.Execute(r.Context())
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		members = nil
	}

	h.renderer.Render(w, r, http.StatusOK, "team", PageMeta{
		Title:       "Nuestro equipo",
		Description: "Conoce a los profesionales de la agencia.",
	}, teamView{Members: members, EmptyText: emptyTeamText})
}

// Legal возвращает обработчик статической страницы с заданным слагом CMS
func (h *PagesHandler) Legal(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
			"handler": "LegalPage",
			"slug":    slug,
		})

		page, err := h.getLegalUC.Execute(r.Context(), slug)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				handlerLogger.Error("Use case failed", err, nil)
			}
			renderNotFound(h.renderer, w, r)
			return
		}

		h.renderer.Render(w, r, http.StatusOK, "legal", PageMeta{Title: page.Title}, legalView{Page: page})
	}
}

// NotFound - страница 404 для неизвестных адресов
func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(h.renderer, w, r)
}

// Healthz - liveness-проба
func (h *PagesHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
