package rest

import (
	"errors"
	"net/http"
	"net/url"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
	"versus-web/internal/core/port/usecases_port"
	"versus-web/internal/core/usecase"

	"github.com/go-chi/chi/v5"
)

const (
	listingPath = "/propiedades"

	emptyListingText = "No se encontraron propiedades"
)

type PropertiesHandler struct {
	findPropertiesUC usecases_port.FindPropertiesUseCase
	getDetailsUC     usecases_port.GetPropertyDetailsUseCase
	renderer         *Renderer
}

func NewPropertiesHandler(findPropertiesUC usecases_port.FindPropertiesUseCase,
	getDetailsUC usecases_port.GetPropertyDetailsUseCase,
	renderer *Renderer) *PropertiesHandler {
	return &PropertiesHandler{
		findPropertiesUC: findPropertiesUC,
		getDetailsUC:     getDetailsUC,
		renderer:         renderer,
	}
}

// List обрабатывает GET /propiedades
func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	query := r.URL.Query()
	filters := domain.FilterStateFromQuery(query)
	page := domain.PageFromQuery(query)

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "ListProperties",
		"page":    page,
		"filters": filters.Query(),
	})
	handlerLogger.Debug("Processing listing request", nil)

	result, err := h.findPropertiesUC.Execute(r.Context(), filters, page)
	if err != nil {
		// источник деградирует сам, сюда попадают только ошибки самого use case
		handlerLogger.Error("Use case failed", err, nil)
		result = &domain.PropertyPage{Items: []domain.Property{}, CurrentPage: page}
	}

	view := listingView{
		Filters:   newFilterFormView(filters),
		Result:    result,
		EmptyText: emptyListingText,
		Pagination: buildPagination(result.CurrentPage, result.TotalPages, func(p int) string {
			return domain.PageURL(listingPath, filters, p)
		}),
	}

	h.renderer.Render(w, r, http.StatusOK, "listing", PageMeta{
		Title:       "Propiedades",
		Description: "Pisos, chalets y locales en venta y alquiler.",
	}, view)
}

// returnQuery - query-строка листинга, с которой пришла форма
func returnQuery(r *http.Request) url.Values {
	values, err := url.ParseQuery(r.PostFormValue("return_query"))
	if err != nil {
		return url.Values{}
	}
	return values
}

// ApplyFilters обрабатывает POST /propiedades/filtros (кнопки "Buscar" и "Limpiar")
func (h *PropertiesHandler) ApplyFilters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "ApplyFilters"})

	if err := r.ParseForm(); err != nil {
		handlerLogger.Warn("Invalid filter form", port.Fields{"error": err.Error()})
		http.Redirect(w, r, listingPath, http.StatusSeeOther)
		return
	}

	navigator := NewRedirectNavigator(w, r)
	syncer := usecase.NewFilterSynchronizer(listingPath, returnQuery(r), navigator)

	var err error
	if r.PostFormValue("action") == "clear" {
		_, err = syncer.ClearFilters(r.Context())
	} else {
		for _, key := range domain.FilterKeys() {
			if _, present := r.PostForm[key]; !present {
				continue
			}
			if err := syncer.UpdateLocalFilter(key, formValue(r, key)); err != nil {
				handlerLogger.Warn("Failed to update filter", port.Fields{"field": key, "error": err.Error()})
			}
		}
		_, err = syncer.ApplyFilters(r.Context())
	}

	if err != nil {
		handlerLogger.Error("Failed to apply filters", err, nil)
		if navigator.Location == "" {
			http.Redirect(w, r, listingPath, http.StatusSeeOther)
		}
	}
}

// ApplySort обрабатывает POST /propiedades/orden: сортировка применяется сразу
// и не трогает остальные (неотправленные) поля формы фильтров.
func (h *PropertiesHandler) ApplySort(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	handlerLogger := logger.WithFields(port.Fields{"handler": "ApplySort"})

	if err := r.ParseForm(); err != nil {
		handlerLogger.Warn("Invalid sort form", port.Fields{"error": err.Error()})
		http.Redirect(w, r, listingPath, http.StatusSeeOther)
		return
	}

	navigator := NewRedirectNavigator(w, r)
	syncer := usecase.NewFilterSynchronizer(listingPath, returnQuery(r), navigator)

	if _, err := syncer.SetSort(r.Context(), formValue(r, domain.QuerySort)); err != nil {
		handlerLogger.Error("Failed to apply sort", err, nil)
		if navigator.Location == "" {
			http.Redirect(w, r, listingPath, http.StatusSeeOther)
		}
	}
}

// Detail обрабатывает GET /propiedades/{slug}
func (h *PropertiesHandler) Detail(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	slug := chi.URLParam(r, "slug")
	handlerLogger := logger.WithFields(port.Fields{
		"handler": "PropertyDetail",
		"slug":    slug,
	})
	handlerLogger.Debug("Processing property detail request", nil)

	details, err := h.getDetailsUC.Execute(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			handlerLogger.Error("Use case failed", err, nil)
		}
		renderNotFound(h.renderer, w, r)
		return
	}

	view := propertyView{
		Property: details.Property,
		Nearby:   details.Nearby,
		Lead: leadFormView{
			Action: contactPath,
			Input: domain.LeadInput{
				Kind:         domain.LeadContact,
				PropertySlug: details.Property.Slug,
				Message:      "Me interesa la propiedad \"" + details.Property.Title + "\".",
			},
		},
	}

	h.renderer.Render(w, r, http.StatusOK, "property", PageMeta{
		Title:       details.Property.Title,
		Description: details.Property.Excerpt,
	}, view)
}

func renderNotFound(renderer *Renderer, w http.ResponseWriter, r *http.Request) {
	renderer.Render(w, r, http.StatusNotFound, "not_found", PageMeta{Title: "Página no encontrada"}, notFoundView{Path: r.URL.Path})
}
