package rest

import (
	"net/http"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
	"versus-web/internal/core/port/usecases_port"
)

// APIHandler - JSON для виджетов на клиенте (карусели, бесконечная подгрузка)
type APIHandler struct {
	findPropertiesUC usecases_port.FindPropertiesUseCase
}

func NewAPIHandler(findPropertiesUC usecases_port.FindPropertiesUseCase) *APIHandler {
	return &APIHandler{findPropertiesUC: findPropertiesUC}
}

// Properties обрабатывает GET /api/v1/properties. Понимает те же параметры, что и листинг.
func (h *APIHandler) Properties(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := domain.FilterStateFromQuery(query)
	page := domain.PageFromQuery(query)

	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "APIProperties",
		"page":    page,
		"filters": filters.Query(),
	})

	result, err := h.findPropertiesUC.Execute(r.Context(), filters, page)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "Failed to retrieve properties")
		return
	}

	pagination := buildPagination(result.CurrentPage, result.TotalPages, func(p int) string {
		return domain.PageURL(listingPath, filters, p)
	})

	response := PaginatedPropertiesResponse{
		Data:       make([]PropertyCardResponse, len(result.Items)),
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Page:       result.CurrentPage,
		Query:      filters.Query(),
		Pagination: toPaginationResponse(pagination, result.CurrentPage, result.TotalPages),
	}
	for i, p := range result.Items {
		response.Data[i] = toPropertyCard(p)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// Pagination обрабатывает GET /api/v1/pagination?current=N&total=M
func (h *APIHandler) Pagination(w http.ResponseWriter, r *http.Request) {
	total := getIntOrDefault(r, "total", -1)
	if total < 0 {
		WriteJSONError(w, http.StatusBadRequest, "total must be a non-negative integer")
		return
	}
	current := getIntOrDefault(r, "current", 1)

	resp := PaginationResponse{
		ShouldPaginate: domain.ShouldPaginate(total),
		Current:        current,
		Total:          total,
		Markers:        []PageMarkerResponse{},
	}
	for _, m := range domain.PaginationRange(current, total) {
		resp.Markers = append(resp.Markers, PageMarkerResponse{
			Page:     m.Page,
			Ellipsis: m.IsEllipsis(),
			Current:  !m.IsEllipsis() && m.Page == current,
		})
	}

	RespondWithJSON(w, http.StatusOK, resp)
}
