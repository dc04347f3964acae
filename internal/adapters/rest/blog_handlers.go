package rest

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
	"versus-web/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

const (
	blogPath      = "/blog"
	emptyBlogText = "Todavía no hay artículos publicados"
)

type BlogHandler struct {
	listPostsUC usecases_port.ListPostsUseCase
	getPostUC   usecases_port.GetPostUseCase
	renderer    *Renderer
}

func NewBlogHandler(listPostsUC usecases_port.ListPostsUseCase, getPostUC usecases_port.GetPostUseCase, renderer *Renderer) *BlogHandler {
	return &BlogHandler{
		listPostsUC: listPostsUC,
		getPostUC:   getPostUC,
		renderer:    renderer,
	}
}

func blogPageURL(page int) string {
	if page <= 1 {
		return blogPath
	}
	return blogPath + "?" + url.Values{domain.QueryPage: {strconv.Itoa(page)}}.Encode()
}

// List обрабатывает GET /blog
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	page := domain.PageFromQuery(r.URL.Query())
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "ListPosts",
		"page":    page,
	})

	result, err := h.listPostsUC.Execute(r.Context(), page)
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		result = &domain.PostPage{Items: []domain.Post{}, CurrentPage: page}
	}

	h.renderer.Render(w, r, http.StatusOK, "blog", PageMeta{
		Title:       "Blog",
		Description: "Noticias y consejos sobre el mercado inmobiliario.",
	}, blogView{
		Result:     result,
		Pagination: buildPagination(result.CurrentPage, result.TotalPages, blogPageURL),
		EmptyText:  emptyBlogText,
	})
}

// Detail обрабатывает GET /blog/{slug}
func (h *BlogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler": "GetPost",
		"slug":    slug,
	})

	post, err := h.getPostUC.Execute(r.Context(), slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			handlerLogger.Error("Use case failed", err, nil)
		}
		renderNotFound(h.renderer, w, r)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, "post", PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
	}, postView{Post: post})
}
