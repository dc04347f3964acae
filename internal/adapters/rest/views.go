package rest

import (
	"versus-web/internal/core/domain"
)

// PageMeta - заголовок и описание для <head>
type PageMeta struct {
	Title       string
	Description string
}

type pageLink struct {
	Page     int
	URL      string
	Current  bool
	Ellipsis bool
}

type paginationView struct {
	Show  bool
	Prev  string
	Next  string
	Links []pageLink
}

// buildPagination превращает диапазон страниц в ссылки. При одной странице
// пагинация не рисуется вовсе.
func buildPagination(current, total int, urlFor func(page int) string) paginationView {
	view := paginationView{Show: domain.ShouldPaginate(total)}
	if !view.Show {
		return view
	}

	markers := domain.PaginationRange(current, total)
	view.Links = make([]pageLink, 0, len(markers))
	for _, m := range markers {
		if m.IsEllipsis() {
			view.Links = append(view.Links, pageLink{Ellipsis: true})
			continue
		}
		view.Links = append(view.Links, pageLink{
			Page:    m.Page,
			URL:     urlFor(m.Page),
			Current: m.Page == current,
		})
	}
	if current > 1 {
		view.Prev = urlFor(current - 1)
	}
	if current < total {
		view.Next = urlFor(current + 1)
	}
	return view
}

type option struct {
	Value string
	Label string
}

// Справочники формы фильтров. Значения совпадают с таксономиями в CMS.
var (
	propertyTypeOptions = []option{
		{"piso", "Piso"},
		{"chalet", "Chalet"},
		{"casa", "Casa"},
		{"atico", "Ático"},
		{"duplex", "Dúplex"},
		{"local", "Local comercial"},
		{"terreno", "Terreno"},
	}
	statusOptions = []option{
		{"venta", "En venta"},
		{"alquiler", "En alquiler"},
	}
	roomOptions = []option{
		{"1", "1+"},
		{"2", "2+"},
		{"3", "3+"},
		{"4", "4+"},
		{"5", "5+"},
	}
	sortOptions = []option{
		{domain.SortNewest, "Más recientes"},
		{domain.SortOldest, "Más antiguos"},
		{domain.SortPriceAsc, "Precio: de menor a mayor"},
		{domain.SortPriceDesc, "Precio: de mayor a menor"},
	}
)

type filterFormView struct {
	State       domain.FilterState
	ReturnQuery string
	Types       []option
	Statuses    []option
	Rooms       []option
	Sorts       []option
	Active      bool
}

func newFilterFormView(state domain.FilterState) filterFormView {
	return filterFormView{
		State:       state,
		ReturnQuery: state.Query(),
		Types:       propertyTypeOptions,
		Statuses:    statusOptions,
		Rooms:       roomOptions,
		Sorts:       sortOptions,
		Active:      !state.IsZero(),
	}
}

type homeView struct {
	Featured    []domain.Property
	LatestPosts []domain.Post
	Filters     filterFormView
}

type listingView struct {
	Filters    filterFormView
	Result     *domain.PropertyPage
	Pagination paginationView
	EmptyText  string
}

type propertyView struct {
	Property domain.Property
	Nearby   []domain.Property
	Lead     leadFormView
}

type blogView struct {
	Result     *domain.PostPage
	Pagination paginationView
	EmptyText  string
}

type postView struct {
	Post *domain.Post
}

type teamView struct {
	Members   []domain.TeamMember
	EmptyText string
}

type legalView struct {
	Page *domain.LegalPage
}

// leadFormView - значения и ошибки формы заявки для повторной отрисовки
type leadFormView struct {
	Action string
	Input  domain.LeadInput
	Errors map[string]string
	Sent   bool
	Failed bool
}

func (v leadFormView) Error(field string) string {
	return v.Errors[field]
}

type notFoundView struct {
	Path string
}
