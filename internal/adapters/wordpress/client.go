package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

// Пути коллекций WordPress REST API
const (
	apiPrefix      = "/wp-json/wp/v2"
	propertiesPath = apiPrefix + "/propiedades"
	postsPath      = apiPrefix + "/posts"
	teamPath       = apiPrefix + "/equipo"
	pagesPath      = apiPrefix + "/pages"

	teamPageSize = 100
	maxBodyBytes = 4 << 20
)

// filterParams - соответствие ключей фильтров параметрам REST-эндпоинта объектов.
// Эндпоинт расширен на стороне WordPress (rest_propiedades_query) и понимает эти параметры.
var filterParams = map[string]string{
	domain.QueryType:      "tipo",
	domain.QueryCity:      "ciudad",
	domain.QueryStatus:    "estado",
	domain.QueryBedrooms:  "habitaciones",
	domain.QueryBathrooms: "banos",
	domain.QueryPriceMin:  "precio_min",
	domain.QueryPriceMax:  "precio_max",
	domain.QueryAreaMin:   "superficie_min",
	domain.QueryAreaMax:   "superficie_max",
}

// Client - клиент WordPress REST API. Возвращает ошибки как есть:
// сворачиванием их в пустой результат занимается DegradingSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// pageInfo - заголовки пагинации WordPress
type pageInfo struct {
	total      int
	totalPages int
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// getJSON выполняет GET и декодирует ответ в out.
func (c *Client) getJSON(ctx context.Context, method, path string, query url.Values, out interface{}) (*pageInfo, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "WordPressClient",
		"method":    method,
	})
	clientLogger.Debug("Sending request to WordPress", port.Fields{"path": path, "query": query.Encode()})

	resp, err := c.doRequest(ctx, path, query)
	if err != nil {
		clientLogger.Error("Failed to perform request to WordPress", err, nil)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("%w: wordpress returned status %d: %s", domain.ErrUpstream, resp.StatusCode, string(bodyBytes))
		clientLogger.Error("Received error response from WordPress", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		clientLogger.Error("Failed to decode response from WordPress", err, nil)
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstream, err)
	}

	info := &pageInfo{}
	info.total, _ = strconv.Atoi(resp.Header.Get("X-WP-Total"))
	info.totalPages, _ = strconv.Atoi(resp.Header.Get("X-WP-TotalPages"))
	return info, nil
}

// propertyQuery переводит фильтры листинга в параметры WordPress.
func propertyQuery(filters domain.FilterState, page, perPage int) url.Values {
	query := url.Values{}
	query.Set("_embed", "1")
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	for key, param := range filterParams {
		if value, _ := filters.Get(key); value != "" {
			query.Set(param, value)
		}
	}

	switch filters.EffectiveSort() {
	case domain.SortOldest:
		query.Set("orderby", "date")
		query.Set("order", "asc")
	case domain.SortPriceAsc:
		query.Set("orderby", "precio")
		query.Set("order", "asc")
	case domain.SortPriceDesc:
		query.Set("orderby", "precio")
		query.Set("order", "desc")
	default:
		query.Set("orderby", "date")
		query.Set("order", "desc")
	}
	return query
}

func (c *Client) ListProperties(ctx context.Context, filters domain.FilterState, page, perPage int) (*domain.PropertyPage, error) {
	var dtos []propertyDTO
	info, err := c.getJSON(ctx, "ListProperties", propertiesPath, propertyQuery(filters, page, perPage), &dtos)
	if err != nil {
		return nil, err
	}

	result := &domain.PropertyPage{
		Items:       make([]domain.Property, len(dtos)),
		Total:       info.total,
		TotalPages:  info.totalPages,
		CurrentPage: page,
	}
	for i, dto := range dtos {
		result.Items[i] = mapProperty(dto)
	}
	if result.Total == 0 {
		result.Total = len(result.Items)
	}
	return result, nil
}

func (c *Client) GetProperty(ctx context.Context, slug string) (*domain.Property, error) {
	query := url.Values{"slug": {slug}, "_embed": {"1"}}

	var dtos []propertyDTO
	if _, err := c.getJSON(ctx, "GetProperty", propertiesPath, query, &dtos); err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, domain.ErrNotFound
	}
	property := mapProperty(dtos[0])
	return &property, nil
}

func (c *Client) ListPosts(ctx context.Context, page, perPage int) (*domain.PostPage, error) {
	query := url.Values{
		"_embed":   {"1"},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}

	var dtos []postDTO
	info, err := c.getJSON(ctx, "ListPosts", postsPath, query, &dtos)
	if err != nil {
		return nil, err
	}

	result := &domain.PostPage{
		Items:       make([]domain.Post, len(dtos)),
		Total:       info.total,
		TotalPages:  info.totalPages,
		CurrentPage: page,
	}
	for i, dto := range dtos {
		result.Items[i] = mapPost(dto)
	}
	return result, nil
}

func (c *Client) GetPost(ctx context.Context, slug string) (*domain.Post, error) {
	query := url.Values{"slug": {slug}, "_embed": {"1"}}

	var dtos []postDTO
	if _, err := c.getJSON(ctx, "GetPost", postsPath, query, &dtos); err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, domain.ErrNotFound
	}
	post := mapPost(dtos[0])
	return &post, nil
}

func (c *Client) ListTeam(ctx context.Context) ([]domain.TeamMember, error) {
	query := url.Values{
		"_embed":   {"1"},
		"per_page": {strconv.Itoa(teamPageSize)},
		"orderby":  {"menu_order"},
		"order":    {"asc"},
	}

	var dtos []teamMemberDTO
	if _, err := c.getJSON(ctx, "ListTeam", teamPath, query, &dtos); err != nil {
		return nil, err
	}

	members := make([]domain.TeamMember, 0, len(dtos))
	for _, dto := range dtos {
		member := mapTeamMember(dto)
		if member.Name == "" {
			continue
		}
		members = append(members, member)
	}
	return members, nil
}

func (c *Client) GetPage(ctx context.Context, slug string) (*domain.LegalPage, error) {
	query := url.Values{"slug": {slug}}

	var dtos []pageDTO
	if _, err := c.getJSON(ctx, "GetPage", pagesPath, query, &dtos); err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, domain.ErrNotFound
	}
	page := mapPage(dtos[0])
	return &page, nil
}
