package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

// Ключи query-строки листинга
const (
	QueryType      = "type"
	QueryCity      = "city"
	QueryStatus    = "status"
	QueryBedrooms  = "bedrooms"
	QueryBathrooms = "bathrooms"
	QueryPriceMin  = "price_min"
	QueryPriceMax  = "price_max"
	QueryAreaMin   = "area_min"
	QueryAreaMax   = "area_max"
	QuerySort      = "sort"
	QueryPage      = "page"
)

// Варианты сортировки
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// DefaultSort - сортировка "сначала новые"
const DefaultSort = SortNewest

// FilterState - фильтры листинга объектов.
// Все значения непрозрачные строки, пустая строка означает "не задано".
// Числовые поля (цена, площадь) не валидируются и уходят в URL как есть.
type FilterState struct {
	Type      string
	City      string
	Status    string
	Bedrooms  string
	Bathrooms string
	PriceMin  string
	PriceMax  string
	AreaMin   string
	AreaMax   string
	Sort      string
}

// filterKeys задает порядок полей при сериализации
var filterKeys = []string{
	QueryType, QueryCity, QueryStatus, QueryBedrooms, QueryBathrooms,
	QueryPriceMin, QueryPriceMax, QueryAreaMin, QueryAreaMax, QuerySort,
}

// FilterKeys возвращает ключи фильтров в порядке сериализации.
func FilterKeys() []string {
	keys := make([]string, len(filterKeys))
	copy(keys, filterKeys)
	return keys
}

// DefaultFilterState возвращает фильтры по умолчанию: все пусто, кроме сортировки.
func DefaultFilterState() FilterState {
	return FilterState{Sort: DefaultSort}
}

// FilterStateFromQuery инициализирует фильтры из query-параметров текущего URL.
func FilterStateFromQuery(query url.Values) FilterState {
	state := DefaultFilterState()
	for _, key := range filterKeys {
		if value := query.Get(key); value != "" {
			// ключи берутся из filterKeys, ошибки быть не может
			_ = state.Set(key, value)
		}
	}
	return state
}

func (f *FilterState) field(key string) (*string, error) {
	switch key {
	case QueryType:
		return &f.Type, nil
	case QueryCity:
		return &f.City, nil
	case QueryStatus:
		return &f.Status, nil
	case QueryBedrooms:
		return &f.Bedrooms, nil
	case QueryBathrooms:
		return &f.Bathrooms, nil
	case QueryPriceMin:
		return &f.PriceMin, nil
	case QueryPriceMax:
		return &f.PriceMax, nil
	case QueryAreaMin:
		return &f.AreaMin, nil
	case QueryAreaMax:
		return &f.AreaMax, nil
	case QuerySort:
		return &f.Sort, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilterField, key)
	}
}

// Set меняет одно поле по ключу query-строки.
func (f *FilterState) Set(key, value string) error {
	ptr, err := f.field(key)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

// Get возвращает значение поля по ключу query-строки.
func (f FilterState) Get(key string) (string, error) {
	ptr, err := f.field(key)
	if err != nil {
		return "", err
	}
	return *ptr, nil
}

// Values возвращает только непустые поля. Ключ page сюда не попадает никогда,
// поэтому применение фильтров всегда сбрасывает пагинацию на первую страницу.
// Сортировка по умолчанию тоже не пишется: URL без sort означает "сначала новые".
func (f FilterState) Values() url.Values {
	values := url.Values{}
	for _, key := range filterKeys {
		value, _ := f.Get(key)
		if value == "" || (key == QuerySort && value == DefaultSort) {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// Query кодирует непустые поля в query-строку.
func (f FilterState) Query() string {
	return f.Values().Encode()
}

// IsZero - true, если не задан ни один фильтр, кроме сортировки по умолчанию.
func (f FilterState) IsZero() bool {
	return f == DefaultFilterState() || f == FilterState{}
}

// EffectiveSort возвращает сортировку с учетом значения по умолчанию.
func (f FilterState) EffectiveSort() string {
	if f.Sort == "" {
		return DefaultSort
	}
	return f.Sort
}

// PageFromQuery читает номер страницы (с 1). Некорректные значения дают 1.
func PageFromQuery(query url.Values) int {
	page, err := strconv.Atoi(query.Get(QueryPage))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// PageURL строит ссылку на страницу листинга с сохранением фильтров.
func PageURL(basePath string, filters FilterState, page int) string {
	values := filters.Values()
	if page > 1 {
		values.Set(QueryPage, strconv.Itoa(page))
	}
	if len(values) == 0 {
		return basePath
	}
	return basePath + "?" + values.Encode()
}
