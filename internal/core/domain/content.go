package domain

import "time"

// Property - нормализованная карточка объекта недвижимости.
// Все "запасные" поля из WordPress уже разрешены маппером.
type Property struct {
	ID          int64
	Slug        string
	Title       string
	Excerpt     string
	Description string // HTML из CMS
	Type        string
	City        string
	Address     string
	Status      string
	Price       float64
	Currency    string
	Bedrooms    int
	Bathrooms   int
	Area        float64
	Images      []string
	Latitude    float64
	Longitude   float64
	Featured    bool
	PublishedAt time.Time
}

// MainImage возвращает первое изображение или пустую строку.
func (p Property) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// HasLocation - заданы ли координаты объекта
func (p Property) HasLocation() bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// PropertyPage - страница листинга.
type PropertyPage struct {
	Items       []Property
	Total       int
	TotalPages  int
	CurrentPage int
}

// IsEmpty - пустой результат, единый сигнал "ничего не найдено / ошибка".
func (p PropertyPage) IsEmpty() bool {
	return len(p.Items) == 0
}

// PropertyDetails - объект вместе с похожими объектами поблизости.
type PropertyDetails struct {
	Property Property
	Nearby   []Property
}

// Post - запись блога.
type Post struct {
	ID          int64
	Slug        string
	Title       string
	Excerpt     string
	Content     string // HTML из CMS
	Image       string
	Author      string
	Categories  []string
	PublishedAt time.Time
}

// PostPage - страница блога.
type PostPage struct {
	Items       []Post
	Total       int
	TotalPages  int
	CurrentPage int
}

// IsEmpty - пустой результат
func (p PostPage) IsEmpty() bool {
	return len(p.Items) == 0
}

// TeamMember - сотрудник агентства.
type TeamMember struct {
	ID    int64
	Name  string
	Role  string
	Photo string
	Email string
	Phone string
	Bio   string
	Order int
}

// LegalPage - статическая страница (политика конфиденциальности, cookies, условия).
type LegalPage struct {
	Slug      string
	Title     string
	Content   string // HTML из CMS
	UpdatedAt time.Time
}

// HomeContent - данные главной страницы.
type HomeContent struct {
	Featured    []Property
	LatestPosts []Post
}
