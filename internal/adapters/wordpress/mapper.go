package wordpress

import (
	"html"
	"strings"
	"time"
	"versus-web/internal/core/domain"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wpTimeLayout - формат полей date/modified в WordPress (без зоны)
const wpTimeLayout = "2006-01-02T15:04:05"

const defaultCurrency = "EUR"

var (
	// contentPolicy - HTML из редактора WordPress, без скриптов и обработчиков
	contentPolicy = bluemonday.UGCPolicy()
	// textPolicy вырезает все теги (для анонсов и подписей)
	textPolicy = bluemonday.StrictPolicy()

	nameCaser = cases.Title(language.Spanish)
)

// plainText превращает rendered-поле в чистый текст без тегов и HTML-сущностей.
func plainText(rendered string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(rendered)))
}

func sanitizedHTML(rendered string) string {
	return strings.TrimSpace(contentPolicy.Sanitize(rendered))
}

// titleName приводит имя к виду "Ana García": в CMS встречается "ANA GARCÍA" и "ana garcía".
func titleName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	return nameCaser.String(name)
}

func parseWPTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(wpTimeLayout, value)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return time.Time{}
		}
	}
	return t
}

// firstNonEmpty - цепочка запасных значений
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...flexNumber) float64 {
	for _, v := range values {
		if v != 0 {
			return float64(v)
		}
	}
	return 0
}

func (e *embeddedDTO) featuredImage() string {
	if e == nil || len(e.FeaturedMedia) == 0 {
		return ""
	}
	media := e.FeaturedMedia[0]
	if large, ok := media.MediaDetails.Sizes["large"]; ok && large.SourceURL != "" {
		return large.SourceURL
	}
	return media.SourceURL
}

func (e *embeddedDTO) authorName() string {
	if e == nil || len(e.Author) == 0 {
		return ""
	}
	return e.Author[0].Name
}

// termNames возвращает названия терминов таксономии; пустая taxonomy - все термины.
func (e *embeddedDTO) termNames(taxonomy string) []string {
	if e == nil {
		return nil
	}
	var names []string
	for _, group := range e.Terms {
		for _, term := range group {
			if taxonomy == "" || term.Taxonomy == taxonomy {
				names = append(names, html.UnescapeString(term.Name))
			}
		}
	}
	return names
}

func firstTerm(e *embeddedDTO, taxonomy string) string {
	names := e.termNames(taxonomy)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// mapProperty нормализует объект недвижимости.
func mapProperty(dto propertyDTO) domain.Property {
	acf := dto.ACF.Value

	images := make([]string, 0, len(acf.Galeria)+1)
	seen := make(map[string]bool)
	addImage := func(url string) {
		if url != "" && !seen[url] {
			seen[url] = true
			images = append(images, url)
		}
	}
	addImage(dto.Embedded.featuredImage())
	for _, img := range acf.Galeria {
		addImage(string(img))
	}

	return domain.Property{
		ID:          dto.ID,
		Slug:        dto.Slug,
		Title:       plainText(dto.Title.Rendered),
		Excerpt:     plainText(dto.Excerpt.Rendered),
		Description: sanitizedHTML(dto.Content.Rendered),
		Type:        firstNonEmpty(acf.Tipo.String(), acf.TipoInmueble.String(), firstTerm(dto.Embedded, "tipo")),
		City:        firstNonEmpty(acf.Ciudad.String(), acf.Localidad.String(), firstTerm(dto.Embedded, "ciudad")),
		Address:     acf.Direccion.String(),
		Status:      firstNonEmpty(acf.Estado.String(), firstTerm(dto.Embedded, "estado")),
		Price:       float64(acf.Precio),
		Currency:    firstNonEmpty(strings.ToUpper(acf.Moneda.String()), defaultCurrency),
		Bedrooms:    int(firstNonZero(acf.Habitaciones, acf.Dormitorios)),
		Bathrooms:   int(acf.Banos),
		Area:        firstNonZero(acf.Superficie, acf.MetrosCuad),
		Images:      images,
		Latitude:    float64(acf.Latitud),
		Longitude:   float64(acf.Longitud),
		Featured:    bool(acf.Destacado),
		PublishedAt: parseWPTime(dto.Date),
	}
}

// mapPost нормализует запись блога.
func mapPost(dto postDTO) domain.Post {
	return domain.Post{
		ID:          dto.ID,
		Slug:        dto.Slug,
		Title:       plainText(dto.Title.Rendered),
		Excerpt:     plainText(dto.Excerpt.Rendered),
		Content:     sanitizedHTML(dto.Content.Rendered),
		Image:       dto.Embedded.featuredImage(),
		Author:      dto.Embedded.authorName(),
		Categories:  dto.Embedded.termNames("category"),
		PublishedAt: parseWPTime(dto.Date),
	}
}

// mapTeamMember собирает сотрудника из разных вариантов полей,
// которые редакторы заводили в ACF в разное время.
func mapTeamMember(dto teamMemberDTO) domain.TeamMember {
	acf := dto.ACF.Value

	order := dto.MenuOrder
	if acf.Orden != 0 {
		order = int(acf.Orden)
	}

	return domain.TeamMember{
		ID:    dto.ID,
		Name:  titleName(firstNonEmpty(acf.Nombre.String(), plainText(dto.Title.Rendered))),
		Role:  firstNonEmpty(acf.Cargo.String(), acf.Puesto.String()),
		Photo: firstNonEmpty(string(acf.Foto), string(acf.Imagen), dto.Embedded.featuredImage()),
		Email: strings.ToLower(firstNonEmpty(acf.Email.String(), acf.Correo.String())),
		Phone: acf.Telefono.String(),
		Bio:   firstNonEmpty(plainText(acf.Descripcion.String()), plainText(dto.Content.Rendered)),
		Order: order,
	}
}

// mapPage нормализует статическую страницу.
func mapPage(dto pageDTO) domain.LegalPage {
	return domain.LegalPage{
		Slug:      dto.Slug,
		Title:     plainText(dto.Title.Rendered),
		Content:   sanitizedHTML(dto.Content.Rendered),
		UpdatedAt: parseWPTime(dto.Modified),
	}
}
