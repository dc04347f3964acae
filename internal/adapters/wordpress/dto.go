package wordpress

import "encoding/json"

// DTO ответов WordPress REST API (/wp-json/wp/v2/...).

type renderedDTO struct {
	Rendered string `json:"rendered"`
}

// acfBlock оборачивает блок acf: при отсутствии полей WordPress отдает [] вместо объекта.
type acfBlock[T any] struct {
	Value T
}

func (a *acfBlock[T]) UnmarshalJSON(data []byte) error {
	var zero T
	a.Value = zero
	if isEmptyJSON(data) {
		return nil
	}
	if err := json.Unmarshal(data, &a.Value); err != nil {
		// битый acf не должен ронять весь объект
		a.Value = zero
	}
	return nil
}

type featuredMediaDTO struct {
	SourceURL    string `json:"source_url"`
	MediaDetails struct {
		Sizes map[string]struct {
			SourceURL string `json:"source_url"`
		} `json:"sizes"`
	} `json:"media_details"`
}

type authorDTO struct {
	Name string `json:"name"`
}

type termDTO struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

type embeddedDTO struct {
	FeaturedMedia []featuredMediaDTO `json:"wp:featuredmedia"`
	Author        []authorDTO        `json:"author"`
	Terms         [][]termDTO        `json:"wp:term"`
}

type propertyACF struct {
	Tipo         flexString `json:"tipo"`
	TipoInmueble flexString `json:"tipo_inmueble"`
	Ciudad       flexString `json:"ciudad"`
	Localidad    flexString `json:"localidad"`
	Direccion    flexString `json:"direccion"`
	Estado       flexString `json:"estado"`
	Precio       flexNumber `json:"precio"`
	Moneda       flexString `json:"moneda"`
	Habitaciones flexNumber `json:"habitaciones"`
	Dormitorios  flexNumber `json:"dormitorios"`
	Banos        flexNumber `json:"banos"`
	Superficie   flexNumber `json:"superficie"`
	MetrosCuad   flexNumber `json:"metros_cuadrados"`
	Galeria      acfGallery `json:"galeria"`
	Latitud      flexCoord  `json:"latitud"`
	Longitud     flexCoord  `json:"longitud"`
	Destacado    flexBool   `json:"destacado"`
}

type propertyDTO struct {
	ID       int64                 `json:"id"`
	Slug     string                `json:"slug"`
	Date     string                `json:"date"`
	Title    renderedDTO           `json:"title"`
	Excerpt  renderedDTO           `json:"excerpt"`
	Content  renderedDTO           `json:"content"`
	ACF      acfBlock[propertyACF] `json:"acf"`
	Embedded *embeddedDTO          `json:"_embedded,omitempty"`
}

type postDTO struct {
	ID       int64        `json:"id"`
	Slug     string       `json:"slug"`
	Date     string       `json:"date"`
	Title    renderedDTO  `json:"title"`
	Excerpt  renderedDTO  `json:"excerpt"`
	Content  renderedDTO  `json:"content"`
	Embedded *embeddedDTO `json:"_embedded,omitempty"`
}

type teamACF struct {
	Nombre      flexString `json:"nombre"`
	Cargo       flexString `json:"cargo"`
	Puesto      flexString `json:"puesto"`
	Foto        acfImage   `json:"foto"`
	Imagen      acfImage   `json:"imagen"`
	Email       flexString `json:"email"`
	Correo      flexString `json:"correo"`
	Telefono    flexString `json:"telefono"`
	Descripcion flexString `json:"descripcion"`
	Orden       flexNumber `json:"orden"`
}

type teamMemberDTO struct {
	ID        int64             `json:"id"`
	MenuOrder int               `json:"menu_order"`
	Title     renderedDTO       `json:"title"`
	Content   renderedDTO       `json:"content"`
	ACF       acfBlock[teamACF] `json:"acf"`
	Embedded  *embeddedDTO      `json:"_embedded,omitempty"`
}

type pageDTO struct {
	ID       int64       `json:"id"`
	Slug     string      `json:"slug"`
	Modified string      `json:"modified"`
	Title    renderedDTO `json:"title"`
	Content  renderedDTO `json:"content"`
}
