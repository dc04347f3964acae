package rest

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/http"
	"path"
	"strings"
	"time"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates
var templatesFS embed.FS

// ConsentStateProvider отдает состояние баннера cookies для текущего запроса
type ConsentStateProvider interface {
	State(w http.ResponseWriter, r *http.Request) domain.ConsentState
}

// layoutData - общие данные каркаса страницы
type layoutData struct {
	SiteName     string
	Meta         PageMeta
	CanonicalURL string
	CurrentPath  string
	Year         int
	Consent      domain.ConsentState
	Page         interface{}
}

// Renderer держит по одному набору шаблонов на страницу: каркас и партиалы
// общие, блок "content" у каждой страницы свой.
type Renderer struct {
	siteName string
	siteURL  string
	consent  ConsentStateProvider
	pages    map[string]*template.Template
}

func NewRenderer(siteName, siteURL string, consent ConsentStateProvider) (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(templateFuncs()).
		ParseFS(templatesFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout templates: %w", err)
	}

	pageFiles, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list page templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.Must(base.Clone()).ParseFS(templatesFS, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		siteName: siteName,
		siteURL:  strings.TrimRight(siteURL, "/"),
		consent:  consent,
		pages:    pages,
	}, nil
}

// Render рисует страницу в буфер и только потом пишет ответ, чтобы ошибка
// шаблона не оставила полстраницы со статусом 200.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, meta PageMeta, data interface{}) {
	logger := contextkeys.LoggerFromContext(r.Context())

	tmpl, ok := rd.pages[name]
	if !ok {
		logger.Error("Unknown page template", fmt.Errorf("template %q not found", name), nil)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	layout := layoutData{
		SiteName:     rd.siteName,
		Meta:         meta,
		CanonicalURL: rd.siteURL + r.URL.Path,
		CurrentPath:  r.URL.Path,
		Year:         time.Now().Year(),
		Page:         data,
	}
	if rd.consent != nil {
		layout.Consent = rd.consent.State(w, r)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", layout); err != nil {
		logger.Error("Failed to render template", err, nil)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

var spanishPrinter = message.NewPrinter(language.Spanish)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// formatPrice: 350000, "EUR" -> "350.000 €"
func formatPrice(price float64, currency string) string {
	if price <= 0 {
		return "Consultar precio"
	}
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = currency
	}
	return strings.TrimSpace(spanishPrinter.Sprintf("%d", int64(math.Round(price))) + " " + symbol)
}

func formatArea(area float64) string {
	if area <= 0 {
		return ""
	}
	return spanishPrinter.Sprintf("%d", int64(math.Round(area))) + " m²"
}

// formatDate: "2 de marzo de 2024"
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatPrice": formatPrice,
		"formatArea":  formatArea,
		"formatDate":  formatDate,
		// HTML из CMS уже прошел bluemonday в маппере
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"millis":   func(d time.Duration) int64 { return d.Milliseconds() },
		"join":     strings.Join,
		"selected": func(current, value string) bool { return current == value },
	}
}
