package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSite - маленький сайт: главная, листинг с пагинацией, сломанная
// страница и ссылки, которые прогревать не нужно.
func newSite(t *testing.T) (*httptest.Server, func() map[string]int) {
	t.Helper()
	var mu sync.Mutex
	hits := make(map[string]int)

	mux := http.NewServeMux()
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits[r.URL.RequestURI()]++
			mu.Unlock()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, "<html><body>"+body+"</body></html>")
		}
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		page(`<a href="/propiedades">Propiedades</a>
			<a href="/static/site.css">css</a>
			<a href="/api/v1/properties">api</a>
			<a href="/roto">roto</a>
			<a href="https://other.example.com/x">fuera</a>
			<a href="#top">arriba</a>
			<a href="/contacto?enviado=1">gracias</a>`)(w, r)
	})
	mux.HandleFunc("/propiedades", page(`<a href="/">Inicio</a><a href="/propiedades?page=2">2</a>`))
	mux.HandleFunc("/roto", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.RequestURI()]++
		mu.Unlock()
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/static/", page(""))
	mux.HandleFunc("/api/", page(""))
	mux.HandleFunc("/contacto", page(""))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, func() map[string]int {
		mu.Lock()
		defer mu.Unlock()
		copied := make(map[string]int, len(hits))
		for k, v := range hits {
			copied[k] = v
		}
		return copied
	}
}

func TestSiteWarmer_Warm(t *testing.T) {
	srv, hits := newSite(t)
	warmer, err := NewSiteWarmer(Config{StartURL: srv.URL + "/", Parallelism: 2})
	require.NoError(t, err)

	report, err := warmer.Warm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"/":                   1,
		"/propiedades":        1,
		"/propiedades?page=2": 1,
		"/roto":               1,
	}, hits())
	assert.Equal(t, 4, report.Visited)
	assert.Equal(t, 3, report.Statuses[http.StatusOK])
	assert.Equal(t, 1, report.Statuses[http.StatusInternalServerError])
	assert.Equal(t, []string{srv.URL + "/roto"}, report.Failures)
}

func TestSiteWarmer_MaxPagesAndDepth(t *testing.T) {
	srv, hits := newSite(t)

	warmer, err := NewSiteWarmer(Config{StartURL: srv.URL + "/", MaxDepth: 1})
	require.NoError(t, err)
	report, err := warmer.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Visited)
	assert.Equal(t, map[string]int{"/": 1}, hits())

	srv, hits = newSite(t)
	warmer, err = NewSiteWarmer(Config{StartURL: srv.URL + "/", MaxPages: 2})
	require.NoError(t, err)
	report, err = warmer.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Visited)
	assert.Len(t, hits(), 2)
}

func TestNewSiteWarmer_InvalidURL(t *testing.T) {
	_, err := NewSiteWarmer(Config{StartURL: "not a url"})
	assert.Error(t, err)
}
