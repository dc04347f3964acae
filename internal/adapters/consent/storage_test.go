package consent

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const record = `{"preferences":{"necessary":true,"analytics":true,"personalization":false},"timestamp":1700000000000,"version":"1.0"}`

func TestCookieStorage_RoundTripThroughBrowser(t *testing.T) {
	// первый запрос: пишем cookie
	rec := httptest.NewRecorder()
	storage := NewCookieStorage(rec, httptest.NewRequest(http.MethodPost, "/consentimiento", nil), true)
	require.NoError(t, storage.Set(domain.ConsentStorageKey, record))

	value, ok := storage.Get(domain.ConsentStorageKey)
	require.True(t, ok, "значение видно в том же запросе")
	assert.Equal(t, record, value)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, domain.ConsentStorageKey, cookie.Name)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.NotContains(t, cookie.Value, `"`)

	// второй запрос: браузер присылает cookie обратно
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookie)
	reloaded := NewCookieStorage(httptest.NewRecorder(), next, true)

	value, ok = reloaded.Get(domain.ConsentStorageKey)
	require.True(t, ok)
	assert.Equal(t, record, value)
}

func TestCookieStorage_MissingAndCorrupted(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	storage := NewCookieStorage(httptest.NewRecorder(), req, false)

	_, ok := storage.Get(domain.ConsentStorageKey)
	assert.False(t, ok)

	req.AddCookie(&http.Cookie{Name: domain.ConsentStorageKey, Value: "***not-base64***"})
	_, ok = storage.Get(domain.ConsentStorageKey)
	assert.False(t, ok)
}

func TestCookieStorage_WithConsentManager(t *testing.T) {
	rec := httptest.NewRecorder()
	storage := NewCookieStorage(rec, httptest.NewRequest(http.MethodPost, "/", nil), false)
	manager := usecase.NewConsentManager(storage, "2.0")

	assert.True(t, manager.State().ShowBanner)
	_, err := manager.RejectOptional()
	require.NoError(t, err)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	reloaded := usecase.NewConsentManager(NewCookieStorage(httptest.NewRecorder(), next, false), "2.0")
	state := reloaded.State()
	assert.False(t, state.ShowBanner)
	assert.True(t, state.Preferences.Necessary)
	assert.False(t, state.Preferences.Analytics)
}

func TestMemoryStorage(t *testing.T) {
	storage := NewMemoryStorage()

	_, ok := storage.Get("k")
	assert.False(t, ok)

	require.NoError(t, storage.Set("k", "v"))
	value, ok := storage.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestCookieStorage_Signed(t *testing.T) {
	rec := httptest.NewRecorder()
	storage := NewCookieStorage(rec, httptest.NewRequest(http.MethodPost, "/", nil), false, WithSigningKey("s3cret"))
	require.NoError(t, storage.Set(domain.ConsentStorageKey, record))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, 2, strings.Count(cookies[0].Value, "."), "значение упаковано в JWT")

	t.Run("same key reads the value", func(t *testing.T) {
		next := httptest.NewRequest(http.MethodGet, "/", nil)
		next.AddCookie(cookies[0])

		value, ok := NewCookieStorage(httptest.NewRecorder(), next, false, WithSigningKey("s3cret")).Get(domain.ConsentStorageKey)
		require.True(t, ok)
		assert.Equal(t, record, value)
	})

	t.Run("other key rejects the value", func(t *testing.T) {
		next := httptest.NewRequest(http.MethodGet, "/", nil)
		next.AddCookie(cookies[0])

		_, ok := NewCookieStorage(httptest.NewRecorder(), next, false, WithSigningKey("other")).Get(domain.ConsentStorageKey)
		assert.False(t, ok)
	})

	t.Run("unsigned value is rejected when signing is on", func(t *testing.T) {
		next := httptest.NewRequest(http.MethodGet, "/", nil)
		next.AddCookie(&http.Cookie{Name: domain.ConsentStorageKey, Value: base64.RawURLEncoding.EncodeToString([]byte(record))})

		_, ok := NewCookieStorage(httptest.NewRecorder(), next, false, WithSigningKey("s3cret")).Get(domain.ConsentStorageKey)
		assert.False(t, ok)
	})
}

func TestWithSigningKey_EmptyKeepsPlainEncoding(t *testing.T) {
	storage := NewCookieStorage(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), false, WithSigningKey(""))
	assert.Empty(t, storage.signingKey)
}
