package consent

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// consentMaxAge - срок жизни cookie согласия (12 месяцев)
const consentMaxAge = 365 * 24 * time.Hour

const tokenIssuer = "versus-web"

// valueClaims - подписанное значение cookie. Полезная нагрузка JWT остается
// читаемой для скрипта баннера, подделать ее без ключа нельзя.
type valueClaims struct {
	Value string `json:"v"`
	jwt.RegisteredClaims
}

// CookieStorage хранит записи в cookies браузера. Без ключа значение кодируется
// base64url: JSON содержит кавычки и запятые, которые net/http выбрасывает
// из значения cookie. С ключом значение упаковывается в JWT (HS256).
type CookieStorage struct {
	r          *http.Request
	w          http.ResponseWriter
	secure     bool
	signingKey []byte
	written    map[string]string
}

type CookieOption func(*CookieStorage)

// WithSigningKey включает подпись значений. Пустой ключ игнорируется.
func WithSigningKey(key string) CookieOption {
	return func(s *CookieStorage) {
		if key != "" {
			s.signingKey = []byte(key)
		}
	}
}

func NewCookieStorage(w http.ResponseWriter, r *http.Request, secure bool, opts ...CookieOption) *CookieStorage {
	s := &CookieStorage{r: r, w: w, secure: secure, written: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CookieStorage) Get(key string) (string, bool) {
	// Значение, записанное в этом же запросе, важнее пришедшего от браузера
	if value, ok := s.written[key]; ok {
		return value, true
	}
	cookie, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	value, err := s.decode(cookie.Value)
	if err != nil {
		// битое или поддельное значение - то же самое, что отсутствие согласия
		return "", false
	}
	return value, true
}

func (s *CookieStorage) Set(key, value string) error {
	encoded, err := s.encode(value)
	if err != nil {
		return err
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(consentMaxAge.Seconds()),
		Expires:  time.Now().Add(consentMaxAge),
		HttpOnly: false, // баннер на клиенте тоже читает выбор
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.written[key] = value
	return nil
}

func (s *CookieStorage) encode(value string) (string, error) {
	if len(s.signingKey) == 0 {
		return base64.RawURLEncoding.EncodeToString([]byte(value)), nil
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &valueClaims{
		Value: value,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(consentMaxAge)),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign cookie value: %w", err)
	}
	return signed, nil
}

func (s *CookieStorage) decode(raw string) (string, error) {
	if len(s.signingKey) == 0 {
		decoded, err := base64.RawURLEncoding.DecodeString(raw)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}

	claims := &valueClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return "", err
	}
	return claims.Value, nil
}
