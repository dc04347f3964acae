package domain

import "time"

// ConsentStorageKey - ключ, под которым хранится запись согласия
const ConsentStorageKey = "cookie-consent"

// ConsentPreferences - выбор пользователя по категориям cookies.
// Necessary всегда true, пользователь не может его отключить.
type ConsentPreferences struct {
	Necessary       bool `json:"necessary"`
	Analytics       bool `json:"analytics"`
	Personalization bool `json:"personalization"`
}

// ConsentRecord - то, что сохраняется в хранилище под ConsentStorageKey.
type ConsentRecord struct {
	Preferences ConsentPreferences `json:"preferences"`
	Timestamp   int64              `json:"timestamp"` // unix, миллисекунды
	Version     string             `json:"version"`
}

// NewConsentRecord собирает запись, принудительно включая необходимые cookies.
func NewConsentRecord(prefs ConsentPreferences, at time.Time, version string) ConsentRecord {
	prefs.Necessary = true
	return ConsentRecord{
		Preferences: prefs,
		Timestamp:   at.UnixMilli(),
		Version:     version,
	}
}

// ConsentState - то, что нужно шаблону для отрисовки баннера.
type ConsentState struct {
	ShowBanner  bool
	BannerDelay time.Duration
	Preferences ConsentPreferences
}
