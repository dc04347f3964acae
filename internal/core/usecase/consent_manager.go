package usecase

import (
	"encoding/json"
	"fmt"
	"time"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
)

// DefaultBannerDelay - через сколько показывать баннер после загрузки страницы
const DefaultBannerDelay = 1500 * time.Millisecond

// ConsentManager читает и пишет запись согласия на cookies через
// подменяемое хранилище. Один экземпляр живет в рамках одного запроса.
type ConsentManager struct {
	storage   port.ConsentStoragePort
	validator port.ConsentValidatorPort
	version   string
	delay     time.Duration
	now       func() time.Time

	dismissed bool
}

type ConsentOption func(*ConsentManager)

// WithClock подменяет часы (для тестов)
func WithClock(now func() time.Time) ConsentOption {
	return func(m *ConsentManager) { m.now = now }
}

func WithBannerDelay(delay time.Duration) ConsentOption {
	return func(m *ConsentManager) { m.delay = delay }
}

// WithConsentValidator включает проверку записи по JSON-схеме
func WithConsentValidator(validator port.ConsentValidatorPort) ConsentOption {
	return func(m *ConsentManager) { m.validator = validator }
}

func NewConsentManager(storage port.ConsentStoragePort, version string, opts ...ConsentOption) *ConsentManager {
	m := &ConsentManager{
		storage: storage,
		version: version,
		delay:   DefaultBannerDelay,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load возвращает сохраненную запись. Отсутствие записи, битый JSON и
// несовпадение версии политики одинаково означают "согласия еще нет".
func (m *ConsentManager) Load() (*domain.ConsentRecord, bool) {
	raw, ok := m.storage.Get(domain.ConsentStorageKey)
	if !ok || raw == "" {
		return nil, false
	}

	if m.validator != nil {
		if err := m.validator.ValidateConsent([]byte(raw)); err != nil {
			return nil, false
		}
	}

	var record domain.ConsentRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, false
	}
	if record.Version != m.version {
		return nil, false
	}
	return &record, true
}

// State - нужно ли показывать баннер и какие настройки подставить в модалку.
func (m *ConsentManager) State() domain.ConsentState {
	record, ok := m.Load()
	if !ok {
		return domain.ConsentState{
			ShowBanner:  !m.dismissed,
			BannerDelay: m.delay,
			Preferences: domain.ConsentPreferences{Necessary: true},
		}
	}
	return domain.ConsentState{
		ShowBanner:  false,
		BannerDelay: m.delay,
		Preferences: record.Preferences,
	}
}

// AcceptAll включает все категории.
func (m *ConsentManager) AcceptAll() (domain.ConsentRecord, error) {
	return m.save(domain.ConsentPreferences{Necessary: true, Analytics: true, Personalization: true})
}

// RejectOptional оставляет только необходимые cookies.
func (m *ConsentManager) RejectOptional() (domain.ConsentRecord, error) {
	return m.save(domain.ConsentPreferences{Necessary: true})
}

// SaveCustomPreferences сохраняет выбор из модалки. Necessary всегда true.
func (m *ConsentManager) SaveCustomPreferences(prefs domain.ConsentPreferences) (domain.ConsentRecord, error) {
	return m.save(prefs)
}

func (m *ConsentManager) save(prefs domain.ConsentPreferences) (domain.ConsentRecord, error) {
	record := domain.NewConsentRecord(prefs, m.now(), m.version)

	payload, err := json.Marshal(record)
	if err != nil {
		return record, fmt.Errorf("failed to marshal consent record: %w", err)
	}
	if err := m.storage.Set(domain.ConsentStorageKey, string(payload)); err != nil {
		return record, fmt.Errorf("failed to store consent record: %w", err)
	}

	m.dismissed = true
	return record, nil
}
