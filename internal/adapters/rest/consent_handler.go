package rest

import (
	"net/http"
	"strings"
	"time"
	"versus-web/internal/contextkeys"
	"versus-web/internal/core/domain"
	"versus-web/internal/core/port"
	"versus-web/internal/core/usecase"
)

// ConsentSettings - параметры баннера cookies
type ConsentSettings struct {
	Version     string
	BannerDelay time.Duration
	Validator   port.ConsentValidatorPort
	// NewStorage создает хранилище согласия для конкретного запроса
	NewStorage func(w http.ResponseWriter, r *http.Request) port.ConsentStoragePort
}

type ConsentHandler struct {
	settings ConsentSettings
}

func NewConsentHandler(settings ConsentSettings) *ConsentHandler {
	return &ConsentHandler{settings: settings}
}

func (h *ConsentHandler) manager(w http.ResponseWriter, r *http.Request) *usecase.ConsentManager {
	opts := []usecase.ConsentOption{usecase.WithBannerDelay(h.settings.BannerDelay)}
	if h.settings.Validator != nil {
		opts = append(opts, usecase.WithConsentValidator(h.settings.Validator))
	}
	return usecase.NewConsentManager(h.settings.NewStorage(w, r), h.settings.Version, opts...)
}

// State реализует ConsentStateProvider
func (h *ConsentHandler) State(w http.ResponseWriter, r *http.Request) domain.ConsentState {
	return h.manager(w, r).State()
}

type consentResponse struct {
	Preferences domain.ConsentPreferences `json:"preferences"`
	Timestamp   int64                     `json:"timestamp"`
	Version     string                    `json:"version"`
}

// Save обрабатывает POST /consentimiento. Поле action: accept_all, reject или custom.
func (h *ConsentHandler) Save(w http.ResponseWriter, r *http.Request) {
	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SaveConsent"})

	if err := r.ParseForm(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid consent form")
		return
	}

	manager := h.manager(w, r)
	action := formValue(r, "action")

	var (
		record domain.ConsentRecord
		err    error
	)
	switch action {
	case "accept_all":
		record, err = manager.AcceptAll()
	case "reject":
		record, err = manager.RejectOptional()
	case "custom":
		record, err = manager.SaveCustomPreferences(domain.ConsentPreferences{
			Analytics:       formChecked(r, "analytics"),
			Personalization: formChecked(r, "personalization"),
		})
	default:
		handlerLogger.Warn("Unknown consent action", port.Fields{"action": action})
		WriteJSONError(w, http.StatusBadRequest, "Unknown consent action")
		return
	}

	if err != nil {
		handlerLogger.Error("Failed to save consent", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to save consent")
		return
	}

	handlerLogger.Info("Consent saved", port.Fields{
		"action":          action,
		"analytics":       record.Preferences.Analytics,
		"personalization": record.Preferences.Personalization,
	})

	// fetch из скрипта баннера ждет JSON, обычная форма - редирект обратно
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		RespondWithJSON(w, http.StatusOK, consentResponse{
			Preferences: record.Preferences,
			Timestamp:   record.Timestamp,
			Version:     record.Version,
		})
		return
	}
	http.Redirect(w, r, safeReturnPath(r.PostFormValue("return_to")), http.StatusSeeOther)
}

// safeReturnPath пропускает только локальные пути, чтобы форма не стала открытым редиректом
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
