package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// getIntOrDefault читает целое из query. Пустое или битое значение дает def.
func getIntOrDefault(r *http.Request, key string, def int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return value
}

// formValue - значение поля формы без пробелов по краям
func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}

// formChecked - чекбокс отмечен ("on", "true", "1")
func formChecked(r *http.Request, key string) bool {
	switch strings.ToLower(r.PostFormValue(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
