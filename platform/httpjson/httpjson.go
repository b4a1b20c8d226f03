// Package httpjson содержит helpers для JSON ответов HTTP API сервисов.
package httpjson

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorBody тело ответа с ошибкой
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Write кодирует v в JSON и пишет его с указанным статусом.
// Ошибка кодирования логируется: заголовок уже отправлен, изменить ответ нельзя.
func Write(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// WriteError пишет ErrorBody с указанным статусом
func WriteError(w http.ResponseWriter, logger *zap.Logger, status int, message, details string) {
	Write(w, logger, status, ErrorBody{Error: message, Details: details})
}
