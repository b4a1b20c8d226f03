package http

import (
	"encoding/json"
	"net/http"
)

// Status тело ответа health endpoint
type Status struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}

// Handler возвращает handler для GET /health.
// 200 {"status":"ok"} если readiness не задана или вернула true,
// иначе 503 {"status":"not ready"}.
func Handler(service string, readiness func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := http.StatusOK
		body := Status{Status: "ok", Service: service}
		if readiness != nil && !readiness() {
			code = http.StatusServiceUnavailable
			body.Status = "not ready"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	}
}
