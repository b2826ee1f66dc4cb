package server

import (
	"encoding/json"
	"net/http"
)

// HealthHandler reports process liveness and the configured backend names.
type HealthHandler struct {
	service  string
	endpoint string
	backends []string
}

// NewHealthHandler creates the liveness handler. backends lists the
// integrated backend service names as configured, sorted by the caller.
func NewHealthHandler(service, graphqlEndpoint string, backends []string) *HealthHandler {
	return &HealthHandler{service: service, endpoint: graphqlEndpoint, backends: backends}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":           "healthy",
		"service":          h.service,
		"graphql_endpoint": h.endpoint,
		"backends":         h.backends,
	})
}
