// Package health exposes the readiness probe endpoint.
package health

import (
	"context"
	"encoding/json"
	"net/http"
)

// ReadinessChecker reports whether the service can serve traffic.
type ReadinessChecker interface {
	IsReady(ctx context.Context) (bool, error)
}

type checkResponse struct {
	Status string `json:"status"`
}

// NewHandler returns the /healthz handler. It answers 200 once the checker
// reports ready and 503 otherwise, so orchestrators hold traffic during
// datastore warm-up.
func NewHandler(checker ReadinessChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ready, err := checker.IsReady(r.Context())
		if err != nil || !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(checkResponse{Status: "NOT_SERVING"})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(checkResponse{Status: "SERVING"})
	})
}
