package http

import (
	"encoding/json"
	"net/http"

	"quiz-runner/internal/app"
	"quiz-runner/internal/domain"
)

// SourcesHandler serves the filter dropdown choices over plain HTTP, for
// clients that want them before opening the WebSocket.
func SourcesHandler(service *app.QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sources, err := service.Sources(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(sourcesPayload{
			Sources: append([]string{domain.FilterAll}, sources...),
		})
	}
}
