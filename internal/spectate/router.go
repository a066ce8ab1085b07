package spectate

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/samdwyer/scavenger/internal/scores"
)

// DefaultTop is how many scores /scores returns without a limit.
const DefaultTop = 10

// NewRouter serves /healthz, /scores and the /ws event stream. store may be
// nil, in which case /scores answers 404.
func NewRouter(hub *Hub, store scores.Store, logger logr.Logger) http.Handler {
	logger = logger.WithName("http")
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "spectators": hub.Len()})
	})
	if store != nil {
		r.Get("/scores", func(w http.ResponseWriter, req *http.Request) {
			limit := DefaultTop
			if s := req.URL.Query().Get("limit"); s != "" {
				n, err := strconv.Atoi(s)
				if err != nil || n < 1 {
					respondJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
					return
				}
				limit = n
			}
			top, err := store.Top(req.Context(), limit)
			if err != nil {
				logger.Error(err, "list scores")
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "scores unavailable"})
				return
			}
			if top == nil {
				top = []scores.Entry{}
			}
			respondJSON(w, http.StatusOK, top)
		})
	}
	r.Handle("/ws", hub)
	return r
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
