package http

import (
	"net/http"
	"strconv"

	syncx "github.com/mind-engage/mindengage-speaking/internal/sync"
)

// GET /events?after=0&limit=100
func ListEventsHandler(repo *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		after, _ := strconv.ParseInt(r.URL.Query().Get("after"), 10, 64)
		ev, err := repo.Since(r.Context(), after, parseIntDefault(r.URL.Query().Get("limit"), 100))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if ev == nil {
			ev = []syncx.Event{}
		}
		writeJSON(w, http.StatusOK, ev)
	}
}
