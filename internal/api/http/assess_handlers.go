package http

import (
	"encoding/json"
	"net/http"

	"github.com/mind-engage/mindengage-speaking/internal/pronunciation"
)

// maxAssessText bounds each side of a stateless assessment. Scoring cost grows
// with phrase length times word length.
const maxAssessText = 2000

// POST /assess  { "expected": "...", "actual": "..." }
func AssessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Expected string `json:"expected"`
			Actual   string `json:"actual"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if len(req.Expected) > maxAssessText || len(req.Actual) > maxAssessText {
			http.Error(w, "text too long", http.StatusRequestEntityTooLarge)
			return
		}
		writeJSON(w, http.StatusOK, pronunciation.Assess(req.Expected, req.Actual))
	}
}
