package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-speaking/internal/lesson"
	"github.com/mind-engage/mindengage-speaking/internal/rbac"
)

// POST /attempts  { "lesson_id", "phrase_id", "transcript", "confidence" }
// The attempt is recorded for the token subject.
func CreateAttemptHandler(store lesson.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req lesson.NewAttempt
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.UserID = rbac.SubjectFromContext(r.Context())
		a, err := store.RecordAttempt(r.Context(), req)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, a)
	}
}

// GET /attempts/{attemptID}
func GetAttemptHandler(store lesson.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.GetAttempt(r.Context(), chi.URLParam(r, "attemptID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if !rbac.Can(rbac.RoleFromContext(r.Context()), "attempt:view-all") && a.UserID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// GET /attempts?lesson_id=...&user_id=...&limit=50&offset=0
// Callers without attempt:view-all only ever see their own attempts.
func ListAttemptsHandler(store lesson.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := rbac.RoleFromContext(r.Context())
		q := r.URL.Query()

		userID := strings.TrimSpace(q.Get("user_id"))
		if !rbac.Can(role, "attempt:view-all") {
			userID = rbac.SubjectFromContext(r.Context())
		}

		list, err := store.ListAttempts(r.Context(), lesson.AttemptListOpts{
			LessonID: strings.TrimSpace(q.Get("lesson_id")),
			UserID:   userID,
			Limit:    parseIntDefault(q.Get("limit"), 50),
			Offset:   parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
