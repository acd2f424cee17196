package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-speaking/internal/lesson"
	"github.com/mind-engage/mindengage-speaking/internal/rbac"
)

// POST /lessons
func UploadLessonHandler(store lesson.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var l lesson.Lesson
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.PutLesson(r.Context(), l); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": l.ID})
	}
}

// GET /lessons/{lessonID}
// Answer keys of non-speaking items are stripped unless the caller can create lessons.
func GetLessonHandler(store lesson.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := store.GetLesson(r.Context(), chi.URLParam(r, "lessonID"))
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if !rbac.Can(rbac.RoleFromContext(r.Context()), "lesson:create") {
			for i := range l.Phrases {
				l.Phrases[i].AnswerKey = nil
			}
		}
		writeJSON(w, http.StatusOK, l)
	}
}

// GET /lessons?q=...&level=...&limit=50&offset=0
func ListLessonsHandler(store lesson.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		list, err := store.ListLessons(r.Context(), lesson.ListOpts{
			Q:      strings.TrimSpace(q.Get("q")),
			Level:  strings.TrimSpace(q.Get("level")),
			Limit:  parseIntDefault(q.Get("limit"), 50),
			Offset: parseIntDefault(q.Get("offset"), 0),
		})
		if err != nil {
			writeStoreError(w, err)
			return
		}
		type summary struct {
			ID      string `json:"id"`
			Title   string `json:"title"`
			Level   string `json:"level,omitempty"`
			Phrases int    `json:"phrase_count"`
		}
		out := make([]summary, 0, len(list))
		for _, l := range list {
			out = append(out, summary{ID: l.ID, Title: l.Title, Level: l.Level, Phrases: len(l.Phrases)})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lesson.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, lesson.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
