package lesson_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-speaking/internal/db"
	"github.com/mind-engage/mindengage-speaking/internal/grading"
	"github.com/mind-engage/mindengage-speaking/internal/lesson"
	"github.com/mind-engage/mindengage-speaking/internal/pronunciation"
	syncx "github.com/mind-engage/mindengage-speaking/internal/sync"
)

func newStore(t *testing.T) (*lesson.SQLStore, *syncx.EventRepo) {
	t.Helper()
	h, err := db.Open(context.Background(), db.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	events := syncx.NewEventRepo(h, "test")
	return lesson.NewSQLStore(h, grading.NewDefaultGrader(), events), events
}

var greetings = lesson.Lesson{
	ID:    "greetings",
	Title: "Greetings",
	Level: "starters",
	Phrases: []lesson.Phrase{
		{ID: "p1", Text: "Good morning", Points: 10},
		{ID: "p2", Text: "I am happy", Points: 10},
		{ID: "w1", Type: grading.TypeSpelling, Text: "elephant", Points: 2},
	},
}

func TestSQLStore_Lessons(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.PutLesson(ctx, greetings))
	require.NoError(t, s.PutLesson(ctx, lesson.Lesson{ID: "animals", Title: "Animals", Level: "movers"}))

	got, err := s.GetLesson(ctx, "greetings")
	require.NoError(t, err)
	assert.Equal(t, greetings.Phrases, got.Phrases)
	assert.NotZero(t, got.CreatedAt)

	list, err := s.ListLessons(ctx, lesson.ListOpts{Level: "movers"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "animals", list[0].ID)

	list, err = s.ListLessons(ctx, lesson.ListOpts{Q: "GREET"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "greetings", list[0].ID)

	_, err = s.GetLesson(ctx, "missing")
	assert.ErrorIs(t, err, lesson.ErrNotFound)
}

func TestSQLStore_PutLessonValidation(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	err := s.PutLesson(ctx, lesson.Lesson{Title: "no id"})
	assert.ErrorIs(t, err, lesson.ErrInvalid)

	err = s.PutLesson(ctx, lesson.Lesson{ID: "x", Phrases: []lesson.Phrase{{ID: "a"}, {ID: "a"}}})
	assert.ErrorIs(t, err, lesson.ErrInvalid)
}

func TestSQLStore_RecordAttempt(t *testing.T) {
	ctx := context.Background()
	s, events := newStore(t)
	require.NoError(t, s.PutLesson(ctx, greetings))

	a, err := s.RecordAttempt(ctx, lesson.NewAttempt{
		LessonID: "greetings", PhraseID: "p2", UserID: "kid-1", Transcript: "I am hapy", Confidence: 0.92,
	})
	require.NoError(t, err)
	require.NotNil(t, a.Assessment)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, pronunciation.Mispronounced, a.Assessment.Words[2].Status)
	assert.InDelta(t, 10*a.Assessment.OverallScore, a.Score, 1e-9)
	assert.Equal(t, string(pronunciation.GradeFor(a.Assessment.OverallScore)), a.Grade)

	stored, err := s.GetAttempt(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Transcript, stored.Transcript)
	assert.Equal(t, a.Feedback, stored.Feedback)
	require.NotNil(t, stored.Assessment)
	assert.Equal(t, a.Assessment.Words, stored.Assessment.Words)

	ev, err := events.Since(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, ev, 1)
	assert.Equal(t, syncx.TypeAttemptAssessed, ev[0].Type)
	assert.Equal(t, a.ID, ev[0].Key)
}

func TestSQLStore_RecordAttemptSpelling(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.PutLesson(ctx, greetings))

	a, err := s.RecordAttempt(ctx, lesson.NewAttempt{LessonID: "greetings", PhraseID: "w1", UserID: "kid-1", Transcript: "Elephant"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, a.Score)
	assert.Nil(t, a.Assessment)
	assert.Empty(t, a.Grade)
}

func TestSQLStore_RecordAttemptErrors(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.PutLesson(ctx, greetings))

	_, err := s.RecordAttempt(ctx, lesson.NewAttempt{LessonID: "greetings", PhraseID: "p1"})
	assert.ErrorIs(t, err, lesson.ErrInvalid)

	_, err = s.RecordAttempt(ctx, lesson.NewAttempt{LessonID: "nope", PhraseID: "p1", UserID: "u"})
	assert.ErrorIs(t, err, lesson.ErrNotFound)

	_, err = s.RecordAttempt(ctx, lesson.NewAttempt{LessonID: "greetings", PhraseID: "p9", UserID: "u"})
	assert.ErrorIs(t, err, lesson.ErrNotFound)

	_, err = s.GetAttempt(ctx, "missing")
	assert.ErrorIs(t, err, lesson.ErrNotFound)
}

func TestSQLStore_ListAttempts(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.PutLesson(ctx, greetings))

	for _, u := range []string{"kid-1", "kid-1", "kid-2"} {
		_, err := s.RecordAttempt(ctx, lesson.NewAttempt{LessonID: "greetings", PhraseID: "p1", UserID: u, Transcript: "good morning"})
		require.NoError(t, err)
	}

	mine, err := s.ListAttempts(ctx, lesson.AttemptListOpts{UserID: "kid-1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := s.ListAttempts(ctx, lesson.AttemptListOpts{LessonID: "greetings", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := s.ListAttempts(ctx, lesson.AttemptListOpts{UserID: "kid-3"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

type failingAppender struct{ err error }

func (f failingAppender) AppendTx(context.Context, syncx.Execer, string, string, any) error {
	return f.err
}

func TestSQLStore_RecordAttemptRollsBackOnEventError(t *testing.T) {
	ctx := context.Background()
	h, err := db.Open(ctx, db.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	boom := errors.New("event log unavailable")
	s := lesson.NewSQLStore(h, grading.NewDefaultGrader(), failingAppender{err: boom})
	require.NoError(t, s.PutLesson(ctx, greetings))

	_, err = s.RecordAttempt(ctx, lesson.NewAttempt{LessonID: "greetings", PhraseID: "p1", UserID: "kid-1", Transcript: "good morning"})
	require.ErrorIs(t, err, boom)

	list, err := s.ListAttempts(ctx, lesson.AttemptListOpts{UserID: "kid-1"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLStore_GetAttemptCorruptDetail(t *testing.T) {
	ctx := context.Background()
	h, err := db.Open(ctx, db.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	s := lesson.NewSQLStore(h, grading.NewDefaultGrader(), nil)
	require.NoError(t, s.PutLesson(ctx, greetings))
	a, err := s.RecordAttempt(ctx, lesson.NewAttempt{LessonID: "greetings", PhraseID: "p1", UserID: "kid-1", Transcript: "good morning"})
	require.NoError(t, err)

	_, err = h.ExecContext(ctx, `UPDATE attempts SET assessment_json=$1 WHERE id=$2`, "{not json", a.ID)
	require.NoError(t, err)

	_, err = s.GetAttempt(ctx, a.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, lesson.ErrNotFound)

	_, err = s.ListAttempts(ctx, lesson.AttemptListOpts{UserID: "kid-1"})
	assert.Error(t, err)
}
