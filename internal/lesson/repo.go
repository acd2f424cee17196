package lesson

import (
	"context"
	"errors"

	syncx "github.com/mind-engage/mindengage-speaking/internal/sync"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
)

type ListOpts struct {
	Q      string
	Level  string
	Limit  int
	Offset int
}

type AttemptListOpts struct {
	LessonID string
	UserID   string
	Limit    int
	Offset   int
}

type NewAttempt struct {
	LessonID   string  `json:"lesson_id"`
	PhraseID   string  `json:"phrase_id"`
	UserID     string  `json:"-"`
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

type Store interface {
	PutLesson(ctx context.Context, l Lesson) error
	GetLesson(ctx context.Context, id string) (Lesson, error)
	ListLessons(ctx context.Context, opts ListOpts) ([]Lesson, error)

	// RecordAttempt grades the transcript against the phrase and persists the result.
	RecordAttempt(ctx context.Context, in NewAttempt) (Attempt, error)
	GetAttempt(ctx context.Context, id string) (Attempt, error)
	ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error)
}

// EventAppender receives a record of every graded attempt inside the
// transaction that stores it.
type EventAppender interface {
	AppendTx(ctx context.Context, ex syncx.Execer, typ, key string, payload any) error
}
