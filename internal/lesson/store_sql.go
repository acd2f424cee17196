package lesson

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/mindengage-speaking/internal/grading"
	"github.com/mind-engage/mindengage-speaking/internal/pronunciation"
	syncx "github.com/mind-engage/mindengage-speaking/internal/sync"
)

type SQLStore struct {
	db     *sql.DB
	grader grading.Grader
	events EventAppender // optional
}

func NewSQLStore(db *sql.DB, grader grading.Grader, events EventAppender) *SQLStore {
	if grader == nil {
		grader = grading.NewDefaultGrader()
	}
	return &SQLStore{db: db, grader: grader, events: events}
}

func (s *SQLStore) PutLesson(ctx context.Context, l Lesson) error {
	if err := validateLesson(l); err != nil {
		return err
	}
	pj, err := json.Marshal(l.Phrases)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO lessons (id,title,level,phrases_json,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, level=EXCLUDED.level, phrases_json=EXCLUDED.phrases_json`,
		l.ID, l.Title, l.Level, string(pj), time.Now().Unix())
	return err
}

func validateLesson(l Lesson) error {
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("%w: lesson id required", ErrInvalid)
	}
	seen := make(map[string]struct{}, len(l.Phrases))
	for i, p := range l.Phrases {
		if p.ID == "" {
			return fmt.Errorf("%w: phrase %d has no id", ErrInvalid, i)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate phrase id %q", ErrInvalid, p.ID)
		}
		seen[p.ID] = struct{}{}
		if p.Points < 0 {
			return fmt.Errorf("%w: phrase %q has negative points", ErrInvalid, p.ID)
		}
	}
	return nil
}

func (s *SQLStore) GetLesson(ctx context.Context, id string) (Lesson, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,level,phrases_json,created_at FROM lessons WHERE id=$1`, id)
	l, err := scanLesson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Lesson{}, fmt.Errorf("lesson %q: %w", id, ErrNotFound)
	}
	return l, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLesson(sc scanner) (Lesson, error) {
	var l Lesson
	var pjson string
	if err := sc.Scan(&l.ID, &l.Title, &l.Level, &pjson, &l.CreatedAt); err != nil {
		return Lesson{}, err
	}
	if err := json.Unmarshal([]byte(pjson), &l.Phrases); err != nil {
		return Lesson{}, err
	}
	return l, nil
}

func (s *SQLStore) ListLessons(ctx context.Context, opts ListOpts) ([]Lesson, error) {
	limit, offset := clampPage(opts.Limit, opts.Offset)
	q := `SELECT id,title,level,phrases_json,created_at FROM lessons WHERE 1=1`
	var args []any
	if opts.Q != "" {
		args = append(args, "%"+strings.ToLower(opts.Q)+"%")
		q += fmt.Sprintf(` AND LOWER(title) LIKE $%d`, len(args))
	}
	if opts.Level != "" {
		args = append(args, opts.Level)
		q += fmt.Sprintf(` AND level = $%d`, len(args))
	}
	args = append(args, limit, offset)
	q += fmt.Sprintf(` ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Lesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLStore) RecordAttempt(ctx context.Context, in NewAttempt) (Attempt, error) {
	if in.LessonID == "" || in.PhraseID == "" || in.UserID == "" {
		return Attempt{}, fmt.Errorf("%w: lesson_id, phrase_id and user_id required", ErrInvalid)
	}
	l, err := s.GetLesson(ctx, in.LessonID)
	if err != nil {
		return Attempt{}, err
	}
	p, ok := l.Phrase(in.PhraseID)
	if !ok {
		return Attempt{}, fmt.Errorf("phrase %q in lesson %q: %w", in.PhraseID, in.LessonID, ErrNotFound)
	}

	res, err := s.grader.Grade(ctx, toGradingQ(p), in.Transcript)
	if err != nil {
		return Attempt{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	a := Attempt{
		ID:         uuid.NewString(),
		LessonID:   in.LessonID,
		PhraseID:   in.PhraseID,
		UserID:     in.UserID,
		Transcript: in.Transcript,
		Confidence: in.Confidence,
		Score:      res.AutoPoints,
		Feedback:   res.Feedback,
		Assessment: res.Assessment,
		CreatedAt:  time.Now().Unix(),
	}
	if res.Assessment != nil {
		a.Grade = string(res.Assessment.Grade)
	}

	aj, err := json.Marshal(attemptDetail{Feedback: a.Feedback, Assessment: a.Assessment})
	if err != nil {
		return Attempt{}, err
	}
	if err := s.insertAttempt(ctx, a, aj); err != nil {
		return Attempt{}, err
	}
	return a, nil
}

// insertAttempt writes the attempt row and its event in one transaction.
func (s *SQLStore) insertAttempt(ctx context.Context, a Attempt, detail []byte) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO attempts
		(id,lesson_id,phrase_id,user_id,transcript,confidence,score,grade,assessment_json,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.LessonID, a.PhraseID, a.UserID, a.Transcript, a.Confidence, a.Score, a.Grade, string(detail), a.CreatedAt)
	if err != nil {
		return err
	}

	if s.events != nil {
		ev := map[string]any{"lesson_id": a.LessonID, "phrase_id": a.PhraseID, "user_id": a.UserID, "score": a.Score, "grade": a.Grade}
		if err = s.events.AppendTx(ctx, tx, syncx.TypeAttemptAssessed, a.ID, ev); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}
	return nil
}

// attemptDetail is the JSON blob stored alongside the scalar columns.
type attemptDetail struct {
	Feedback   []string                  `json:"feedback,omitempty"`
	Assessment *pronunciation.Assessment `json:"assessment,omitempty"`
}

func toGradingQ(p Phrase) grading.Q {
	typ := p.Type
	if typ == "" {
		typ = grading.TypeSpeaking
	}
	key := p.AnswerKey
	if typ == grading.TypeSpeaking || len(key) == 0 {
		key = []string{p.Text}
	}
	return grading.Q{Type: typ, Points: p.Points, AnswerKey: key}
}

const attemptCols = `id,lesson_id,phrase_id,user_id,transcript,confidence,score,grade,assessment_json,created_at`

func scanAttempt(sc scanner) (Attempt, error) {
	var a Attempt
	var detail string
	if err := sc.Scan(&a.ID, &a.LessonID, &a.PhraseID, &a.UserID, &a.Transcript, &a.Confidence, &a.Score, &a.Grade, &detail, &a.CreatedAt); err != nil {
		return Attempt{}, err
	}
	var d attemptDetail
	if err := json.Unmarshal([]byte(detail), &d); err != nil {
		return Attempt{}, fmt.Errorf("attempt %q detail: %w", a.ID, err)
	}
	a.Feedback, a.Assessment = d.Feedback, d.Assessment
	return a, nil
}

func (s *SQLStore) GetAttempt(ctx context.Context, id string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+attemptCols+` FROM attempts WHERE id=$1`, id)
	a, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Attempt{}, fmt.Errorf("attempt %q: %w", id, ErrNotFound)
	}
	return a, err
}

func (s *SQLStore) ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error) {
	limit, offset := clampPage(opts.Limit, opts.Offset)
	q := `SELECT ` + attemptCols + ` FROM attempts WHERE 1=1`
	var args []any
	if opts.LessonID != "" {
		args = append(args, opts.LessonID)
		q += fmt.Sprintf(` AND lesson_id = $%d`, len(args))
	}
	if opts.UserID != "" {
		args = append(args, opts.UserID)
		q += fmt.Sprintf(` AND user_id = $%d`, len(args))
	}
	args = append(args, limit, offset)
	q += fmt.Sprintf(` ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Attempt{}
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
