package lesson

import "github.com/mind-engage/mindengage-speaking/internal/pronunciation"

type Phrase struct {
	ID     string  `json:"id"`
	Type   string  `json:"type,omitempty"` // speaking (default), spelling, mcq_single, true_false
	Text   string  `json:"text"`           // what the learner is asked to say
	IPA    string  `json:"ipa,omitempty"`
	Points float64 `json:"points"`

	AnswerKey []string `json:"answer_key,omitempty"` // non-speaking items only
}

type Lesson struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Level   string   `json:"level,omitempty"` // starters|movers|flyers
	Phrases []Phrase `json:"phrases"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

type Attempt struct {
	ID         string  `json:"id"`
	LessonID   string  `json:"lesson_id"`
	PhraseID   string  `json:"phrase_id"`
	UserID     string  `json:"user_id"`
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"` // recognizer confidence, as reported upstream
	Score      float64 `json:"score"`      // points awarded
	Grade      string  `json:"grade,omitempty"`

	Feedback   []string                  `json:"feedback,omitempty"`
	Assessment *pronunciation.Assessment `json:"assessment,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

func (l Lesson) Phrase(id string) (Phrase, bool) {
	for _, p := range l.Phrases {
		if p.ID == id {
			return p, true
		}
	}
	return Phrase{}, false
}
