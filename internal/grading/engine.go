package grading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mind-engage/mindengage-speaking/internal/pronunciation"
)

// Item types understood by the default grader.
const (
	TypeSpeaking  = "speaking"
	TypeSpelling  = "spelling"
	TypeMCQSingle = "mcq_single"
	TypeTrueFalse = "true_false"
)

// Q is a minimal view of a practice item needed for grading.
type Q struct {
	Type      string
	Points    float64
	AnswerKey []string // speaking: [phrase]; spelling/mcq: accepted answers
}

// Result is the outcome of grading a single response.
type Result struct {
	AutoPoints  float64  // points awarded automatically
	MaxPoints   float64  // the item's max points
	NeedsManual bool     // true if teacher review is required
	Feedback    []string // optional notes

	// Set by the speaking strategy only.
	Assessment *pronunciation.Assessment
}

// Strategy grades a single item.
type Strategy interface {
	Grade(ctx context.Context, q Q, response interface{}) (Result, error)
}

// Grader routes by item type to the correct Strategy.
type Grader interface {
	Grade(ctx context.Context, q Q, response interface{}) (Result, error)
}

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Grade(ctx context.Context, q Q, response interface{}) (Result, error) {
	s, ok := g.strategies[q.Type]
	if !ok {
		return Result{MaxPoints: q.Points, NeedsManual: true, Feedback: []string{"no strategy available"}}, nil
	}
	return s.Grade(ctx, q, response)
}

// Engine options

type Option func(*config)

type config struct {
	SpellingThreshold float64 // min similarity for half credit on spelling
}

func WithSpellingThreshold(v float64) Option { return func(c *config) { c.SpellingThreshold = v } }

// NewDefaultGrader installs built-in strategies.
func NewDefaultGrader(opts ...Option) Grader {
	cfg := &config{
		SpellingThreshold: 0.75,
	}
	for _, o := range opts {
		o(cfg)
	}
	return &defaultGrader{
		strategies: map[string]Strategy{
			TypeSpeaking:  speakingStrategy{},
			TypeSpelling:  spellingStrategy{threshold: cfg.SpellingThreshold},
			TypeMCQSingle: mcqSingleStrategy{},
			TypeTrueFalse: mcqSingleStrategy{},
		},
	}
}

// --- Strategies ---

// speakingStrategy scores a recognizer transcript against the phrase in
// AnswerKey[0]. Points scale with the overall pronunciation score.
type speakingStrategy struct{}

func (speakingStrategy) Grade(_ context.Context, q Q, response interface{}) (Result, error) {
	res := Result{MaxPoints: q.Points}
	transcript, ok := response.(string)
	if !ok {
		return res, errors.New("response must be string")
	}
	if len(q.AnswerKey) == 0 {
		return res, errors.New("speaking item has no phrase")
	}
	a := pronunciation.Assess(q.AnswerKey[0], transcript)
	res.AutoPoints = q.Points * a.OverallScore
	res.Feedback = append(res.Feedback, a.Feedback...)
	res.Assessment = &a
	return res, nil
}

// spellingStrategy grades a single typed or spoken word. Exact match earns
// full points; a near miss at or above threshold earns half.
type spellingStrategy struct{ threshold float64 }

func (s spellingStrategy) Grade(_ context.Context, q Q, response interface{}) (Result, error) {
	res := Result{MaxPoints: q.Points}
	resp, ok := response.(string)
	if !ok {
		return res, errors.New("response must be string")
	}
	normResp := strings.Join(pronunciation.Tokenize(resp), " ")

	best := 0.0
	for _, k := range q.AnswerKey {
		nk := strings.Join(pronunciation.Tokenize(k), " ")
		if nk == normResp {
			res.AutoPoints = q.Points
			return res, nil
		}
		best = max(best, pronunciation.SimilarityRatio(nk, normResp))
	}
	if normResp != "" && best >= s.threshold {
		res.AutoPoints = q.Points * 0.5
		res.Feedback = append(res.Feedback, fmt.Sprintf("close match (%.0f%% similar)", best*100))
	}
	return res, nil
}

type mcqSingleStrategy struct{}

func (mcqSingleStrategy) Grade(_ context.Context, q Q, response interface{}) (Result, error) {
	res := Result{MaxPoints: q.Points}
	resp, ok := response.(string)
	if !ok {
		return res, errors.New("response must be string")
	}
	for _, k := range q.AnswerKey {
		if resp == k {
			res.AutoPoints = q.Points
			return res, nil
		}
	}
	return res, nil
}
