package pronunciation

import "math"

// Grade buckets the overall score for display.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradeNeedsWork Grade = "needs_work"
)

// GradeFor maps an overall score in [0,1] to a Grade. The percentage is
// rounded to 1e-7 first so a weighted sum like 0.4+0.3+0.2 lands on 90.
func GradeFor(overall float64) Grade {
	switch pct := math.Round(overall*1e9) / 1e7; {
	case pct >= 90:
		return GradeExcellent
	case pct >= 75:
		return GradeGood
	case pct >= 60:
		return GradeFair
	default:
		return GradeNeedsWork
	}
}

// Assessment is the result of one Assess call. It is never mutated after
// construction.
type Assessment struct {
	Accuracy      float64        `json:"accuracy"`
	Completeness  float64        `json:"completeness"`
	Fluency       float64        `json:"fluency"`
	OverallScore  float64        `json:"overall_score"`
	Grade         Grade          `json:"grade"`
	Feedback      []string       `json:"feedback"`
	Words         []WordJudgment `json:"words"`
	InsertedCount int            `json:"inserted_count"`
	FluencyRaw    int            `json:"fluency_raw"`
}

// Assess scores actual against expected. It is total: any pair of strings,
// including empty ones, yields a fully populated Assessment.
func Assess(expected, actual string) Assessment {
	exp := Tokenize(expected)
	act := Tokenize(actual)

	words := Align(exp, act)
	m := Aggregate(exp, words)

	return Assessment{
		Accuracy:      m.Accuracy,
		Completeness:  m.Completeness,
		Fluency:       m.Fluency,
		OverallScore:  m.OverallScore,
		Grade:         GradeFor(m.OverallScore),
		Feedback:      GenerateFeedback(m.Accuracy, m.Completeness, m.InsertedCount, m.FluencyRaw),
		Words:         words,
		InsertedCount: m.InsertedCount,
		FluencyRaw:    m.FluencyRaw,
	}
}
