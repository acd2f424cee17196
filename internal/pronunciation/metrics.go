package pronunciation

// Score weights. They sum to 1 so the overall score stays in [0,1].
const (
	accuracyWeight     = 0.5
	fluencyWeight      = 0.3
	completenessWeight = 0.2

	insertionPenalty = 10
	breakPenalty     = 5
)

// Metrics are the scalar reductions of a judgment list.
type Metrics struct {
	Accuracy      float64
	Completeness  float64
	Fluency       float64
	OverallScore  float64
	FluencyRaw    int
	Breaks        int
	CorrectCount  int
	PresentCount  int
	InsertedCount int
}

// Aggregate reduces judgments to accuracy, completeness, fluency and the
// weighted overall score. An empty expected phrase scores 1 on accuracy and
// completeness.
func Aggregate(expected []string, judgments []WordJudgment) Metrics {
	var m Metrics
	for _, j := range judgments {
		switch j.Status {
		case Correct:
			m.CorrectCount++
			m.PresentCount++
		case Mispronounced:
			m.PresentCount++
		case Inserted:
			m.InsertedCount++
		case Omitted:
		}
	}

	m.Accuracy, m.Completeness = 1, 1
	if len(expected) > 0 {
		m.Accuracy = float64(m.CorrectCount) / float64(len(expected))
		m.Completeness = float64(m.PresentCount) / float64(len(expected))
	}

	m.Breaks = countBreaks(judgments)
	m.FluencyRaw = clampPercent(100 - m.InsertedCount*insertionPenalty - m.Breaks*breakPenalty)
	m.Fluency = float64(m.FluencyRaw) / 100

	m.OverallScore = accuracyWeight*m.Accuracy + fluencyWeight*m.Fluency + completenessWeight*m.Completeness
	return m
}

// countBreaks counts fluent/non-fluent transitions between consecutive
// judgments. A transition landing on an Inserted word is not counted; the
// first judgment has no predecessor.
func countBreaks(judgments []WordJudgment) int {
	breaks := 0
	for i := 1; i < len(judgments); i++ {
		prev, cur := judgments[i-1].Status.Present(), judgments[i].Status.Present()
		if prev != cur && judgments[i].Status != Inserted {
			breaks++
		}
	}
	return breaks
}

func clampPercent(v int) int {
	return min(max(v, 0), 100)
}
