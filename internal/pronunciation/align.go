package pronunciation

import "math"

// suggestThreshold is the similarity below which a mispronounced word gets
// an explicit "Try:" hint.
const suggestThreshold = 0.6

// WordJudgment is the verdict for one aligned position.
type WordJudgment struct {
	Spoken      string  `json:"spoken"`
	Expected    string  `json:"expected"`
	Status      Status  `json:"status"`
	Similarity  float64 `json:"similarity"`
	Percent     int     `json:"percent"`
	SoundsAlike bool    `json:"sounds_alike,omitempty"`
	Suggestion  string  `json:"suggestion,omitempty"`
}

// Align pairs expected and actual tokens by index. Positions past the end of
// actual are Omitted; positions past the end of expected are Inserted, with
// Expected mirroring the spoken word.
func Align(expected, actual []string) []WordJudgment {
	n := max(len(expected), len(actual))
	out := make([]WordJudgment, 0, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(expected) && i < len(actual):
			out = append(out, judgePair(expected[i], actual[i]))
		case i < len(expected):
			out = append(out, WordJudgment{
				Expected:   expected[i],
				Status:     Omitted,
				Suggestion: "Remember to say: " + expected[i],
			})
		default:
			out = append(out, WordJudgment{
				Spoken:     actual[i],
				Expected:   actual[i],
				Status:     Inserted,
				Suggestion: "Extra word",
			})
		}
	}
	return out
}

func judgePair(exp, act string) WordJudgment {
	if exp == act {
		return WordJudgment{Spoken: act, Expected: exp, Status: Correct, Similarity: 1, Percent: 100}
	}
	// Tokens differ, so the ratio is below 1. Any present-but-different
	// word is Mispronounced, however low the similarity.
	sim := SimilarityRatio(exp, act)
	j := WordJudgment{
		Spoken:      act,
		Expected:    exp,
		Status:      Mispronounced,
		Similarity:  sim,
		Percent:     percent(sim),
		SoundsAlike: SoundsAlike(exp, act),
	}
	if sim < suggestThreshold {
		j.Suggestion = "Try: " + exp
	}
	return j
}

func percent(ratio float64) int {
	p := int(math.Round(ratio * 100))
	return min(max(p, 0), 100)
}
