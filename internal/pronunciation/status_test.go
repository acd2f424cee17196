package pronunciation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_JSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(WordJudgment{Spoken: "hapy", Expected: "happy", Status: Mispronounced, Similarity: 0.8, Percent: 80})
	require.NoError(t, err)
	assert.JSONEq(t, `{"spoken":"hapy","expected":"happy","status":"mispronounced","similarity":0.8,"percent":80}`, string(b))

	var s Status
	require.NoError(t, s.UnmarshalText([]byte("omitted")))
	assert.Equal(t, Omitted, s)
	assert.Error(t, s.UnmarshalText([]byte("skipped")))
	assert.Equal(t, "Status(9)", Status(9).String())
}

func TestGradeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, GradeExcellent, GradeFor(1))
	assert.Equal(t, GradeExcellent, GradeFor(0.9))
	assert.Equal(t, GradeGood, GradeFor(0.8))
	assert.Equal(t, GradeFair, GradeFor(0.6))
	assert.Equal(t, GradeNeedsWork, GradeFor(0.59))
	assert.Equal(t, GradeNeedsWork, GradeFor(0))
}

func TestGradeFor_WeightedSumOnThreshold(t *testing.T) {
	t.Parallel()

	// 0.5*0.8 + 0.3*1 + 0.2*1 is 0.8999999999999999 in float64.
	a := Assess("a b c d e", "a b c d x")
	assert.InDelta(t, 0.9, a.OverallScore, 1e-9)
	assert.Equal(t, GradeExcellent, a.Grade)

	assert.Equal(t, GradeGood, GradeFor(0.5*0.5+0.3*1+0.2*1))
	assert.Equal(t, GradeFair, GradeFor(0.6-1e-12))
	assert.Equal(t, GradeNeedsWork, GradeFor(0.5999))
}

func TestAlign_Suggestions(t *testing.T) {
	t.Parallel()

	got := Align([]string{"good", "morning", "teacher"}, []string{"good", "xyz"})
	require.Len(t, got, 3)
	assert.Equal(t, "", got[0].Suggestion)
	assert.Equal(t, Mispronounced, got[1].Status)
	assert.Equal(t, "Try: morning", got[1].Suggestion)
	assert.Equal(t, Omitted, got[2].Status)
	assert.Equal(t, "", got[2].Spoken)
	assert.Equal(t, 0.0, got[2].Similarity)
	assert.Equal(t, "Remember to say: teacher", got[2].Suggestion)

	got = Align([]string{"hi"}, []string{"hi", "there"})
	require.Len(t, got, 2)
	assert.Equal(t, Inserted, got[1].Status)
	assert.Equal(t, "there", got[1].Expected)
	assert.Equal(t, "there", got[1].Spoken)
	assert.Equal(t, "Extra word", got[1].Suggestion)
}

func TestAlign_VeryLowSimilarityStaysMispronounced(t *testing.T) {
	t.Parallel()

	got := Align([]string{"abc"}, []string{"xyz"})
	require.Len(t, got, 1)
	assert.Equal(t, Mispronounced, got[0].Status)
	assert.Equal(t, 0.0, got[0].Similarity)
}

func TestAggregate_Breaks(t *testing.T) {
	t.Parallel()

	js := []WordJudgment{
		{Status: Correct},
		{Status: Omitted},
		{Status: Correct},
		{Status: Omitted},
		{Status: Inserted},
	}
	m := Aggregate([]string{"a", "b", "c", "d"}, js)
	assert.Equal(t, 3, m.Breaks)
	assert.Equal(t, 1, m.InsertedCount)
	assert.Equal(t, 100-10-15, m.FluencyRaw)
	assert.InDelta(t, 0.5, m.Accuracy, 1e-9)
	assert.InDelta(t, 0.5, m.Completeness, 1e-9)
	assert.InDelta(t, 0.5*0.5+0.3*0.75+0.2*0.5, m.OverallScore, 1e-9)
}

func TestGenerateFeedback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		acc, comp    float64
		inserted, fr int
		want         []string
	}{
		{"perfect", 1, 1, 0, 100, []string{MsgHighAccuracy}},
		{"fair_tier_lower_bound", 0.6, 1, 0, 100, []string{MsgFairAccuracy}},
		{"high_tier_lower_bound", 0.85, 1, 0, 100, []string{MsgHighAccuracy}},
		{"everything_wrong", 0.2, 0.4, 2, 40, []string{MsgLowAccuracy, MsgOmittedWords, MsgExtraWords, MsgImproveFluent}},
		{"completeness_boundary", 0.9, 0.8, 0, 60, []string{MsgHighAccuracy}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, GenerateFeedback(tc.acc, tc.comp, tc.inserted, tc.fr), tc.name)
	}
}
