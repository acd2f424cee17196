package pronunciation

const (
	MsgLowAccuracy   = "Pronunciation accuracy is low, please practice the correct sounds."
	MsgFairAccuracy  = "Good pronunciation, but there is room for improvement."
	MsgHighAccuracy  = "Excellent pronunciation!"
	MsgOmittedWords  = "Some words were omitted, be sure to pronounce all words."
	MsgExtraWords    = "There are some extra words detected that were not expected."
	MsgImproveFluent = "Try to improve your fluency and smoothness of speech."
)

// GenerateFeedback returns guidance in a fixed order. The accuracy tier
// message is always first, so the result is never empty.
func GenerateFeedback(accuracy, completeness float64, insertedCount, fluencyRaw int) []string {
	out := make([]string, 0, 4)
	switch {
	case accuracy < 0.6:
		out = append(out, MsgLowAccuracy)
	case accuracy < 0.85:
		out = append(out, MsgFairAccuracy)
	default:
		out = append(out, MsgHighAccuracy)
	}
	if completeness < 0.8 {
		out = append(out, MsgOmittedWords)
	}
	if insertedCount > 0 {
		out = append(out, MsgExtraWords)
	}
	if fluencyRaw < 60 {
		out = append(out, MsgImproveFluent)
	}
	return out
}
