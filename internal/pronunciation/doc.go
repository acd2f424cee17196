// Package pronunciation scores a learner's spoken transcript against the
// phrase they were asked to say.
//
// Assess tokenizes both strings, pairs the tokens by position, and reduces
// the per-word judgments to accuracy, completeness, fluency and an overall
// score. Every function here is pure; callers may share nothing and call
// from any goroutine.
package pronunciation
