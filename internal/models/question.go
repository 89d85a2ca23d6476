// Package models defines the records PrefKeeper persists and passes between
// its stores, services and front-ends.
package models

// Question is one catalog entry: a source sentence and the two candidate
// rephrasings a respondent chooses between. Its ordinal is its position in
// the catalog slice and is not stored on the value.
type Question struct {
	Sentence string
	OptionA  string
	OptionB  string
}

// Option returns the text of the given choice, or "" for an invalid one.
func (q Question) Option(c Choice) string {
	switch c {
	case ChoiceA:
		return q.OptionA
	case ChoiceB:
		return q.OptionB
	default:
		return ""
	}
}
