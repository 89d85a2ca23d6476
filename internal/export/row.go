package export

import (
	"strconv"

	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

// Row is one answer record joined with the question it refers to.
type Row struct {
	QuestionID   int
	User         string
	Sentence     string
	OptionA      string
	OptionB      string
	Choice       models.Choice
	SelectedText string
	Confidence   int
	Timestamp    string
}

// Join looks up record's question in catalog. It reports false when the
// ordinal lies outside the catalog.
func Join(identity string, catalog []models.Question, record models.AnswerRecord) (Row, bool) {
	if record.QuestionID < 0 || record.QuestionID >= len(catalog) {
		return Row{}, false
	}
	q := catalog[record.QuestionID]
	return Row{
		QuestionID:   record.QuestionID,
		User:         identity,
		Sentence:     q.Sentence,
		OptionA:      q.OptionA,
		OptionB:      q.OptionB,
		Choice:       record.Choice,
		SelectedText: record.SelectedText,
		Confidence:   record.Confidence,
		Timestamp:    record.Timestamp,
	}, true
}

// Fields returns the row in Header order.
func (r Row) Fields() []string {
	return []string{
		strconv.Itoa(r.QuestionID),
		r.User,
		r.Sentence,
		r.OptionA,
		r.OptionB,
		r.Choice.String(),
		r.SelectedText,
		strconv.Itoa(r.Confidence),
		r.Timestamp,
	}
}
