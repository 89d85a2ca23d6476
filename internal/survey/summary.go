package survey

import (
	"github.com/dmitrijs2005/prefkeeper/internal/ledger"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
	"github.com/dmitrijs2005/prefkeeper/internal/stats"
)

const excerptLen = 50

type QuestionStatus struct {
	Number   int
	Excerpt  string
	Answered bool
}

type Summary struct {
	Total             int
	Answered          int
	CompletionPercent float64
	Questions         []QuestionStatus
}

// Excerpt shortens s to its first 50 characters followed by "...".
func Excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLen {
		return s
	}
	return string(r[:excerptLen]) + "..."
}

func BuildSummary(catalog []models.Question, records []models.AnswerRecord) Summary {
	answered := ledger.AnsweredSet(records)

	sum := Summary{
		Total:             len(catalog),
		Answered:          len(records),
		CompletionPercent: stats.Percent(len(records), len(catalog)),
		Questions:         make([]QuestionStatus, 0, len(catalog)),
	}
	for i, q := range catalog {
		_, ok := answered[i]
		sum.Questions = append(sum.Questions, QuestionStatus{
			Number:   i + 1,
			Excerpt:  Excerpt(q.Sentence),
			Answered: ok,
		})
	}
	return sum
}

// Summary switches the session to the summary view and returns its content.
func (s *Session) Summary(catalog []models.Question, records []models.AnswerRecord) Summary {
	s.ShowSummary = true
	return BuildSummary(catalog, records)
}
