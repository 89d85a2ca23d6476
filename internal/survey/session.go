// Package survey holds the per-session navigation state of a respondent and
// turns catalog and ledger data into what a front-end shows.
package survey

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/ledger"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
	"github.com/google/uuid"
)

// Session is owned by one front-end session; the core packages never see it.
type Session struct {
	ID          string
	Identity    string
	Index       int
	ShowSummary bool
}

// NewSession starts right after the last answered question, or at the first
// question once the respondent has answered as many as the catalog holds.
func NewSession(identity string, catalogSize, answered int) *Session {
	s := &Session{ID: uuid.NewString(), Identity: identity}
	if answered < catalogSize {
		s.Index = answered
	}
	return s
}

func (s *Session) First() {
	s.Index = 0
	s.ShowSummary = false
}

func (s *Session) Previous() {
	if s.Index > 0 {
		s.Index--
	}
	s.ShowSummary = false
}

func (s *Session) Next(catalogSize int) {
	if s.Index < catalogSize-1 {
		s.Index++
	}
	s.ShowSummary = false
}

func (s *Session) Last(catalogSize int) {
	if catalogSize > 0 {
		s.Index = catalogSize - 1
	}
	s.ShowSummary = false
}

// Jump moves to the 1-based question number.
func (s *Session) Jump(number, catalogSize int) error {
	if number < 1 || number > catalogSize {
		return fmt.Errorf("%w: %d not in 1..%d", common.ErrorOutOfRange, number, catalogSize)
	}
	s.Index = number - 1
	s.ShowSummary = false
	return nil
}

// Advance moves past a just-saved answer. It reports true when the session
// already sits on the last question and stays there.
func (s *Session) Advance(catalogSize int) bool {
	if s.Index < catalogSize-1 {
		s.Index++
		return false
	}
	return true
}

type QuestionView struct {
	Number   int
	Total    int
	Question models.Question
	Answered bool
	// DefaultChoice is the previous answer, ChoiceNone if there is none.
	DefaultChoice     models.Choice
	DefaultConfidence int
}

func (s *Session) Current(catalog []models.Question, records []models.AnswerRecord) (QuestionView, error) {
	if s.Index < 0 || s.Index >= len(catalog) {
		return QuestionView{}, fmt.Errorf("%w: %d", common.ErrorOutOfRange, s.Index+1)
	}

	v := QuestionView{
		Number:            s.Index + 1,
		Total:             len(catalog),
		Question:          catalog[s.Index],
		DefaultConfidence: common.DefaultConfidence,
	}
	if prev, ok := ledger.Find(records, s.Index); ok {
		v.Answered = true
		v.DefaultChoice = prev.Choice
		v.DefaultConfidence = prev.Confidence
	}
	return v, nil
}

// Submit builds the answer record for the current question.
func (s *Session) Submit(catalog []models.Question, choice models.Choice, confidence int, now time.Time) (models.AnswerRecord, error) {
	if s.Index < 0 || s.Index >= len(catalog) {
		return models.AnswerRecord{}, fmt.Errorf("%w: %d", common.ErrorOutOfRange, s.Index+1)
	}
	if !choice.Valid() {
		return models.AnswerRecord{}, fmt.Errorf("%w: %d", common.ErrorInvalidChoice, choice)
	}
	if confidence < common.MinConfidence || confidence > common.MaxConfidence {
		return models.AnswerRecord{}, fmt.Errorf("%w: %d not in %d..%d",
			common.ErrorInvalidConfidence, confidence, common.MinConfidence, common.MaxConfidence)
	}

	q := catalog[s.Index]
	return models.AnswerRecord{
		QuestionID:   s.Index,
		User:         s.Identity,
		Sentence:     q.Sentence,
		Choice:       choice,
		SelectedText: q.Option(choice),
		Confidence:   confidence,
		Timestamp:    now.Format(common.TimestampLayout),
	}, nil
}
