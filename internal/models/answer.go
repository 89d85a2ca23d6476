package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
)

// Choice is the option a respondent picked. The zero value means "no choice".
//
// On disk a Choice is the number 1 or 2, which keeps ledger files readable
// by older tooling; for people it prints as A or B.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceA
	ChoiceB
)

func (c Choice) String() string {
	switch c {
	case ChoiceA:
		return "A"
	case ChoiceB:
		return "B"
	default:
		return ""
	}
}

func (c Choice) Valid() bool {
	return c == ChoiceA || c == ChoiceB
}

// ParseChoice accepts A/B (any case) and 1/2.
func ParseChoice(s string) (Choice, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "1":
		return ChoiceA, nil
	case "B", "2":
		return ChoiceB, nil
	default:
		return ChoiceNone, fmt.Errorf("%w: %q", common.ErrorInvalidChoice, s)
	}
}

func (c Choice) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}

// UnmarshalJSON coerces 1, 2, "1", "2", "A" and "B".
func (c *Choice) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Choice(n)
		if !c.Valid() {
			return fmt.Errorf("%w: %d", common.ErrorInvalidChoice, n)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorInvalidChoice, data)
	}
	parsed, err := ParseChoice(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AnswerRecord is one respondent's answer to one catalog question.
// A ledger holds at most one record per QuestionID.
type AnswerRecord struct {
	QuestionID   int    `json:"question_id"`
	User         string `json:"user,omitempty"`
	Sentence     string `json:"sentence,omitempty"`
	Choice       Choice `json:"selected_option"`
	SelectedText string `json:"selected_text"`
	Confidence   int    `json:"confidence"`
	Timestamp    string `json:"timestamp"`
}
