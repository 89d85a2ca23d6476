package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

func (a *App) records(ctx context.Context) ([]models.AnswerRecord, error) {
	return a.ledger.Load(ctx, a.session.Identity)
}

// Show prints the current question together with its answered status.
func (a *App) Show(ctx context.Context) error {
	records, err := a.records(ctx)
	if err != nil {
		return err
	}
	a.session.ShowSummary = false

	v, err := a.session.Current(a.questions, records)
	if err != nil {
		return err
	}
	printQuestion(a.out, v)
	return nil
}

// Answer shows the current question, reads a choice and a confidence
// (Enter keeps the previous answer or the default), saves the answer and
// moves on to the next question.
func (a *App) Answer(ctx context.Context) error {
	records, err := a.records(ctx)
	if err != nil {
		return err
	}

	v, err := a.session.Current(a.questions, records)
	if err != nil {
		return err
	}
	printQuestion(a.out, v)

	prompt := "Which alternative do you prefer? (A/B)"
	if v.DefaultChoice.Valid() {
		prompt = fmt.Sprintf("Which alternative do you prefer? (A/B) [%s]", v.DefaultChoice)
	}
	in, err := getSimpleText(a.scanner, prompt, a.out)
	if err != nil {
		return err
	}
	choice, err := parseChoiceInput(in, v.DefaultChoice)
	if err != nil {
		return err
	}

	in, err = getSimpleText(a.scanner,
		fmt.Sprintf("How confident are you in your choice? (1 = low, 5 = high) [%d]", v.DefaultConfidence), a.out)
	if err != nil {
		return err
	}
	confidence, err := parseConfidenceInput(in, v.DefaultConfidence)
	if err != nil {
		return err
	}

	record, err := a.session.Submit(a.questions, choice, confidence, a.now())
	if err != nil {
		return err
	}
	if _, err := a.ledger.Upsert(ctx, a.session.Identity, record); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Response saved successfully!")
	if a.session.Advance(len(a.questions)) {
		fmt.Fprintln(a.out, "You've reached the last question!")
	}
	return nil
}

func parseChoiceInput(in string, def models.Choice) (models.Choice, error) {
	if strings.TrimSpace(in) == "" {
		if def.Valid() {
			return def, nil
		}
		return models.ChoiceNone, fmt.Errorf("%w: select A or B", common.ErrorInvalidChoice)
	}
	return models.ParseChoice(in)
}

func parseConfidenceInput(in string, def int) (int, error) {
	in = strings.TrimSpace(in)
	if in == "" {
		return def, nil
	}
	n, err := strconv.Atoi(in)
	if err != nil || n < common.MinConfidence || n > common.MaxConfidence {
		return 0, fmt.Errorf("%w: %q, enter %d to %d", common.ErrorInvalidConfidence, in, common.MinConfidence, common.MaxConfidence)
	}
	return n, nil
}

// Navigate handles next, prev, first, last and goto <n>, then shows the
// question it lands on.
func (a *App) Navigate(ctx context.Context, cmd string, args []string) error {
	n := len(a.questions)
	switch cmd {
	case "next", "n":
		a.session.Next(n)
	case "prev", "p":
		a.session.Previous()
	case "first":
		a.session.First()
	case "last":
		a.session.Last(n)
	case "goto":
		if len(args) != 1 {
			fmt.Fprintln(a.out, "Usage: goto <n>")
			return nil
		}
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q", common.ErrorOutOfRange, args[0])
		}
		if err := a.session.Jump(number, n); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown navigation command %q", cmd)
	}
	return a.Show(ctx)
}

// Summary prints answered totals and the status of every question.
func (a *App) Summary(ctx context.Context) error {
	records, err := a.records(ctx)
	if err != nil {
		return err
	}
	printSummary(a.out, a.session.Summary(a.questions, records))
	return nil
}

// Export writes the user's own results file.
func (a *App) Export(ctx context.Context) error {
	records, err := a.records(ctx)
	if err != nil {
		return err
	}

	res, err := a.exporter.ExportOne(ctx, a.session.Identity, a.questions, records)
	if res != nil {
		printExportResult(a.out, "Results exported to", res)
	}
	if err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}
	return nil
}

