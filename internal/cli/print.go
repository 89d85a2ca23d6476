package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/prefkeeper/internal/export"
	"github.com/dmitrijs2005/prefkeeper/internal/stats"
	"github.com/dmitrijs2005/prefkeeper/internal/survey"
)

func printQuestion(w io.Writer, v survey.QuestionView) {
	fmt.Fprintf(w, "\nQuestion %d of %d\n", v.Number, v.Total)
	if v.Answered {
		fmt.Fprintf(w, "Status: Answered (%s, confidence %d)\n", v.DefaultChoice, v.DefaultConfidence)
	} else {
		fmt.Fprintln(w, "Status: Not Answered")
	}
	fmt.Fprintf(w, "\nOriginal sentence:\n  %s\n\n", v.Question.Sentence)
	fmt.Fprintf(w, "  A) %s\n", v.Question.OptionA)
	fmt.Fprintf(w, "  B) %s\n\n", v.Question.OptionB)
}

func printSummary(w io.Writer, s survey.Summary) {
	fmt.Fprintf(w, "Total questions: %d  Answered: %d  Completion: %.1f%%\n\n", s.Total, s.Answered, s.CompletionPercent)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tQUESTION\tSTATUS")
	for _, q := range s.Questions {
		status := "Not Answered"
		if q.Answered {
			status = "Answered"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", q.Number, q.Excerpt, status)
	}
	tw.Flush()
}

func printUsers(w io.Writer, s *stats.Stats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tREGISTERED\tRESPONSES\tPROGRESS")
	for _, p := range s.PerIdentity {
		created := p.CreatedAt
		if created == "" {
			created = "Unknown"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f%%\n", p.Identity, created, p.Responses, p.ProgressPercent)
	}
	tw.Flush()
}

func printStats(w io.Writer, s *stats.Stats) {
	fmt.Fprintf(w, "Total users:      %d\n", s.TotalAccounts)
	fmt.Fprintf(w, "Total responses:  %d\n", s.TotalResponses)
	fmt.Fprintf(w, "Questions:        %d\n", s.CatalogSize)
	fmt.Fprintf(w, "Completed users:  %d\n", s.CompletedAccounts)
	fmt.Fprintf(w, "Completion rate:  %.1f%%\n", s.CompletionRatePercent)
}

func printExportResult(w io.Writer, prefix string, res *export.Result) {
	fmt.Fprintf(w, "%s %s (%d rows)\n", prefix, res.Path, res.Rows)
	if res.Key != "" {
		fmt.Fprintf(w, "Uploaded as %s\n", res.Key)
	}
}
