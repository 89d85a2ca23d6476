// Package catalog loads the ordered question catalog from a CSV file.
//
// The file has three named columns: translated (the source sentence), text
// (option A) and multi (option B). Row order is the question ordinal. When
// the file is missing or has no rows the built-in samples are used and
// written back, so the next load finds a valid catalog. A file that exists
// but cannot be read or parsed is never overwritten.
package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/prefkeeper/internal/filex"
	"github.com/dmitrijs2005/prefkeeper/internal/logging"
	"github.com/dmitrijs2005/prefkeeper/internal/models"
)

const (
	ColumnSentence = "translated"
	ColumnOptionA  = "text"
	ColumnOptionB  = "multi"
)

var errNoRows = errors.New("catalog has no rows")

var samples = []models.Question{
	{
		Sentence: "The movie was really enjoyable and entertaining.",
		OptionA:  "I found the film to be quite delightful.",
		OptionB:  "The cinematic experience gave me great pleasure.",
	},
	{
		Sentence: "The company announced record profits this quarter.",
		OptionA:  "The firm reported unprecedented earnings for this period.",
		OptionB:  "The business revealed they had their most successful quarter yet.",
	},
	{
		Sentence: "The researchers discovered a new species of frog.",
		OptionA:  "Scientists identified a previously unknown amphibian of the frog family.",
		OptionB:  "The research team found a type of frog that was not known before.",
	},
}

// Samples returns a copy of the built-in catalog.
func Samples() []models.Question {
	out := make([]models.Question, len(samples))
	copy(out, samples)
	return out
}

type Loader struct {
	path   string
	logger logging.Logger
}

func NewLoader(path string, logger logging.Logger) *Loader {
	return &Loader{path: path, logger: logger.With("component", "catalog", "path", path)}
}

func (l *Loader) Path() string {
	return l.path
}

// Load returns the catalog. It never fails: any read problem is logged and
// answered with the samples. The samples are seeded to disk only when the
// file is absent or has no rows.
func (l *Loader) Load(ctx context.Context) []models.Question {
	questions, err := l.read()
	if err == nil {
		l.logger.Debug(ctx, "catalog loaded", "questions", len(questions))
		return questions
	}

	questions = Samples()

	if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, errNoRows) {
		l.logger.Error(ctx, "catalog unusable, serving built-in questions; file left untouched", "error", err)
		return questions
	}

	l.logger.Warn(ctx, "using built-in catalog", "reason", err.Error())
	if err := l.seed(questions); err != nil {
		l.logger.Error(ctx, "catalog seeding failed", "error", err)
	} else {
		l.logger.Info(ctx, "built-in catalog written", "questions", len(questions))
	}

	return questions
}

func (l *Loader) read() ([]models.Question, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}
	questions, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, errNoRows
	}
	return questions, nil
}

// Parse decodes catalog CSV. Header names are matched case-insensitively and
// a UTF-8 BOM is ignored. Cells are taken as-is; a short row leaves the
// missing cells empty.
func Parse(data []byte) ([]models.Question, error) {
	r := csv.NewReader(bytes.NewReader(stripBOM(data)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errNoRows
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := [3]int{}
	for i, name := range []string{ColumnSentence, ColumnOptionA, ColumnOptionB} {
		c, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("csv missing %q column", name)
		}
		cols[i] = c
	}

	var questions []models.Question
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(questions)+1, err)
		}
		questions = append(questions, models.Question{
			Sentence: cell(rec, cols[0]),
			OptionA:  cell(rec, cols[1]),
			OptionB:  cell(rec, cols[2]),
		})
	}

	return questions, nil
}

// Encode renders questions in the catalog layout the loader reads back.
func Encode(w io.Writer, questions []models.Question) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnOptionA, ColumnOptionB, ColumnSentence}); err != nil {
		return err
	}
	for _, q := range questions {
		if err := cw.Write([]string{q.OptionA, q.OptionB, q.Sentence}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (l *Loader) seed(questions []models.Question) error {
	return filex.WriteFileAtomic(l.path, 0o644, func(w io.Writer) error {
		return Encode(w, questions)
	})
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
