// Package export joins ledger records with the catalog and writes them as
// flat tabular files, for one identity or for every known identity.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/prefkeeper/internal/common"
	"github.com/xuri/excelize/v2"
)

// Header is the column set of every export file.
var Header = []string{
	"question_id",
	"user",
	"sentence",
	"option1",
	"option2",
	"selected_option",
	"selected_text",
	"confidence",
	"timestamp",
}

// Placeholder is the single cell written when an aggregate export has no rows.
const Placeholder = "No data available"

// Writer serializes a header and its rows into one file format.
type Writer interface {
	Ext() string
	Write(w io.Writer, header []string, rows [][]string) error
}

var writers = map[string]func() Writer{
	"csv":  func() Writer { return CSVWriter{} },
	"xlsx": func() Writer { return XLSXWriter{Sheet: "Results"} },
}

// NewWriter returns the writer registered for format.
func NewWriter(format string) (Writer, error) {
	mk, ok := writers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrorUnknownFormat, format)
	}
	return mk(), nil
}

type CSVWriter struct{}

func (CSVWriter) Ext() string { return "csv" }

func (CSVWriter) Write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// XLSXWriter puts the header and rows on a single worksheet.
type XLSXWriter struct {
	Sheet string
}

func (XLSXWriter) Ext() string { return "xlsx" }

func (x XLSXWriter) Write(w io.Writer, header []string, rows [][]string) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	sheet := f.GetSheetName(0)
	if x.Sheet != "" && x.Sheet != sheet {
		if err := f.SetSheetName(sheet, x.Sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		sheet = x.Sheet
	}

	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}
