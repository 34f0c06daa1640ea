// Package export writes a report table in machine-readable formats.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/report"
)

// Format selects the output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	XLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts json, yaml (or yml) and xlsx, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "xlsx":
		return XLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FromTable converts a report table into the export structure.
// Student ids are included only when the table was built with them.
func FromTable(t *report.Table) model.GroupExport {
	exp := model.GroupExport{
		Title:         t.Title,
		Subtitle:      t.Subtitle,
		Sheet:         t.Sheet,
		WrittenPoints: t.WrittenPoints,
		VotedPoints:   t.VotedPoints,
		Problems:      make([]model.ProblemExport, 0, len(t.Problems)),
		Results:       make([]model.StudentResult, 0, len(t.Rows)),
	}
	for _, p := range t.Problems {
		exp.Problems = append(exp.Problems, model.ProblemExport{Number: p.Number, Type: p.Type, Max: p.Max})
	}
	for _, r := range t.Rows {
		res := model.StudentResult{
			Name:           r.Name,
			Board:          r.Board,
			WrittenPercent: round2(r.WrittenPercent),
			VotedPercent:   round2(r.VotedPercent),
			Scores:         append([]string(nil), r.Scores...),
		}
		if t.Options.IncludeID {
			res.ID = r.ID
		}
		exp.Results = append(exp.Results, res)
	}
	return exp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Write encodes t to w in the given format.
func Write(w io.Writer, f Format, t *report.Table) error {
	exp := FromTable(t)
	switch f {
	case JSON:
		return writeJSON(w, exp)
	case YAML:
		return writeYAML(w, exp)
	case XLSX:
		return writeXLSX(w, exp, t.Options.IncludeID)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func writeJSON(w io.Writer, exp model.GroupExport) error {
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, exp model.GroupExport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(exp); err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return enc.Close()
}

// SheetName is the worksheet name used for sheet no in XLSX exports.
func SheetName(no string) string {
	return "Sheet " + no
}

func writeXLSX(w io.Writer, exp model.GroupExport, withID bool) error {
	f := excelize.NewFile()
	defer f.Close()

	name := SheetName(exp.Sheet)
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("name worksheet: %w", err)
	}

	header := []any{"Name"}
	if withID {
		header = append(header, "ID")
	}
	header = append(header, "Board", "Written %", "Voted %")
	for _, p := range exp.Problems {
		header = append(header, fmt.Sprintf("A%s (%s, %s)", p.Number, p.Type, p.Max))
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}

	for i, r := range exp.Results {
		row := []any{r.Name}
		if withID {
			row = append(row, r.ID)
		}
		row = append(row, r.Board, r.WrittenPercent, r.VotedPercent)
		for _, s := range r.Scores {
			row = append(row, cellScore(s))
		}
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

// cellScore stores numeric scores as numbers and anything else verbatim.
func cellScore(s string) any {
	if v, ok := model.ParseScore(s); ok {
		return v
	}
	return s
}
