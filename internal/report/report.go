// Package report derives score percentages from the sheets and group
// documents and renders them as an exTable LaTeX document.
package report

import (
	"strings"

	"github.com/pavelanni/tutor/internal/model"
)

// Options selects what goes into a report.
type Options struct {
	IncludeID      bool // student id column (Matrikelnummer)
	IncludePercent bool // score overview columns
	CurrentWritten bool // count written points of the reported sheet in the totals
	CurrentVoted   bool // count voted points of the reported sheet in the totals
}

// DefaultOptions returns the interactive defaults: no ids, percentages on,
// current sheet counted for written points only.
func DefaultOptions() Options {
	return Options{
		IncludeID:      false,
		IncludePercent: true,
		CurrentWritten: true,
		CurrentVoted:   false,
	}
}

// Table is the computed content of a report for one sheet.
type Table struct {
	Title         string
	Subtitle      string
	Sheet         string
	Options       Options
	WrittenPoints float64
	VotedPoints   float64
	Problems      []model.Problem
	Rows          []Row
}

// Row is one student line of the report.
type Row struct {
	Name           string
	ID             string
	Board          int
	Written        float64
	Voted          float64
	WrittenPercent float64
	VotedPercent   float64
	Scores         []string // one per problem of the reported sheet, "" if absent
}

// Build computes the report table for sheetNo.
func Build(sheets *model.SheetsDocument, group *model.GroupDocument, sheetNo string, opts Options) (*Table, error) {
	sheet, err := sheets.Sheet(sheetNo)
	if err != nil {
		return nil, err
	}

	totalWritten := sheets.TotalPoints(model.Written)
	totalVoted := sheets.TotalPoints(model.Voted)
	if opts.IncludePercent && !opts.CurrentWritten {
		totalWritten -= sheet.Points(model.Written)
	}
	if opts.IncludePercent && !opts.CurrentVoted {
		totalVoted -= sheet.Points(model.Voted)
	}

	t := &Table{
		Title:         group.Title,
		Subtitle:      group.Subtitle,
		Sheet:         sheet.Number,
		Options:       opts,
		WrittenPoints: totalWritten,
		VotedPoints:   totalVoted,
		Problems:      append([]model.Problem(nil), sheet.Problems...),
	}

	for i := range group.Students {
		st := &group.Students[i]
		written, voted := StudentPoints(sheets, st)
		row := Row{
			Name:           st.Name,
			ID:             st.ID,
			Board:          st.Board,
			Written:        written,
			Voted:          voted,
			WrittenPercent: Percent(written, totalWritten),
			VotedPercent:   Percent(voted, totalVoted),
			Scores:         make([]string, 0, len(sheet.Problems)),
		}
		for _, p := range sheet.Problems {
			row.Scores = append(row.Scores, st.Score(sheet.Number, p.Number))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// StudentPoints sums a student's recorded scores by problem type. Scores for
// problems missing from the sheets document and empty scores are skipped.
func StudentPoints(sheets *model.SheetsDocument, st *model.Student) (written, voted float64) {
	for _, sh := range st.Sheets {
		for _, sc := range sh.Scores {
			p, ok := sheets.Problem(sh.Number, sc.Problem)
			if !ok {
				continue
			}
			v, ok := model.ParseScore(sc.Value)
			if !ok {
				continue
			}
			switch p.Type {
			case model.Written:
				written += v
			case model.Voted:
				voted += v
			}
		}
	}
	return written, voted
}

// Percent returns 100*earned/total, or 100 when total is zero.
func Percent(earned, total float64) float64 {
	if total == 0 {
		return 100
	}
	return 100 * earned / total
}

// Path derives the report file name from the group document path:
// "groups/a.xml" and sheet "3" give "groups/a_sheet3.tex".
func Path(groupPath, sheetNo string) string {
	return strings.TrimSuffix(groupPath, ".xml") + "_sheet" + sheetNo + ".tex"
}
