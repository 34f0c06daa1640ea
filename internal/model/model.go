package model

import (
	"encoding/xml"
	"log/slog"
	"strconv"
	"strings"
)

// ProblemType is the scoring category of a problem.
type ProblemType string

const (
	// Written problems are handed in and corrected.
	Written ProblemType = "w"
	// Voted problems are ticked by students and presented on the board.
	Voted ProblemType = "v"
)

// ParseProblemType accepts exactly "w" and "v".
func ParseProblemType(s string) (ProblemType, bool) {
	switch ProblemType(s) {
	case Written:
		return Written, true
	case Voted:
		return Voted, true
	}
	return "", false
}

// SheetsDocument is the root of the sheets file.
type SheetsDocument struct {
	XMLName xml.Name `xml:"data"`
	Sheets  []Sheet  `xml:"sheet"`
}

// Sheet is a numbered problem set.
type Sheet struct {
	Number   string    `xml:"no,attr"`
	Problems []Problem `xml:"prob"`
}

// Problem is a gradable unit of a sheet. Max holds the maximum score as written in the file.
type Problem struct {
	Number string      `xml:"no,attr"`
	Type   ProblemType `xml:"type,attr"`
	Max    string      `xml:",chardata"`
}

// GroupDocument is the root of the group file.
type GroupDocument struct {
	XMLName  xml.Name  `xml:"data"`
	Title    string    `xml:"title,omitempty"`
	Subtitle string    `xml:"subtitle,omitempty"`
	Students []Student `xml:"student"`
}

// Student is one member of the tutorial group. Board counts presented problems.
type Student struct {
	Name   string       `xml:"name"`
	ID     string       `xml:"id"`
	Board  int          `xml:"board"`
	Sheets []ScoreSheet `xml:"sheet"`
}

// ScoreSheet holds the scores a student got on one sheet.
type ScoreSheet struct {
	Number string  `xml:"no,attr"`
	Scores []Score `xml:"prob"`
}

// Score is the recorded value for one problem. An empty Value means not recorded.
type Score struct {
	Problem string `xml:"no,attr"`
	Value   string `xml:",chardata"`
}

// MaxPoints returns the parsed maximum score, 0 if the stored text is not a number.
func (p Problem) MaxPoints() float64 {
	v, err := parseNumber(p.Max)
	if err != nil {
		slog.Warn("unparsable max score", "problem", p.Number, "value", p.Max)
		return 0
	}
	return v
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// ParseScore parses a recorded score. ok is false for empty or non-numeric values.
func ParseScore(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	v, err := parseNumber(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
